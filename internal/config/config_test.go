package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("API_ADDR", ":9090")
	t.Setenv("LOG_DIR", "./_testlogs")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RESIOT_BASE", "https://resiot.example.com")
	t.Setenv("RESIOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_WEBHOOK_SECRET", "hook")
	t.Setenv("ALERT_CHAT_IDS", "100, -200,")
	t.Setenv("GATEWAY_NAMES_JSON", `{"gw-1":"Norte"}`)
	t.Setenv("POLL_INTERVAL_SEC", "60")
	t.Setenv("REPORT_DEFAULT_DAYS", "30")
	t.Setenv("PENDING_TTL_SEC", "120")

	cfg := FromEnv()

	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, "./_testlogs", cfg.LogDir)
	require.Equal(t, "redis", cfg.StorageDriver)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, "https://resiot.example.com", cfg.TelemetryBase)
	require.Equal(t, "tok", cfg.TelemetryToken)
	require.Equal(t, "123:abc", cfg.TelegramToken)
	require.Equal(t, "hook", cfg.TelegramWebhookSecret)
	require.Equal(t, []int64{100, -200}, cfg.AlertChatIDs)
	require.Equal(t, `{"gw-1":"Norte"}`, cfg.GatewayNamesJSON)
	require.Equal(t, time.Minute, cfg.PollInterval)
	require.Equal(t, 30, cfg.DefaultReportDays)
	require.Equal(t, 2*time.Minute, cfg.PendingTTL)
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"API_ADDR", "LOG_DIR", "STORAGE_DRIVER", "DATA_DIR",
		"POLL_INTERVAL_SEC", "REPORT_DEFAULT_DAYS", "PENDING_TTL_SEC",
		"ALERT_CHAT_IDS",
	} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	require.Equal(t, "127.0.0.1:8080", cfg.Addr)
	require.Equal(t, "logs", cfg.LogDir)
	require.Equal(t, "memory", cfg.StorageDriver)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, 300*time.Second, cfg.PollInterval)
	require.Equal(t, 7, cfg.DefaultReportDays)
	require.Equal(t, 300*time.Second, cfg.PendingTTL)
	require.Empty(t, cfg.AlertChatIDs)
}

func TestFromEnv_BadNumbersKeepDefaults(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("POLL_INTERVAL_SEC", "-5")
	t.Setenv("REPORT_DEFAULT_DAYS", "zero")
	t.Setenv("ALERT_CHAT_IDS", "abc,123")

	cfg := FromEnv()

	require.Equal(t, 0, cfg.RedisDB)
	require.Equal(t, 300*time.Second, cfg.PollInterval)
	require.Equal(t, 7, cfg.DefaultReportDays)
	require.Equal(t, []int64{123}, cfg.AlertChatIDs)
}
