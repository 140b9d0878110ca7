package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr   string // API bind address, e.g., "127.0.0.1:8080" (Windows) or ":8080" (Docker)
	LogDir string // logs directory

	StorageDriver string // memory | fs | redis | gist
	DataDir       string // fs driver: directory for blob files
	RedisAddr     string
	RedisDB       int
	GistID        string
	GistToken     string

	TelemetryBase  string // ResIOT base URL, e.g., https://resiot.example.com
	TelemetryToken string

	TelegramToken         string
	TelegramWebhookSecret string
	AlertChatIDs          []int64
	GatewayNamesJSON      string

	PollInterval      time.Duration
	DefaultReportDays int
	PendingTTL        time.Duration
}

func FromEnv() Config {
	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = "memory"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			redisDB = n
		}
	}

	var chatIDs []int64
	for _, part := range strings.Split(os.Getenv("ALERT_CHAT_IDS"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			chatIDs = append(chatIDs, id)
		}
	}

	pollInterval := 300 * time.Second
	if v := os.Getenv("POLL_INTERVAL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			pollInterval = time.Duration(n) * time.Second
		}
	}

	reportDays := 7
	if v := os.Getenv("REPORT_DEFAULT_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			reportDays = n
		}
	}

	pendingTTL := 300 * time.Second
	if v := os.Getenv("PENDING_TTL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pendingTTL = time.Duration(n) * time.Second
		}
	}

	return Config{
		Addr:   addr,
		LogDir: logDir,

		StorageDriver: driver,
		DataDir:       dataDir,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisDB:       redisDB,
		GistID:        os.Getenv("GIST_ID"),
		GistToken:     os.Getenv("GIST_TOKEN"),

		TelemetryBase:  os.Getenv("RESIOT_BASE"),
		TelemetryToken: os.Getenv("RESIOT_TOKEN"),

		TelegramToken:         os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookSecret: os.Getenv("TELEGRAM_WEBHOOK_SECRET"),
		AlertChatIDs:          chatIDs,
		GatewayNamesJSON:      os.Getenv("GATEWAY_NAMES_JSON"),

		PollInterval:      pollInterval,
		DefaultReportDays: reportDays,
		PendingTTL:        pendingTTL,
	}
}
