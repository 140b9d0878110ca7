package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"gatewaymon/internal/blob"
	"gatewaymon/internal/bot"
	"gatewaymon/internal/config"
	"gatewaymon/internal/httpapi"
	"gatewaymon/internal/logging"
	"gatewaymon/internal/notify"
	"gatewaymon/internal/scheduler"
	"gatewaymon/internal/telemetry"
	"gatewaymon/internal/uptime"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatal("storage_open_error", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}

	engine := uptime.New(store, logger)
	poller := telemetry.NewClient(cfg.TelemetryBase, cfg.TelemetryToken, logger)
	telegram := notify.NewTelegram(cfg.TelegramToken, cfg.AlertChatIDs)
	names := bot.ParseNames(cfg.GatewayNamesJSON)
	pending := bot.NewPendingTable(cfg.PendingTTL)
	chatBot := bot.New(logger, poller, engine, names, pending, cfg.DefaultReportDays)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := scheduler.NewLoop(logger, poller, engine, telegram, names.Display, cfg.PollInterval)
	go loop.Run(ctx)

	api := httpapi.NewServer(logger, chatBot, engine, telegram, cfg.TelegramWebhookSecret, cfg.DefaultReportDays)
	srv := &http.Server{Addr: cfg.Addr, Handler: api.Router()}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	logger.Info("api_listen", zap.String("addr", cfg.Addr), zap.String("storage", cfg.StorageDriver))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("api_serve_error", zap.Error(err))
	}
}

func openStore(cfg config.Config) (blob.Store, error) {
	switch cfg.StorageDriver {
	case "fs":
		return blob.NewFS(cfg.DataDir)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		return blob.NewRedis(client), nil
	case "gist":
		return blob.NewGist(cfg.GistID, cfg.GistToken), nil
	default:
		return blob.NewMemory(), nil
	}
}
