package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"budgeteer/internal/budget"
	"budgeteer/internal/config"
	"budgeteer/internal/events"
	apphttp "budgeteer/internal/http"
	applog "budgeteer/internal/log"
	"budgeteer/internal/storage"
)

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	// Optional local overrides; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     logLevel(cfg.LogLevel),
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	var kv storage.KV
	switch cfg.DataBackend {
	case "sqlite":
		sqliteKV, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite store",
				applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		kv = sqliteKV
		logger.Info("Initialized SQLite backend",
			applog.FieldBackend, cfg.DataBackend, "path", cfg.SQLiteDBPath)
	default:
		kv = storage.NewMemory()
		logger.Info("Initialized memory backend", applog.FieldBackend, cfg.DataBackend)
	}

	adapter := storage.NewAdapter(kv, logger)

	var publisher *events.Publisher
	if cfg.EventsEnabled() {
		p, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Eventing is best-effort; the budget works without it.
			logger.Warn("Change-event publishing disabled", applog.FieldError, err)
		} else {
			publisher = p
			logger.Info("Change-event publishing enabled",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	store := budget.New(adapter,
		budget.WithPublisher(publisher),
		budget.WithLogger(logger),
	)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	store.Load(loadCtx)
	loadCancel()

	srv := apphttp.NewServer(":"+cfg.Port, store, adapter, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting budgeteer server",
		"port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()

	// Flush pending writes before closing the backend underneath them.
	store.Close()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("Publisher close error", applog.FieldError, err)
		}
	}
	if err := adapter.Close(); err != nil {
		logger.Error("Storage close error", applog.FieldError, err)
	}
	logger.Info("Server stopped gracefully")
}
