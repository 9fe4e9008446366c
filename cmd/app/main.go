package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riderdispatch/cmd"
	httpin "riderdispatch/internal/adapters/in/http"
	"riderdispatch/internal/adapters/out/kafka"
	"riderdispatch/internal/adapters/out/postgres"
	"riderdispatch/internal/core/ports"

	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	if err = postgres.AutoMigrate(gormDB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var publisher ports.OrderEventPublisher
	if configs.KafkaHost != "" {
		kafkaPublisher, kafkaErr := kafka.NewOrderEventPublisher(configs.KafkaHost, configs.KafkaOrderChangedTopic)
		if kafkaErr != nil {
			return kafkaErr
		}
		defer func() {
			if closeErr := kafkaPublisher.Close(); closeErr != nil {
				logger.Warn("Failed to close kafka producer", "error", closeErr)
			}
		}()
		publisher = kafkaPublisher
	} else {
		logger.Warn("KAFKA_HOST is not set, order events are not published")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(app, configs, logger)
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	e, err := httpin.NewEcho(app.CreateServer(), configs.JWTSecret, logger)
	if err != nil {
		return err
	}
	e.Logger.SetLevel(log.INFO)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", configs.HTTPPort)
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
