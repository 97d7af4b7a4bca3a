package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	apihttp "jsontodos/internal/adapter/http"
	"jsontodos/internal/adapter/telemetry"
	"jsontodos/pkg/config"
)

func main() {
	appConfig, err := config.Load()

	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := config.NewLokiLogger(appConfig.Telemetry.ServiceName, appConfig.LokiURL)

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := telemetry.NewContainer(ctx, appConfig.Telemetry, appConfig.Environment, logger)

	if err != nil {
		logger.Logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := container.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	container.AppMetrics.StartSystemMetrics(ctx)

	probe := container.NewTelemetryProbe(logger)

	if err := apihttp.StartServerWithConfig(ctx, container.AppMetrics, logger, probe, appConfig); err != nil {
		logger.Logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Logger.Info("Server stopped")
}
