package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jsontodos/internal/adapter/http/routes"
	"jsontodos/internal/core/port"
	"jsontodos/internal/core/telemetry"
	"jsontodos/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// StartServerWithConfig serves the API until ctx is cancelled, then drains
// in-flight requests.
func StartServerWithConfig(ctx context.Context, metrics *telemetry.AppMetrics, logger *config.LokiLogger, probe port.Telemetry, appConfig *config.AppConfig) error {
	if appConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	container := NewContainer(appConfig, logger, probe)

	if err := container.TodoStore.EnsureExists(ctx); err != nil {
		return fmt.Errorf("initialize todo store: %w", err)
	}

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		TodoHandler: container.TodoHandler,
		StaticDir:   appConfig.StaticDir,
	}, metrics, logger, appConfig)

	srv := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Logger.Info("Server starting",
		zap.String("port", appConfig.Port),
		zap.String("environment", appConfig.Environment),
		zap.String("data_file", appConfig.DataFile),
		zap.Bool("rate_limit_enabled", appConfig.RateLimitEnabled),
		zap.Bool("https_enforced", appConfig.EnforceHTTPS))

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
