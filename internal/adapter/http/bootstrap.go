package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"goalsapp/internal/adapter/database"
	. "goalsapp/pkg/config"
	. "goalsapp/pkg/tracing"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// StartServerWithConfig serves the API until ctx is cancelled, then drains
// in-flight requests. db is owned by the caller.
func StartServerWithConfig(ctx context.Context, db *database.DB, metrics *AppMetrics, logger *LokiLogger, config *AppConfig) error {
	container := NewContainer(db, logger, metrics)
	router := SetupRouterWithConfig(container.Handlers(), metrics, logger, config)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Logger.Info("Server starting",
		zap.String("port", config.Port),
		zap.String("environment", config.Environment),
		zap.String("database_driver", config.DatabaseDriver),
		zap.Bool("rate_limit_enabled", config.RateLimitEnabled),
		zap.Bool("https_enforced", config.EnforceHTTPS))

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
