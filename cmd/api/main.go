package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"goalsapp/internal/adapter/database"
	api "goalsapp/internal/adapter/http"
	. "goalsapp/pkg/config"
	. "goalsapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := NewLokiLogger(config.ServiceName, config.LokiURL, config.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}

	defer logger.Sync()

	flushSentry, err := InitSentry(config)
	if err != nil {
		logger.Logger.Warn("Sentry disabled", zap.Error(err))
	}

	defer flushSentry()

	telemetry, err := InitTelemetry(ctx, TelemetryConfig{
		ServiceName:    config.ServiceName,
		ServiceVersion: config.ServiceVersion,
		Environment:    config.Environment,
		MetricsPort:    config.MetricsPort,
		OTLPEndpoint:   config.OTLPEndpoint,
	})
	if err != nil {
		logger.Logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	defer telemetry.Shutdown(context.Background())

	go func() {
		if err := telemetry.Serve(); err != nil {
			logger.Logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	metrics := NewAppMetrics(telemetry.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	db, err := database.NewDB(ctx, config)
	if err != nil {
		logger.Logger.Fatal("Failed to open database", zap.Error(err), zap.String("driver", config.DatabaseDriver))
	}

	defer db.Close()

	if err := api.StartServerWithConfig(ctx, db, metrics, logger, config); err != nil {
		logger.Logger.Error("Server failed", zap.Error(err))
	}
}
