package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpadapter "userapp/internal/adapter/http"
	"userapp/internal/adapter/telemetry"
	"userapp/pkg/config"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadFromEnv()
	gin.SetMode(cfg.GinMode)

	logger, err := config.NewAppLogger(cfg.ServiceName, cfg.LokiURL)

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	tel, err := telemetry.NewContainer(ctx, telemetry.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	}, slog.Default())

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(context.Background())

	tel.AppMetrics.StartSystemMetrics(ctx)

	server, err := httpadapter.NewServer(ctx, cfg, logger, tel.AppMetrics, tel.NewTelemetryProbe())

	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	if err := server.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}
}
