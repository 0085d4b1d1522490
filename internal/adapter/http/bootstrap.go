package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"userapp/internal/adapter/http/routes"
	"userapp/internal/core/port"
	"userapp/internal/core/telemetry"
	"userapp/pkg/config"
)

// Server runs the users API until its context is cancelled.
type Server struct {
	config    *config.AppConfig
	logger    *config.AppLogger
	metrics   *telemetry.AppMetrics
	probe     port.Telemetry
	container *Container
	srv       *http.Server
}

func NewServer(ctx context.Context, cfg *config.AppConfig, logger *config.AppLogger, metrics *telemetry.AppMetrics, probe port.Telemetry) (*Server, error) {
	container, err := NewContainer(ctx, cfg, probe)

	if err != nil {
		return nil, err
	}

	return newServer(cfg, logger, metrics, probe, container), nil
}

func newServer(cfg *config.AppConfig, logger *config.AppLogger, metrics *telemetry.AppMetrics, probe port.Telemetry, container *Container) *Server {
	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		UserHandler: container.UserHandler,
	}, metrics, logger, cfg)

	return &Server{
		config:    cfg,
		logger:    logger,
		metrics:   metrics,
		probe:     probe,
		container: container,
		srv: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is done, then drains in-flight requests and closes the
// database.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("Server starting",
		"port", s.config.Port,
		"environment", s.config.Environment,
		"db_driver", s.config.DBDriver,
		"rate_limit_enabled", s.config.RateLimitEnabled,
		"https_enforced", s.config.EnforceHTTPS)

	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error

	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("Shutting down gracefully...")

	shutdownErr := s.srv.Shutdown(shutdownCtx)
	closeErr := s.container.Close()

	return errors.Join(serveErr, shutdownErr, closeErr)
}
