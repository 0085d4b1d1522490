package http

import (
	"context"
	"fmt"
	"log/slog"

	"userapp/internal/adapter/database/memory"
	"userapp/internal/adapter/database/postgres"
	pgrepository "userapp/internal/adapter/database/postgres/repository"
	"userapp/internal/adapter/database/sqlite"
	repository "userapp/internal/adapter/database/sqlite/repository"
	"userapp/internal/adapter/http/handler"
	validation "userapp/internal/adapter/http/validation"
	"userapp/internal/core/port"
	"userapp/internal/core/service"
	"userapp/pkg/config"
)

// Container owns the database handle and the objects built on it. Close
// releases the handle.
type Container struct {
	UserRepo    port.UserRepository
	UserService port.UserService
	UserHandler *handler.UserHandler

	close func() error
}

func NewContainer(ctx context.Context, cfg *config.AppConfig, probe port.Telemetry) (*Container, error) {
	var (
		userRepo port.UserRepository
		closer   func() error
	)

	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := sqlite.NewDB(sqlite.Options{
			Path:           cfg.DatabasePath,
			MigrationsPath: migrationsPath(cfg, "db/migrations"),
			LogQueries:     cfg.DBLogQueries,
		})

		if err != nil {
			return nil, err
		}

		userRepo = repository.NewUserRepository(db, probe)
		closer = db.Close
	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, postgres.Options{
			URL:            cfg.DatabaseURL,
			MigrationsPath: migrationsPath(cfg, "infra/migrations"),
		})

		if err != nil {
			return nil, err
		}

		userRepo = pgrepository.NewUserRepository(db, probe)
		closer = func() error {
			db.Close()
			return nil
		}
	case config.DriverMemory:
		userRepo = memory.NewUserRepository()
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return NewContainerWithRepository(userRepo, probe, closer), nil
}

// NewContainerWithRepository wires the service and handler around an
// already opened repository.
func NewContainerWithRepository(userRepo port.UserRepository, probe port.Telemetry, closer func() error) *Container {
	userSvc := service.NewUserService(userRepo, validation.NewStructValidator(), probe)

	return &Container{
		UserRepo:    userRepo,
		UserService: userSvc,
		UserHandler: handler.NewUserHandler(userSvc),
		close:       closer,
	}
}

func (c *Container) Close() error {
	if c.close == nil {
		return nil
	}

	slog.Info("Closing database")

	return c.close()
}

func migrationsPath(cfg *config.AppConfig, fallback string) string {
	if cfg.MigrationsPath != "" {
		return cfg.MigrationsPath
	}

	return fallback
}
