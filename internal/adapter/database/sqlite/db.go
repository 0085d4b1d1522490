package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	_ "github.com/mattn/go-sqlite3"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/rs/zerolog"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
)

const MaxOpenConns = 100

type Options struct {
	Path           string
	MigrationsPath string
	LogQueries     bool
}

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

// DSN adds the connection options the store relies on to path. LIKE must be
// case-sensitive on every pooled connection.
func DSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	return path + sep + "_cslike=1&_foreign_keys=1"
}

func Open(opts Options) (*sql.DB, error) {
	if opts.Path == "" {
		return nil, errors.New("sqlite: database path is empty")
	}

	dsn := DSN(opts.Path)

	migrationDB, err := sql.Open("sqlite3", dsn)

	if err != nil {
		return nil, err
	}

	err = RunMigrations(migrationDB, opts.MigrationsPath)
	migrationDB.Close()

	if err != nil {
		return nil, err
	}

	sqlDB, err := otelsql.Open("sqlite3", dsn,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName("userapp"),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)

	if err != nil {
		return nil, err
	}

	if !opts.LogQueries {
		configurePool(sqlDB)
		return sqlDB, nil
	}

	// The logging handle reuses the traced driver, so the first handle is
	// only needed for its Driver.
	logger := zerolog.New(os.Stdout).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	loggedDB := sqldblogger.OpenDriver(dsn, sqlDB.Driver(), zerologadapter.New(logger))

	if err := sqlDB.Close(); err != nil {
		loggedDB.Close()
		return nil, err
	}

	configurePool(loggedDB)

	return loggedDB, nil
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(MaxOpenConns)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

func NewDB(opts Options) (*DB, error) {
	sqlDB, err := Open(opts)

	if err != nil {
		return nil, err
	}

	slog.Info("Database ready", "driver", "sqlite3", "path", opts.Path)

	return Wrap(sqlDB), nil
}

// Wrap attaches the sqlite query builder to an already migrated handle.
func Wrap(sqlDB *sql.DB) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
	}
}

func RunMigrations(db *sql.DB, migrationsPath string) error {
	if migrationsPath == "" {
		migrationsPath = "db/migrations"
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})

	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"sqlite3",
		driver,
	)

	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
