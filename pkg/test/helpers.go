package test

import (
	"database/sql"
	"log"
	"path/filepath"

	"userapp/internal/adapter/database/sqlite"
	"userapp/pkg"
)

// MigrationsPath returns the absolute path of the sqlite migrations.
func MigrationsPath() string {
	return filepath.Join(pkg.FindProjectRoot(), "db", "migrations")
}

// InitTestDB opens a migrated in-memory database. A single connection keeps
// every query on the same memory database.
func InitTestDB() *sqlite.DB {
	db, err := sql.Open("sqlite3", sqlite.DSN(":memory:"))

	if err != nil {
		log.Fatal(err)
	}

	db.SetMaxOpenConns(1)

	if err := sqlite.RunMigrations(db, MigrationsPath()); err != nil {
		log.Fatal(err)
	}

	return sqlite.Wrap(db)
}
