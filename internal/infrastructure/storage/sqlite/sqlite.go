// Package sqlite stores vaults, tags and accounts in a local SQLite file.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	// Регистрация драйвера sqlite3
	_ "github.com/mattn/go-sqlite3"

	"vaultkeeper/internal/infrastructure/migration"
)

type Storage struct {
	db *sqlx.DB
}

// New applies the schema migrations and opens the database at path.
func New(ctx context.Context, path string, engine migration.MigrationEngine) (*Storage, error) {
	mg := migration.NewMigration(migration.SQLite, "sqlite3://"+path, engine)
	if err := mg.Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer; a single connection keeps transactions serialised.
	db.SetMaxOpenConns(1)

	return &Storage{db: db}, nil
}

// NewWithDB wraps an already opened handle without migrating it.
func NewWithDB(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) DB() *sqlx.DB {
	return s.db
}
