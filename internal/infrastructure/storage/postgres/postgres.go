// Package postgres stores vaults, tags and accounts in PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"vaultkeeper/internal/infrastructure/migration"
)

type Storage struct {
	pool *pgxpool.Pool
}

// New applies the schema migrations and opens a connection pool.
func New(ctx context.Context, databaseURI string, engine migration.MigrationEngine) (*Storage, error) {
	mg := migration.NewMigration(migration.Postgres, databaseURI, engine)
	if err := mg.Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	pool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}
