// Package storage opens the backend selected by configuration.
package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"vaultkeeper/internal/config"
	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/tag"
	"vaultkeeper/internal/domain/vault"
	"vaultkeeper/internal/infrastructure/storage/memory"
	"vaultkeeper/internal/infrastructure/storage/postgres"
	"vaultkeeper/internal/infrastructure/storage/sqlite"
)

// Storage bundles the repositories of one backend.
type Storage struct {
	Vaults   vault.Repository
	Tags     tag.Repository
	Accounts account.Repository
	closer   func() error
}

func (s *Storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// NewMemory returns repositories that live as long as the process.
func NewMemory() *Storage {
	return &Storage{
		Vaults:   memory.NewVaultRepository(),
		Tags:     memory.NewTagRepository(),
		Accounts: memory.NewAccountRepository(),
	}
}

// Open connects to the configured backend, migrating SQL schemas first.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	log = log.With("component", "storage", "driver", cfg.Storage.Driver)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, data is lost on exit")
		return NewMemory(), nil

	case config.DriverSQLite:
		db, err := sqlite.New(ctx, cfg.Storage.SQLitePath, nil)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		log.Info("storage opened", "path", cfg.Storage.SQLitePath)
		return &Storage{
			Vaults:   sqlite.NewVaultRepository(db.DB(), log),
			Tags:     sqlite.NewTagRepository(db.DB(), log),
			Accounts: sqlite.NewAccountRepository(db.DB(), log),
			closer:   db.Close,
		}, nil

	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.Storage.DatabaseURI, nil)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		log.Info("storage opened")
		return &Storage{
			Vaults:   postgres.NewVaultRepository(db.Pool(), log),
			Tags:     postgres.NewTagRepository(db.Pool(), log),
			Accounts: postgres.NewAccountRepository(db.Pool(), log),
			closer:   db.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
