// Package app wires storage and domain services into one object shared by the
// HTTP server and the CLI.
package app

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"vaultkeeper/internal/config"
	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/tag"
	"vaultkeeper/internal/domain/vault"
	"vaultkeeper/internal/infrastructure/storage"
)

type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Vaults   vault.Servicer
	Tags     tag.Servicer
	Accounts account.Servicer

	storage *storage.Storage
}

// New opens the configured storage and builds the services on top of it.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}
	a := NewWithStorage(st, log)
	a.Config = cfg
	return a, nil
}

// NewWithStorage builds the services over already opened repositories.
func NewWithStorage(st *storage.Storage, log *slog.Logger) *App {
	tags := tag.NewService(st.Tags, log, nil)
	accounts := account.NewService(st.Accounts, log, nil)
	vaults := vault.NewService(st.Vaults, log, vault.WithCascade(tags, accounts))

	return &App{
		Log:      log,
		Vaults:   vaults,
		Tags:     tags,
		Accounts: accounts,
		storage:  st,
	}
}

// NewWithServices builds an app over services that live elsewhere, such as
// the HTTP client of a remote server.
func NewWithServices(vaults vault.Servicer, tags tag.Servicer, accounts account.Servicer, log *slog.Logger) *App {
	return &App{
		Log:      log,
		Vaults:   vaults,
		Tags:     tags,
		Accounts: accounts,
	}
}

// Remote reports whether the app has no local storage.
func (a *App) Remote() bool {
	return a.storage == nil
}

func (a *App) Close() error {
	if a.storage == nil {
		return nil
	}
	return a.storage.Close()
}
