package viewmodel

import (
	"context"

	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/tag"
	"vaultkeeper/internal/domain/vault"
)

// VaultStore is the part of vault.Service the controllers use.
type VaultStore interface {
	List(ctx context.Context) ([]vault.Vault, error)
	Get(ctx context.Context, id string) (*vault.Vault, error)
	Upsert(ctx context.Context, v vault.Vault) (vault.Vault, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TagStore is the part of tag.Service the controllers use.
type TagStore interface {
	List(ctx context.Context, vaultID string) ([]tag.Tag, error)
	Reconcile(ctx context.Context, vaultID string, desired []tag.Tag) (bool, error)
	Delete(ctx context.Context, vaultID string, t tag.Tag) (bool, error)
}

// AccountStore is the part of account.Service the controllers use.
type AccountStore interface {
	List(ctx context.Context, vaultID string) ([]account.Account, error)
	Get(ctx context.Context, vaultID, accountID string) (*account.Account, error)
	Save(ctx context.Context, vaultID string, a account.Account) (account.Account, bool, error)
}

var (
	_ VaultStore   = (*vault.Service)(nil)
	_ TagStore     = (*tag.Service)(nil)
	_ AccountStore = (*account.Service)(nil)
)
