package account

import "context"

// Repository is the persistence contract for the accounts of each vault.
type Repository interface {
	List(ctx context.Context, vaultID string) ([]Account, error)
	// Get returns ErrNotFound when the vault holds no account with that ID.
	Get(ctx context.Context, vaultID, accountID string) (*Account, error)
	// Save inserts the account or replaces the one with the same ID.
	Save(ctx context.Context, vaultID string, a Account) error
	Delete(ctx context.Context, vaultID, accountID string) (bool, error)
	DeleteAll(ctx context.Context, vaultID string) error
}
