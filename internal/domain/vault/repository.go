package vault

import "context"

// Repository is the persistence contract for vault rows.
type Repository interface {
	List(ctx context.Context) ([]Vault, error)
	// Get returns ErrNotFound when no vault has the given ID.
	Get(ctx context.Context, id string) (*Vault, error)
	// Save inserts the vault or replaces the row with the same ID.
	Save(ctx context.Context, v Vault) error
	Delete(ctx context.Context, id string) (bool, error)
}

// Cascader removes every row scoped to a vault. Tag and account stores
// implement it so that deleting a vault takes its contents along.
type Cascader interface {
	DeleteAll(ctx context.Context, vaultID string) error
}
