package tag

import "context"

// Repository is the persistence contract for the tags of each vault.
type Repository interface {
	// List returns the tags of the vault in stored order, empty for an unknown vault.
	List(ctx context.Context, vaultID string) ([]Tag, error)
	// ReplaceAll makes tags the complete tag set of the vault.
	ReplaceAll(ctx context.Context, vaultID string, tags []Tag) error
	// Delete removes the tag equal to t (same ID and label).
	Delete(ctx context.Context, vaultID string, t Tag) (bool, error)
	DeleteAll(ctx context.Context, vaultID string) error
}
