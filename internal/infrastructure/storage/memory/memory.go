// Package memory keeps vaults, tags and accounts in process memory. Rows keep
// their insertion order; replacing a row keeps its position.
package memory

import (
	"context"
	"sync"

	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/tag"
	"vaultkeeper/internal/domain/vault"
)

type VaultRepository struct {
	mu     sync.RWMutex
	vaults []vault.Vault
}

func NewVaultRepository() *VaultRepository {
	return &VaultRepository{}
}

func (r *VaultRepository) List(_ context.Context) ([]vault.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vault.Vault, len(r.vaults))
	copy(out, r.vaults)
	return out, nil
}

func (r *VaultRepository) Get(_ context.Context, id string) (*vault.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.vaults {
		if v.ID == id {
			found := v
			return &found, nil
		}
	}
	return nil, vault.ErrNotFound
}

func (r *VaultRepository) Save(_ context.Context, v vault.Vault) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.vaults {
		if r.vaults[i].ID == v.ID {
			r.vaults[i] = v
			return nil
		}
	}
	r.vaults = append(r.vaults, v)
	return nil
}

func (r *VaultRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.vaults {
		if r.vaults[i].ID == id {
			r.vaults = append(r.vaults[:i], r.vaults[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type TagRepository struct {
	mu   sync.RWMutex
	tags map[string][]tag.Tag
}

func NewTagRepository() *TagRepository {
	return &TagRepository{tags: make(map[string][]tag.Tag)}
}

func (r *TagRepository) List(_ context.Context, vaultID string) ([]tag.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.tags[vaultID]
	out := make([]tag.Tag, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *TagRepository) ReplaceAll(_ context.Context, vaultID string, tags []tag.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(tags) == 0 {
		delete(r.tags, vaultID)
		return nil
	}
	r.tags[vaultID] = append([]tag.Tag(nil), tags...)
	return nil
}

func (r *TagRepository) Delete(_ context.Context, vaultID string, t tag.Tag) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.tags[vaultID]
	for i := range stored {
		if stored[i] == t {
			r.tags[vaultID] = append(stored[:i:i], stored[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *TagRepository) DeleteAll(_ context.Context, vaultID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tags, vaultID)
	return nil
}

type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string][]account.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string][]account.Account)}
}

func (r *AccountRepository) List(_ context.Context, vaultID string) ([]account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.accounts[vaultID]
	out := make([]account.Account, 0, len(stored))
	for _, a := range stored {
		out = append(out, a.Clone())
	}
	return out, nil
}

func (r *AccountRepository) Get(_ context.Context, vaultID, accountID string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts[vaultID] {
		if a.ID == accountID {
			found := a.Clone()
			return &found, nil
		}
	}
	return nil, account.ErrNotFound
}

func (r *AccountRepository) Save(_ context.Context, vaultID string, a account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.accounts[vaultID]
	for i := range stored {
		if stored[i].ID == a.ID {
			stored[i] = a.Clone()
			return nil
		}
	}
	r.accounts[vaultID] = append(stored, a.Clone())
	return nil
}

func (r *AccountRepository) Delete(_ context.Context, vaultID, accountID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.accounts[vaultID]
	for i := range stored {
		if stored[i].ID == accountID {
			r.accounts[vaultID] = append(stored[:i:i], stored[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *AccountRepository) DeleteAll(_ context.Context, vaultID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.accounts, vaultID)
	return nil
}
