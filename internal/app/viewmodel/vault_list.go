package viewmodel

import (
	"context"

	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/vault"
)

type VaultListState struct {
	Vaults []vault.Vault
	Err    error
}

// VaultList is a read-only projection of every vault.
type VaultList struct {
	*Observable[VaultListState]
	vaults VaultStore
	log    *slog.Logger
}

func NewVaultList(vaults VaultStore, log *slog.Logger) *VaultList {
	return &VaultList{
		Observable: newObservable(VaultListState{Vaults: []vault.Vault{}}),
		vaults:     vaults,
		log:        log.With("component", "vault_list"),
	}
}

// Load refreshes the vault list. On failure the previous list is kept.
func (c *VaultList) Load(ctx context.Context) error {
	vaults, err := c.vaults.List(ctx)
	if err != nil {
		c.log.Error("failed to load vaults", "error", err)
		c.update(func(s VaultListState) VaultListState {
			s.Err = err
			return s
		})
		return err
	}

	c.update(func(s VaultListState) VaultListState {
		s.Vaults = vaults
		s.Err = nil
		return s
	})
	return nil
}
