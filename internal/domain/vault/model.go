package vault

import "time"

// Vault is a named container scoping a set of accounts and tags.
// An empty ID marks a vault that has not been persisted yet.
type Vault struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	LastUpdate  *time.Time `json:"last_update,omitempty" yaml:"last_update,omitempty"`
}

// IsPersisted reports whether the vault has been assigned an ID by the store.
func (v Vault) IsPersisted() bool {
	return v.ID != ""
}
