package client

import (
	"context"
	"net/http"
	"net/url"

	"vaultkeeper/internal/domain/vault"
)

// Vaults is vault.Servicer over HTTP.
type Vaults struct {
	c *Client
}

var _ vault.Servicer = (*Vaults)(nil)

func (c *Client) Vaults() *Vaults {
	return &Vaults{c: c}
}

func vaultPath(id string) string {
	return "/api/v1/vaults/" + url.PathEscape(id)
}

func (v *Vaults) List(ctx context.Context) ([]vault.Vault, error) {
	var out struct {
		Vaults []vault.Vault `json:"vaults"`
	}
	if err := v.c.do(ctx, http.MethodGet, "/api/v1/vaults", nil, &out, "list vaults"); err != nil {
		return nil, err
	}
	if out.Vaults == nil {
		out.Vaults = []vault.Vault{}
	}
	return out.Vaults, nil
}

func (v *Vaults) Get(ctx context.Context, id string) (*vault.Vault, error) {
	var out vault.Vault
	if err := v.c.do(ctx, http.MethodGet, vaultPath(id), nil, &out, "get vault"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (v *Vaults) Upsert(ctx context.Context, in vault.Vault) (vault.Vault, error) {
	body := struct {
		ID          string `json:"id,omitempty"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}{ID: in.ID, Name: in.Name, Description: in.Description}

	var out vault.Vault
	if err := v.c.do(ctx, http.MethodPost, "/api/v1/vaults", body, &out, "upsert vault"); err != nil {
		return vault.Vault{}, err
	}
	return out, nil
}

// Delete reports false when the server does not know the vault.
func (v *Vaults) Delete(ctx context.Context, id string) (bool, error) {
	err := v.c.do(ctx, http.MethodDelete, vaultPath(id), nil, nil, "delete vault")
	if statusOf(err) == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
