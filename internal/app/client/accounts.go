package client

import (
	"context"
	"net/http"
	"net/url"

	"vaultkeeper/internal/domain/account"
)

// Accounts is account.Servicer over HTTP.
type Accounts struct {
	c *Client
}

var _ account.Servicer = (*Accounts)(nil)

func (c *Client) Accounts() *Accounts {
	return &Accounts{c: c}
}

func accountsPath(vaultID string) string {
	return vaultPath(vaultID) + "/accounts"
}

func accountPath(vaultID, accountID string) string {
	return accountsPath(vaultID) + "/" + url.PathEscape(accountID)
}

func (a *Accounts) List(ctx context.Context, vaultID string) ([]account.Account, error) {
	var out struct {
		Accounts []account.Account `json:"accounts"`
	}
	if err := a.c.do(ctx, http.MethodGet, accountsPath(vaultID), nil, &out, "list accounts"); err != nil {
		return nil, err
	}
	if out.Accounts == nil {
		out.Accounts = []account.Account{}
	}
	return out.Accounts, nil
}

func (a *Accounts) Get(ctx context.Context, vaultID, accountID string) (*account.Account, error) {
	var out account.Account
	if err := a.c.do(ctx, http.MethodGet, accountPath(vaultID, accountID), nil, &out, "get account"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Accounts) Upsert(ctx context.Context, vaultID string, in account.Account) (bool, error) {
	_, updated, err := a.Save(ctx, vaultID, in)
	return updated, err
}

type upsertRequest struct {
	ID           string               `json:"id,omitempty"`
	PlatformName string               `json:"platform_name"`
	Username     *string              `json:"username,omitempty"`
	Email        *string              `json:"email,omitempty"`
	Note         string               `json:"note,omitempty"`
	Credentials  []account.Credential `json:"credentials,omitempty"`
	TagIDs       []string             `json:"tag_ids,omitempty"`
}

func (a *Accounts) Save(ctx context.Context, vaultID string, in account.Account) (account.Account, bool, error) {
	body := upsertRequest{
		ID:           in.ID,
		PlatformName: in.PlatformName,
		Username:     in.Username,
		Email:        in.Email,
		Note:         in.Note,
		Credentials:  in.Credentials,
		TagIDs:       in.TagIDs,
	}

	var out struct {
		Account account.Account `json:"account"`
		Updated bool            `json:"updated"`
	}
	if err := a.c.do(ctx, http.MethodPost, accountsPath(vaultID), body, &out, "upsert account"); err != nil {
		return account.Account{}, false, err
	}
	return out.Account, out.Updated, nil
}

func (a *Accounts) Delete(ctx context.Context, vaultID, accountID string) (bool, error) {
	err := a.c.do(ctx, http.MethodDelete, accountPath(vaultID, accountID), nil, nil, "delete account")
	if statusOf(err) == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAll deletes the accounts one by one; the API has no bulk route.
func (a *Accounts) DeleteAll(ctx context.Context, vaultID string) error {
	current, err := a.List(ctx, vaultID)
	if err != nil {
		return err
	}
	for _, acc := range current {
		if _, err := a.Delete(ctx, vaultID, acc.ID); err != nil {
			return err
		}
	}
	return nil
}
