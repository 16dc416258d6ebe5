package account

import (
	"vaultkeeper/internal/domain/account"
)

type vaultInput struct {
	VaultID string `path:"vaultID" doc:"ID хранилища"`
}

type findInput struct {
	VaultID   string `path:"vaultID" doc:"ID хранилища"`
	AccountID string `path:"accountID" doc:"ID аккаунта"`
}

type listOutput struct {
	Body accountListResponse
}

type accountListResponse struct {
	Accounts []account.Account `json:"accounts"`
}

type accountOutput struct {
	Body account.Account
}

type upsertInput struct {
	VaultID string `path:"vaultID" doc:"ID хранилища"`
	Body    accountUpsertRequest
}

type accountUpsertRequest struct {
	ID           string              `json:"id,omitempty" doc:"ID аккаунта; пусто для нового"`
	PlatformName string              `json:"platform_name" minLength:"1" doc:"Платформа"`
	Username     *string             `json:"username,omitempty"`
	Email        *string             `json:"email,omitempty"`
	Note         string              `json:"note,omitempty"`
	Credentials  []credentialRequest `json:"credentials,omitempty"`
	TagIDs       []string            `json:"tag_ids,omitempty"`
}

type credentialRequest struct {
	ID    string `json:"id,omitempty"`
	Type  string `json:"type" enum:"pin,password"`
	Value string `json:"value" minLength:"1"`
}

func (r accountUpsertRequest) toAccount() account.Account {
	a := account.Account{
		ID:           r.ID,
		PlatformName: r.PlatformName,
		Username:     r.Username,
		Email:        r.Email,
		Note:         r.Note,
		Credentials:  make([]account.Credential, 0, len(r.Credentials)),
		TagIDs:       append([]string{}, r.TagIDs...),
	}
	for _, c := range r.Credentials {
		a.Credentials = append(a.Credentials, account.Credential{
			ID:    c.ID,
			Type:  account.CredentialType(c.Type),
			Value: c.Value,
		})
	}
	return a
}

type upsertOutput struct {
	Body accountUpsertResponse
}

type accountUpsertResponse struct {
	Account account.Account `json:"account"`
	// Updated is false when an unknown id was stored as a new account.
	Updated bool `json:"updated"`
}

type deleteOutput struct {
	Body accountDeleteResponse
}

type accountDeleteResponse struct {
	Deleted bool `json:"deleted"`
}
