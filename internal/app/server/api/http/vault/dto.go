package vault

import (
	"vaultkeeper/internal/domain/vault"
)

type listOutput struct {
	Body vaultListResponse
}

type vaultListResponse struct {
	Vaults []vault.Vault `json:"vaults"`
}

type findInput struct {
	VaultID string `path:"vaultID" doc:"ID хранилища"`
}

type upsertInput struct {
	Body vaultUpsertRequest
}

type vaultUpsertRequest struct {
	ID          string `json:"id,omitempty" doc:"ID существующего хранилища; пусто для нового"`
	Name        string `json:"name" minLength:"1" doc:"Название"`
	Description string `json:"description,omitempty" doc:"Описание"`
}

type vaultOutput struct {
	Body vault.Vault
}

type deleteOutput struct {
	Body vaultDeleteResponse
}

type vaultDeleteResponse struct {
	Deleted bool `json:"deleted"`
}
