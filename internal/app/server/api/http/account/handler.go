package account

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app/server/api/http/httperr"
	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/vault"
)

type Handler struct {
	service    account.Servicer
	vaults     vault.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service account.Servicer, vaults vault.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		vaults:     vaults,
		log:        log.With("component", "account_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.upsertOp(), h.upsert)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) vaultExists(ctx context.Context, vaultID string) error {
	if _, err := h.vaults.Get(ctx, vaultID); err != nil {
		return httperr.From(h.log, err)
	}
	return nil
}

func (h *Handler) list(ctx context.Context, input *vaultInput) (*listOutput, error) {
	accounts, err := h.service.List(ctx, input.VaultID)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &listOutput{Body: accountListResponse{Accounts: accounts}}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*accountOutput, error) {
	a, err := h.service.Get(ctx, input.VaultID, input.AccountID)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &accountOutput{Body: *a}, nil
}

func (h *Handler) upsert(ctx context.Context, input *upsertInput) (*upsertOutput, error) {
	if err := h.vaultExists(ctx, input.VaultID); err != nil {
		return nil, err
	}
	if input.Body.Email != nil {
		if err := account.ValidateEmail(*input.Body.Email); err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid email", err)
		}
	}

	stored, updated, err := h.service.Save(ctx, input.VaultID, input.Body.toAccount())
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &upsertOutput{Body: accountUpsertResponse{Account: stored, Updated: updated}}, nil
}

func (h *Handler) delete(ctx context.Context, input *findInput) (*deleteOutput, error) {
	deleted, err := h.service.Delete(ctx, input.VaultID, input.AccountID)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	if !deleted {
		return nil, huma.Error404NotFound("account not found")
	}
	return &deleteOutput{Body: accountDeleteResponse{Deleted: true}}, nil
}
