package vault

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app/server/api/http/httperr"
	"vaultkeeper/internal/domain/vault"
)

type Handler struct {
	service    vault.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service vault.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "vault_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.upsertOp(), h.upsert)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	vaults, err := h.service.List(ctx)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &listOutput{Body: vaultListResponse{Vaults: vaults}}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*vaultOutput, error) {
	v, err := h.service.Get(ctx, input.VaultID)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &vaultOutput{Body: *v}, nil
}

func (h *Handler) upsert(ctx context.Context, input *upsertInput) (*vaultOutput, error) {
	stored, err := h.service.Upsert(ctx, vault.Vault{
		ID:          input.Body.ID,
		Name:        input.Body.Name,
		Description: input.Body.Description,
	})
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &vaultOutput{Body: stored}, nil
}

func (h *Handler) delete(ctx context.Context, input *findInput) (*deleteOutput, error) {
	deleted, err := h.service.Delete(ctx, input.VaultID)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	if !deleted {
		return nil, huma.Error404NotFound("vault not found")
	}
	return &deleteOutput{Body: vaultDeleteResponse{Deleted: true}}, nil
}
