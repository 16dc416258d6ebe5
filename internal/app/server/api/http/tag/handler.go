package tag

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app/server/api/http/httperr"
	"vaultkeeper/internal/domain/tag"
	"vaultkeeper/internal/domain/vault"
)

type Handler struct {
	service    tag.Servicer
	vaults     vault.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler creates the tag routes. Only reconcile checks the vault: reading
// or deleting tags of an unknown vault sees an empty set.
func NewHandler(service tag.Servicer, vaults vault.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		vaults:     vaults,
		log:        log.With("component", "tag_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.reconcileOp(), h.reconcile)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) vaultExists(ctx context.Context, vaultID string) error {
	if _, err := h.vaults.Get(ctx, vaultID); err != nil {
		return httperr.From(h.log, err)
	}
	return nil
}

func (h *Handler) list(ctx context.Context, input *vaultInput) (*listOutput, error) {
	tags, err := h.service.List(ctx, input.VaultID)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &listOutput{Body: tagListResponse{Tags: tags}}, nil
}

func (h *Handler) reconcile(ctx context.Context, input *reconcileInput) (*listOutput, error) {
	if err := h.vaultExists(ctx, input.VaultID); err != nil {
		return nil, err
	}

	desired := make([]tag.Tag, 0, len(input.Body.Tags))
	for _, t := range input.Body.Tags {
		desired = append(desired, tag.Tag{ID: t.ID, Label: t.Label})
	}

	ok, err := h.service.Reconcile(ctx, input.VaultID, desired)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	if !ok {
		return nil, huma.Error409Conflict(tag.ErrDuplicateLabel.Error())
	}

	tags, err := h.service.List(ctx, input.VaultID)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &listOutput{Body: tagListResponse{Tags: tags}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	tags, err := h.service.List(ctx, input.VaultID)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}

	// удаление требует точного совпадения, поэтому берём метку из хранилища
	for _, t := range tags {
		if t.ID != input.TagID {
			continue
		}
		deleted, err := h.service.Delete(ctx, input.VaultID, t)
		if err != nil {
			return nil, httperr.From(h.log, err)
		}
		if deleted {
			return &deleteOutput{Body: tagDeleteResponse{Deleted: true}}, nil
		}
		break
	}
	return nil, huma.Error404NotFound("tag not found")
}
