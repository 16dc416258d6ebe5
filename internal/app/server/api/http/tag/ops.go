package tag

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "tags-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/vaults/{vaultID}/tags",
		Summary:     "Теги хранилища",
		Tags:        []string{"tags"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) reconcileOp() huma.Operation {
	return huma.Operation{
		OperationID: "tags-reconcile",
		Method:      http.MethodPut,
		Path:        "/api/v1/vaults/{vaultID}/tags",
		Summary:     "Обновить набор тегов",
		Description: "Теги с id заменяются, без id добавляются. Повтор метки даёт 409, набор при этом не меняется.",
		Tags:        []string{"tags"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "tags-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/vaults/{vaultID}/tags/{tagID}",
		Summary:     "Удалить тег",
		Tags:        []string{"tags"},
		Middlewares: h.middleware,
	}
}
