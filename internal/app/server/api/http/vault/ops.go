package vault

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "vaults-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/vaults",
		Summary:     "Список хранилищ",
		Tags:        []string{"vaults"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "vaults-find",
		Method:      http.MethodGet,
		Path:        "/api/v1/vaults/{vaultID}",
		Summary:     "Получить хранилище",
		Tags:        []string{"vaults"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) upsertOp() huma.Operation {
	return huma.Operation{
		OperationID: "vaults-upsert",
		Method:      http.MethodPost,
		Path:        "/api/v1/vaults",
		Summary:     "Создать или обновить хранилище",
		Description: "Без id создаёт новое хранилище. С id обновляет существующее, неизвестный id даёт 404.",
		Tags:        []string{"vaults"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "vaults-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/vaults/{vaultID}",
		Summary:     "Удалить хранилище вместе с тегами и аккаунтами",
		Tags:        []string{"vaults"},
		Middlewares: h.middleware,
	}
}
