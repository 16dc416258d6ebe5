package account

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "accounts-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/vaults/{vaultID}/accounts",
		Summary:     "Аккаунты хранилища",
		Tags:        []string{"accounts"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "accounts-find",
		Method:      http.MethodGet,
		Path:        "/api/v1/vaults/{vaultID}/accounts/{accountID}",
		Summary:     "Получить аккаунт",
		Tags:        []string{"accounts"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) upsertOp() huma.Operation {
	return huma.Operation{
		OperationID: "accounts-upsert",
		Method:      http.MethodPost,
		Path:        "/api/v1/vaults/{vaultID}/accounts",
		Summary:     "Создать или обновить аккаунт",
		Description: "updated=false означает, что аккаунт с неизвестным id сохранён как новый.",
		Tags:        []string{"accounts"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "accounts-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/vaults/{vaultID}/accounts/{accountID}",
		Summary:     "Удалить аккаунт",
		Tags:        []string{"accounts"},
		Middlewares: h.middleware,
	}
}
