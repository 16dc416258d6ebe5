package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Проверка сервиса",
		Description: "Сервис отвечает OK всегда, поле storage показывает, доступно ли хранилище данных.",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
