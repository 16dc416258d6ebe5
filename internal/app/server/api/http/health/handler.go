package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Pinger checks that the storage answers.
type Pinger func(ctx context.Context) error

type Handler struct {
	ping       Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(ping Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		ping:       ping,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	storage := "OK"
	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			h.log.Warn("storage check failed", "error", err)
			storage = "UNAVAILABLE"
		}
	}

	return &Output{
		Body: Response{
			Status:  "OK",
			Storage: storage,
		},
	}, nil
}
