// Package httperr maps domain failures onto HTTP errors.
package httperr

import (
	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/failure"
)

// From converts a service error into a huma status error. Persistence
// failures are logged and hidden behind a generic message.
func From(log *slog.Logger, err error) error {
	if err == nil {
		return nil
	}
	switch failure.KindOf(err) {
	case failure.NotFound:
		return huma.Error404NotFound(err.Error())
	case failure.ValidationFailed:
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		log.Error("request failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
