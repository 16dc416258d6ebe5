package httperr

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/failure"
)

func TestFrom(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: failure.New(failure.NotFound, "get vault", errors.New("vault not found")), status: http.StatusNotFound},
		{name: "validation", err: failure.New(failure.ValidationFailed, "upsert vault", errors.New("blank name")), status: http.StatusUnprocessableEntity},
		{name: "persistence", err: failure.New(failure.PersistenceFailed, "list", errors.New("disk")), status: http.StatusInternalServerError},
		{name: "unclassified", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var se huma.StatusError
			require.ErrorAs(t, From(log, tt.err), &se)
			assert.Equal(t, tt.status, se.GetStatus())
		})
	}

	assert.NoError(t, From(log, nil))
}
