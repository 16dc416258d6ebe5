package storage

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/config"
	"vaultkeeper/internal/domain/tag"
)

func TestOpen(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "memory",
			cfg:  config.Config{Env: config.EnvLocal},
		},
		{
			name: "sqlite",
			cfg:  config.Config{Env: config.EnvLocal},
		},
		{
			name:    "unknown",
			cfg:     config.Config{Env: config.EnvLocal},
			wantErr: true,
		},
	}
	tests[0].cfg.Storage.Driver = config.DriverMemory
	tests[1].cfg.Storage.Driver = config.DriverSQLite
	tests[1].cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "vk.db")
	tests[2].cfg.Storage.Driver = "mongo"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, &tt.cfg, log)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer s.Close()

			require.NoError(t, s.Tags.ReplaceAll(ctx, "v1", []tag.Tag{{ID: "1", Label: "a"}}))
			got, err := s.Tags.List(ctx, "v1")
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}
