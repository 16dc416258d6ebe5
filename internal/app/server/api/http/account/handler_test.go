package account

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/vault"
	"vaultkeeper/internal/infrastructure/storage/memory"
)

type fixture struct {
	api      humatest.TestAPI
	accounts *account.Service
	vaultID  string
	base     string
}

func setup(t *testing.T) fixture {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	vaults := vault.NewService(memory.NewVaultRepository(), log)
	n := 0
	accounts := account.NewService(memory.NewAccountRepository(), log, func() string {
		n++
		return "a" + strconv.Itoa(n)
	})

	v, err := vaults.Upsert(context.Background(), vault.Vault{Name: "Personal"})
	require.NoError(t, err)

	_, api := humatest.New(t)
	NewHandler(accounts, vaults, log, nil).SetupRoutes(api)
	return fixture{api: api, accounts: accounts, vaultID: v.ID, base: "/api/v1/vaults/" + v.ID + "/accounts"}
}

func TestHandler_UpsertAndFind(t *testing.T) {
	f := setup(t)

	resp := f.api.Post(f.base, map[string]any{
		"platform_name": "Fastmail",
		"email":         "me@example.com",
		"credentials":   []map[string]any{{"id": "0", "type": "password", "value": "hunter2"}},
		"tag_ids":       []string{"t1", "t1"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var created accountUpsertResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.True(t, created.Updated)
	assert.Equal(t, "a1", created.Account.ID)
	assert.Equal(t, []string{"t1"}, created.Account.TagIDs)

	resp = f.api.Get(f.base + "/a1")
	require.Equal(t, http.StatusOK, resp.Code)
	var found account.Account
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &found))
	assert.Equal(t, created.Account, found)

	resp = f.api.Get(f.base)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"platform_name":"Fastmail"`)
}

func TestHandler_UpsertUnknownID(t *testing.T) {
	f := setup(t)

	resp := f.api.Post(f.base, map[string]any{"id": "legacy", "platform_name": "GitHub"})
	require.Equal(t, http.StatusOK, resp.Code)

	var out accountUpsertResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.False(t, out.Updated)
	assert.Equal(t, "legacy", out.Account.ID)
}

func TestHandler_UpsertValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "bad email", body: map[string]any{"platform_name": "X", "email": "nope"}},
		{name: "no platform", body: map[string]any{"platform_name": ""}},
		{name: "unknown credential type", body: map[string]any{
			"platform_name": "X",
			"credentials":   []map[string]any{{"type": "otp", "value": "1"}},
		}},
		{name: "blank credential", body: map[string]any{
			"platform_name": "X",
			"credentials":   []map[string]any{{"type": "pin", "value": ""}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			resp := f.api.Post(f.base, tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
			list, err := f.accounts.List(context.Background(), f.vaultID)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestHandler_NotFound(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusNotFound, f.api.Get(f.base+"/missing").Code)
	assert.Equal(t, http.StatusNotFound, f.api.Delete(f.base+"/missing").Code)
	assert.Equal(t, http.StatusNotFound, f.api.Post("/api/v1/vaults/nope/accounts", map[string]any{"platform_name": "X"}).Code)
}

func TestHandler_ListUnknownVault(t *testing.T) {
	f := setup(t)

	resp := f.api.Get("/api/v1/vaults/nope/accounts")

	require.Equal(t, http.StatusOK, resp.Code)
	var out accountListResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Empty(t, out.Accounts)
}

func TestHandler_Delete(t *testing.T) {
	f := setup(t)
	require.Equal(t, http.StatusOK, f.api.Post(f.base, map[string]any{"platform_name": "Fastmail"}).Code)

	resp := f.api.Delete(f.base + "/a1")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"deleted":true`)
	assert.Equal(t, http.StatusNotFound, f.api.Get(f.base+"/a1").Code)
}
