package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app"
	"vaultkeeper/internal/app/client"
	"vaultkeeper/internal/app/server/api"
	"vaultkeeper/internal/app/viewmodel"
	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/failure"
	"vaultkeeper/internal/domain/tag"
	"vaultkeeper/internal/domain/vault"
	"vaultkeeper/internal/infrastructure/storage"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T) *client.Client {
	a := app.NewWithStorage(storage.NewMemory(), discard())
	srv := httptest.NewServer(api.New(a, discard()))
	t.Cleanup(func() {
		srv.Close()
		_ = a.Close()
	})
	return client.New(srv.URL+"/", discard())
}

func TestClient_Vaults(t *testing.T) {
	ctx := context.Background()
	vaults := newClient(t).Vaults()

	v, err := vaults.Upsert(ctx, vault.Vault{Name: "Personal"})
	require.NoError(t, err)
	require.NotEmpty(t, v.ID)
	require.NotNil(t, v.LastUpdate)

	got, err := vaults.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.Name, got.Name)

	list, err := vaults.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = vaults.Get(ctx, "missing")
	assert.True(t, failure.Is(err, failure.NotFound))

	_, err = vaults.Upsert(ctx, vault.Vault{ID: "missing", Name: "X"})
	assert.True(t, failure.Is(err, failure.NotFound))

	_, err = vaults.Upsert(ctx, vault.Vault{Name: ""})
	assert.True(t, failure.Is(err, failure.ValidationFailed))

	deleted, err := vaults.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = vaults.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestClient_Tags(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)
	v, err := c.Vaults().Upsert(ctx, vault.Vault{Name: "Personal"})
	require.NoError(t, err)
	tags := c.Tags()

	ok, err := tags.Reconcile(ctx, v.ID, []tag.Tag{{ID: "t1", Label: "mail"}, {ID: "t2", Label: "work"}})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = tags.Reconcile(ctx, v.ID, []tag.Tag{{Label: "mail"}})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = tags.Reconcile(ctx, v.ID, []tag.Tag{{ID: "t1", Label: "work"}, {ID: "t2", Label: "mail"}})
	require.NoError(t, err)
	assert.True(t, ok)

	deleted, err := tags.Delete(ctx, v.ID, tag.Tag{ID: "t1", Label: "mail"})
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = tags.Delete(ctx, v.ID, tag.Tag{ID: "t1", Label: "work"})
	require.NoError(t, err)
	assert.True(t, deleted)

	require.NoError(t, tags.DeleteAll(ctx, v.ID))
	left, err := tags.List(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestClient_Accounts(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)
	v, err := c.Vaults().Upsert(ctx, vault.Vault{Name: "Personal"})
	require.NoError(t, err)
	accounts := c.Accounts()

	email := "me@example.com"
	stored, updated, err := accounts.Save(ctx, v.ID, account.Account{
		PlatformName: "Fastmail",
		Email:        &email,
		Credentials:  []account.Credential{{ID: "0", Type: account.CredentialPIN, Value: "1234"}},
		TagIDs:       []string{"t1"},
	})
	require.NoError(t, err)
	assert.True(t, updated)
	require.NotEmpty(t, stored.ID)

	got, err := accounts.Get(ctx, v.ID, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, *got)

	updated, err = accounts.Upsert(ctx, v.ID, account.Account{ID: "legacy", PlatformName: "GitHub"})
	require.NoError(t, err)
	assert.False(t, updated)

	bad := "nope"
	_, _, err = accounts.Save(ctx, v.ID, account.Account{PlatformName: "X", Email: &bad})
	assert.True(t, failure.Is(err, failure.ValidationFailed))

	require.NoError(t, accounts.DeleteAll(ctx, v.ID))
	list, err := accounts.List(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	deleted, err := accounts.Delete(ctx, v.ID, stored.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestClient_DrivesControllers(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	detail, err := viewmodel.NewVaultDetail(ctx, "", c.Vaults(), c.Tags(), discard())
	require.NoError(t, err)
	name := "Personal"
	detail.Update(&name, nil)
	detail.UpdateTag(0, "mail")
	require.NoError(t, detail.Save(ctx))

	st := detail.State()
	assert.Equal(t, viewmodel.Saved, st.Status)
	require.Len(t, st.Tags, 1)
	assert.NotEmpty(t, st.Tags[0].ID)

	list := viewmodel.NewVaultList(c.Vaults(), discard())
	require.NoError(t, list.Load(ctx))
	assert.Len(t, list.State().Vaults, 1)
}

func TestClient_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := client.New(url, discard())

	err := c.HealthCheck(context.Background())
	assert.True(t, failure.Is(err, failure.PersistenceFailed))
	_, err = c.Vaults().List(context.Background())
	assert.True(t, failure.Is(err, failure.PersistenceFailed))
}

func TestClient_HealthCheck(t *testing.T) {
	assert.NoError(t, newClient(t).HealthCheck(context.Background()))
}

// Удалённые сервисы ведут себя так же, как локальные.
func TestClient_MatchesLocalServices(t *testing.T) {
	ctx := context.Background()
	a := app.NewWithStorage(storage.NewMemory(), discard())
	srv := httptest.NewServer(api.New(a, discard()))
	t.Cleanup(func() {
		srv.Close()
		_ = a.Close()
	})
	c := client.New(srv.URL, discard())

	tests := []struct {
		name     string
		tags     tag.Servicer
		accounts account.Servicer
		vaults   vault.Servicer
	}{
		{name: "local", tags: a.Tags, accounts: a.Accounts, vaults: a.Vaults},
		{name: "remote", tags: c.Tags(), accounts: c.Accounts(), vaults: c.Vaults()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags, err := tt.tags.List(ctx, "ghost")
			require.NoError(t, err)
			assert.Empty(t, tags)

			deleted, err := tt.tags.Delete(ctx, "ghost", tag.Tag{ID: "t1", Label: "mail"})
			require.NoError(t, err)
			assert.False(t, deleted)

			accounts, err := tt.accounts.List(ctx, "ghost")
			require.NoError(t, err)
			assert.Empty(t, accounts)

			v, err := tt.vaults.Upsert(ctx, vault.Vault{Name: "Blank " + tt.name})
			require.NoError(t, err)

			ok, err := tt.tags.Reconcile(ctx, v.ID, []tag.Tag{{ID: "b1", Label: ""}})
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = tt.tags.Reconcile(ctx, v.ID, []tag.Tag{{Label: ""}})
			require.NoError(t, err)
			assert.False(t, ok)

			stored, err := tt.tags.List(ctx, v.ID)
			require.NoError(t, err)
			assert.Equal(t, []tag.Tag{{ID: "b1", Label: ""}}, stored)
		})
	}
}
