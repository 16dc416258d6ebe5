package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	"vaultkeeper/internal/app"
	"vaultkeeper/internal/app/server/api"
	"vaultkeeper/internal/infrastructure/storage"
)

type harness struct {
	t   *testing.T
	app *app.App
}

func newHarness(t *testing.T) *harness {
	color.NoColor = true
	a := app.NewWithStorage(storage.NewMemory(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = a.Close() })
	return &harness{t: t, app: a}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(cliutil.WithApp(context.Background(), h.app))
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) onlyVaultID() string {
	h.t.Helper()
	vaults, err := h.app.Vaults.List(context.Background())
	require.NoError(h.t, err)
	require.Len(h.t, vaults, 1)
	return vaults[0].ID
}

func TestVaultCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("vault", "save", "--name", "Personal", "--tag", "mail", "--tag", "work")
	assert.Contains(t, out, "saved")
	id := h.onlyVaultID()

	out = h.mustRun("vault", "list")
	assert.Contains(t, out, "Personal")

	h.mustRun("vault", "save", id, "--rename-tag", "mail=post", "--remove-tag", "work", "--description", "home")
	out = h.mustRun("vault", "show", id)
	assert.Contains(t, out, "post")
	assert.NotContains(t, out, "work")
	assert.Contains(t, out, "home")

	_, err := h.run("", "vault", "save", id, "--tag", "post")
	assert.Error(t, err)

	_, err = h.run("n\n", "vault", "delete", id)
	assert.ErrorIs(t, err, cliutil.ErrAborted)

	h.mustRun("vault", "delete", id, "--yes")
	out = h.mustRun("vault", "list")
	assert.Contains(t, out, "Хранилища не найдены")
}

func TestVaultSave_RequiresName(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "vault", "save", "--tag", "mail")

	assert.Error(t, err)
	vaults, err := h.app.Vaults.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, vaults)
}

func TestTagCommands(t *testing.T) {
	h := newHarness(t)
	h.mustRun("vault", "save", "--name", "Personal", "--tag", "mail")
	id := h.onlyVaultID()

	h.mustRun("tag", "set", id, "work", "bank")
	out := h.mustRun("tag", "list", id)
	assert.Contains(t, out, "work")
	assert.Contains(t, out, "bank")

	_, err := h.run("", "tag", "set", id, "mail")
	assert.Error(t, err)

	tags, err := h.app.Tags.List(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, tags, 3)

	h.mustRun("tag", "delete", id, tags[0].ID)
	_, err = h.run("", "tag", "delete", id, tags[0].ID)
	assert.Error(t, err)
}

func TestAccountCommands(t *testing.T) {
	h := newHarness(t)
	h.mustRun("vault", "save", "--name", "Personal", "--tag", "mail", "--tag", "work")
	id := h.onlyVaultID()

	out, err := h.run("hunter2\n1234\n", "account", "save", id,
		"--platform", "Fastmail", "--email", "me@example.com", "--password", "--pin")
	require.NoError(t, err, out)

	accounts, err := h.app.Accounts.List(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	acc := accounts[0]
	require.Len(t, acc.Credentials, 2)
	assert.Equal(t, "hunter2", acc.Credentials[0].Value)
	assert.Equal(t, "1234", acc.Credentials[1].Value)

	h.mustRun("account", "save", id, "--platform", "GitHub", "--username", "octo", "--tag", "work", "--untag", "mail")

	out = h.mustRun("account", "list", id, "--tag", "mail")
	assert.Contains(t, out, "Fastmail")
	assert.NotContains(t, out, "GitHub")

	out = h.mustRun("account", "list", id, "--search", "octo")
	assert.Contains(t, out, "GitHub")
	assert.NotContains(t, out, "Fastmail")

	out = h.mustRun("account", "show", id, acc.ID)
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "hunter2")
	out = h.mustRun("account", "show", id, acc.ID, "--reveal")
	assert.Contains(t, out, "hunter2")

	_, err = h.run("", "account", "save", id, acc.ID, "--email", "broken")
	assert.Error(t, err)

	h.mustRun("account", "delete", id, acc.ID)
	_, err = h.run("", "account", "delete", id, acc.ID)
	assert.Error(t, err)
}

func TestBackupCommands(t *testing.T) {
	h := newHarness(t)
	h.mustRun("vault", "save", "--name", "Personal", "--tag", "mail")
	id := h.onlyVaultID()
	_, err := h.run("secret\n", "account", "save", id, "--platform", "Fastmail", "--password")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "personal.yaml")
	h.mustRun("backup", "export", id, "-o", file)

	_, err = h.run("", "backup", "export", id, "-o", file)
	assert.Error(t, err)

	out := h.mustRun("backup", "import", file, "--dry-run")
	assert.Contains(t, out, "аккаунтов 1")

	h.mustRun("backup", "import", file)
	vaults, err := h.app.Vaults.List(context.Background())
	require.NoError(t, err)
	require.Len(t, vaults, 2)

	accounts, err := h.app.Accounts.List(context.Background(), vaults[1].ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "secret", accounts[0].Credentials[0].Value)
}

func TestRoot_OpensConfiguredStorage(t *testing.T) {
	color.NoColor = true
	t.Setenv("APP_ENV", "local")
	t.Setenv("LOG_LEVEL", "error")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--storage", "sqlite", "--db", filepath.Join(t.TempDir(), "vk.db"), "vault", "list"})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Хранилища не найдены")
}

func TestRoot_RemoteServer(t *testing.T) {
	color.NoColor = true
	h := newHarness(t)
	srv := httptest.NewServer(api.New(h.app, slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer srv.Close()
	t.Setenv("LOG_LEVEL", "error")

	run := func(args ...string) (string, error) {
		root := NewRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(io.Discard)
		root.SetArgs(append([]string{"--server", srv.URL}, args...))
		err := root.ExecuteContext(context.Background())
		return out.String(), err
	}

	_, err := run("vault", "save", "--name", "Remote", "--tag", "mail")
	require.NoError(t, err)

	vaults, err := h.app.Vaults.List(context.Background())
	require.NoError(t, err)
	require.Len(t, vaults, 1)
	assert.Equal(t, "Remote", vaults[0].Name)

	out, err := run("tag", "list", vaults[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "mail")

	_, err = run("serve")
	assert.Error(t, err)
}
