// Package storagetest holds the behaviour every storage backend must show when
// driven through the domain services. Backend packages call Run from their own
// tests with a factory for fresh, empty repositories.
package storagetest

import (
	"context"
	"io"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/failure"
	"vaultkeeper/internal/domain/tag"
	"vaultkeeper/internal/domain/vault"
)

// Stores is one set of repositories sharing a backend.
type Stores struct {
	Vaults   vault.Repository
	Tags     tag.Repository
	Accounts account.Repository
}

// Factory returns empty stores. Cleanup is registered on t.
type Factory func(t *testing.T) Stores

type services struct {
	vaults   *vault.Service
	tags     *tag.Service
	accounts *account.Service
}

func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

func newServices(s Stores) services {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tags := tag.NewService(s.Tags, log, sequence("tag-"))
	accounts := account.NewService(s.Accounts, log, sequence("acc-"))
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	vaults := vault.NewService(s.Vaults, log,
		vault.WithIDGenerator(sequence("vault-")),
		vault.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
		vault.WithCascade(tags, accounts),
	)
	return services{vaults: vaults, tags: tags, accounts: accounts}
}

func labels(tags []tag.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Label)
	}
	sort.Strings(out)
	return out
}

func findLabel(tags []tag.Tag, id string) string {
	for _, t := range tags {
		if t.ID == id {
			return t.Label
		}
	}
	return ""
}

func strPtr(s string) *string { return &s }

// Run executes the full suite.
func Run(t *testing.T, newStores Factory) {
	t.Run("tags", func(t *testing.T) { runTags(t, newStores) })
	t.Run("accounts", func(t *testing.T) { runAccounts(t, newStores) })
	t.Run("vaults", func(t *testing.T) { runVaults(t, newStores) })
}

func runTags(t *testing.T, newStores Factory) {
	ctx := context.Background()

	t.Run("create many with empty ids", func(t *testing.T) {
		svc := newServices(newStores(t))
		var batch []tag.Tag
		var want []string
		for c := 'a'; c <= 'z'; c++ {
			batch = append(batch, tag.Tag{Label: string(c)})
			want = append(want, string(c))
		}

		ok, err := svc.tags.Reconcile(ctx, "1", batch)
		require.NoError(t, err)
		require.True(t, ok)

		got, err := svc.tags.List(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, want, labels(got))
		for _, tg := range got {
			assert.NotEmpty(t, tg.ID)
		}
	})

	t.Run("create many with explicit ids", func(t *testing.T) {
		svc := newServices(newStores(t))
		var batch []tag.Tag
		for i, c := 0, 'a'; c <= 'z'; i, c = i+1, c+1 {
			batch = append(batch, tag.Tag{ID: strconv.Itoa(i), Label: string(c)})
		}

		ok, err := svc.tags.Reconcile(ctx, "1", batch)
		require.NoError(t, err)
		require.True(t, ok)

		got, err := svc.tags.List(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, batch, got)
	})

	t.Run("update labels", func(t *testing.T) {
		svc := newServices(newStores(t))
		_, err := svc.tags.Reconcile(ctx, "1", []tag.Tag{{ID: "0", Label: "alpha"}, {ID: "1", Label: "beta"}})
		require.NoError(t, err)

		ok, err := svc.tags.Reconcile(ctx, "1", []tag.Tag{{ID: "0", Label: "gamma"}, {ID: "1", Label: "lorem"}})
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := svc.tags.List(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "gamma", findLabel(got, "0"))
		assert.Equal(t, "lorem", findLabel(got, "1"))
	})

	t.Run("swap labels", func(t *testing.T) {
		svc := newServices(newStores(t))
		_, err := svc.tags.Reconcile(ctx, "1", []tag.Tag{{ID: "0", Label: "alpha"}, {ID: "1", Label: "beta"}})
		require.NoError(t, err)

		ok, err := svc.tags.Reconcile(ctx, "1", []tag.Tag{{ID: "0", Label: "beta"}, {ID: "1", Label: "alpha"}})
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := svc.tags.List(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "beta", findLabel(got, "0"))
		assert.Equal(t, "alpha", findLabel(got, "1"))
	})

	t.Run("shared label in batch fails", func(t *testing.T) {
		svc := newServices(newStores(t))
		before := []tag.Tag{{ID: "1", Label: "alpha"}, {ID: "2", Label: "beta"}}
		_, err := svc.tags.Reconcile(ctx, "1", before)
		require.NoError(t, err)

		ok, err := svc.tags.Reconcile(ctx, "1", []tag.Tag{{ID: "1", Label: "shared"}, {ID: "2", Label: "shared"}})
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := svc.tags.List(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, before, got)
	})

	t.Run("duplicate against stored label fails", func(t *testing.T) {
		svc := newServices(newStores(t))
		_, err := svc.tags.Reconcile(ctx, "1", []tag.Tag{{ID: "1", Label: "label_one"}, {ID: "2", Label: "label_two"}})
		require.NoError(t, err)

		ok, err := svc.tags.Reconcile(ctx, "1", []tag.Tag{{ID: "2", Label: "label_one"}})
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := svc.tags.List(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "label_one", findLabel(got, "1"))
		assert.Equal(t, "label_two", findLabel(got, "2"))
	})

	t.Run("empty batch", func(t *testing.T) {
		svc := newServices(newStores(t))
		ok, err := svc.tags.Reconcile(ctx, "1", nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		svc := newServices(newStores(t))
		alpha := tag.Tag{ID: "0", Label: "alpha"}
		beta := tag.Tag{ID: "1", Label: "beta"}
		_, err := svc.tags.Reconcile(ctx, "1", []tag.Tag{alpha, beta})
		require.NoError(t, err)

		deleted, err := svc.tags.Delete(ctx, "1", alpha)
		require.NoError(t, err)
		assert.True(t, deleted)
		deleted, err = svc.tags.Delete(ctx, "1", beta)
		require.NoError(t, err)
		assert.True(t, deleted)

		got, err := svc.tags.List(ctx, "1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete needs matching label", func(t *testing.T) {
		svc := newServices(newStores(t))
		_, err := svc.tags.Reconcile(ctx, "1", []tag.Tag{{ID: "0", Label: "alpha"}})
		require.NoError(t, err)

		deleted, err := svc.tags.Delete(ctx, "1", tag.Tag{ID: "0", Label: "stale"})
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("delete nonexistent", func(t *testing.T) {
		svc := newServices(newStores(t))
		kept := []tag.Tag{{ID: "0", Label: "alpha"}}
		_, err := svc.tags.Reconcile(ctx, "1", kept)
		require.NoError(t, err)

		deleted, err := svc.tags.Delete(ctx, "1", tag.Tag{ID: "999", Label: "ghost"})
		require.NoError(t, err)
		assert.False(t, deleted)

		got, err := svc.tags.List(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, kept, got)
	})

	t.Run("unknown vault", func(t *testing.T) {
		svc := newServices(newStores(t))
		got, err := svc.tags.List(ctx, "ghostVault")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("vaults are isolated", func(t *testing.T) {
		svc := newServices(newStores(t))
		_, err := svc.tags.Reconcile(ctx, "1", []tag.Tag{{ID: "0", Label: "alpha"}})
		require.NoError(t, err)
		ok, err := svc.tags.Reconcile(ctx, "2", []tag.Tag{{ID: "0", Label: "alpha"}})
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := svc.tags.List(ctx, "1")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func runAccounts(t *testing.T, newStores Factory) {
	ctx := context.Background()

	t.Run("upsert get round trip", func(t *testing.T) {
		svc := newServices(newStores(t))
		in := account.Account{
			PlatformName: "GitHub",
			Username:     strPtr("octo"),
			Email:        strPtr("octo@example.com"),
			Note:         "work",
			Credentials: []account.Credential{
				{ID: "0", Type: account.CredentialPassword, Value: "hunter2"},
				{ID: "1", Type: account.CredentialPIN, Value: "1234"},
			},
			TagIDs: []string{"t2", "t1"},
		}

		stored, created, err := svc.accounts.Save(ctx, "v1", in)
		require.NoError(t, err)
		assert.True(t, created)
		require.NotEmpty(t, stored.ID)

		got, err := svc.accounts.Get(ctx, "v1", stored.ID)
		require.NoError(t, err)
		assert.Equal(t, stored, *got)
	})

	t.Run("replace keeps position", func(t *testing.T) {
		svc := newServices(newStores(t))
		first, _, err := svc.accounts.Save(ctx, "v1", account.Account{PlatformName: "a"})
		require.NoError(t, err)
		_, _, err = svc.accounts.Save(ctx, "v1", account.Account{PlatformName: "b"})
		require.NoError(t, err)

		first.PlatformName = "a2"
		updated, err := svc.accounts.Upsert(ctx, "v1", first)
		require.NoError(t, err)
		assert.True(t, updated)

		got, err := svc.accounts.List(ctx, "v1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a2", got[0].PlatformName)
		assert.Equal(t, "b", got[1].PlatformName)
	})

	t.Run("unknown id is inserted", func(t *testing.T) {
		svc := newServices(newStores(t))
		updated, err := svc.accounts.Upsert(ctx, "v1", account.Account{ID: "stray", PlatformName: "x"})
		require.NoError(t, err)
		assert.False(t, updated)

		got, err := svc.accounts.Get(ctx, "v1", "stray")
		require.NoError(t, err)
		assert.Equal(t, "x", got.PlatformName)
	})

	t.Run("get missing", func(t *testing.T) {
		svc := newServices(newStores(t))
		_, err := svc.accounts.Get(ctx, "v1", "missing")
		assert.True(t, failure.Is(err, failure.NotFound))
	})

	t.Run("delete", func(t *testing.T) {
		svc := newServices(newStores(t))
		stored, _, err := svc.accounts.Save(ctx, "v1", account.Account{PlatformName: "x"})
		require.NoError(t, err)

		deleted, err := svc.accounts.Delete(ctx, "v1", stored.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = svc.accounts.Delete(ctx, "v1", stored.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func runVaults(t *testing.T, newStores Factory) {
	ctx := context.Background()

	t.Run("upsert assigns id", func(t *testing.T) {
		svc := newServices(newStores(t))
		stored, err := svc.vaults.Upsert(ctx, vault.Vault{Name: "Personal"})
		require.NoError(t, err)
		assert.NotEmpty(t, stored.ID)
		require.NotNil(t, stored.LastUpdate)

		got, err := svc.vaults.Get(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, stored.Name, got.Name)
		assert.True(t, stored.LastUpdate.Equal(*got.LastUpdate))
	})

	t.Run("second upsert only moves last update", func(t *testing.T) {
		svc := newServices(newStores(t))
		first, err := svc.vaults.Upsert(ctx, vault.Vault{Name: "Personal", Description: "home"})
		require.NoError(t, err)
		fetched, err := svc.vaults.Get(ctx, first.ID)
		require.NoError(t, err)

		second, err := svc.vaults.Upsert(ctx, *fetched)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Name, second.Name)
		assert.Equal(t, first.Description, second.Description)
		assert.True(t, second.LastUpdate.After(*first.LastUpdate))
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		svc := newServices(newStores(t))
		for _, name := range []string{"one", "two", "three"} {
			_, err := svc.vaults.Upsert(ctx, vault.Vault{Name: name})
			require.NoError(t, err)
		}

		got, err := svc.vaults.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "one", got[0].Name)
		assert.Equal(t, "two", got[1].Name)
		assert.Equal(t, "three", got[2].Name)
	})

	t.Run("delete cascades", func(t *testing.T) {
		svc := newServices(newStores(t))
		doomed, err := svc.vaults.Upsert(ctx, vault.Vault{Name: "doomed"})
		require.NoError(t, err)
		kept, err := svc.vaults.Upsert(ctx, vault.Vault{Name: "kept"})
		require.NoError(t, err)

		for _, id := range []string{doomed.ID, kept.ID} {
			_, err = svc.tags.Reconcile(ctx, id, []tag.Tag{{Label: "work"}})
			require.NoError(t, err)
			_, err = svc.accounts.Upsert(ctx, id, account.Account{PlatformName: "mail"})
			require.NoError(t, err)
		}

		deleted, err := svc.vaults.Delete(ctx, doomed.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = svc.vaults.Get(ctx, doomed.ID)
		assert.True(t, failure.Is(err, failure.NotFound))
		tags, err := svc.tags.List(ctx, doomed.ID)
		require.NoError(t, err)
		assert.Empty(t, tags)
		accounts, err := svc.accounts.List(ctx, doomed.ID)
		require.NoError(t, err)
		assert.Empty(t, accounts)

		tags, err = svc.tags.List(ctx, kept.ID)
		require.NoError(t, err)
		assert.Len(t, tags, 1)
		accounts, err = svc.accounts.List(ctx, kept.ID)
		require.NoError(t, err)
		assert.Len(t, accounts, 1)
	})

	t.Run("delete missing", func(t *testing.T) {
		svc := newServices(newStores(t))
		deleted, err := svc.vaults.Delete(ctx, "ghost")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
