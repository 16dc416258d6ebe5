package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/tag"
	"vaultkeeper/internal/infrastructure/storage/storagetest"
)

func TestMemoryBackend(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagetest.Stores {
		return storagetest.Stores{
			Vaults:   NewVaultRepository(),
			Tags:     NewTagRepository(),
			Accounts: NewAccountRepository(),
		}
	})
}

func TestAccountRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	require.NoError(t, repo.Save(ctx, "v1", account.Account{ID: "a1", TagIDs: []string{"t1"}}))

	got, err := repo.Get(ctx, "v1", "a1")
	require.NoError(t, err)
	got.TagIDs[0] = "changed"

	again, err := repo.Get(ctx, "v1", "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, again.TagIDs)
}

func TestTagRepository_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewTagRepository()
	require.NoError(t, repo.ReplaceAll(ctx, "v1", []tag.Tag{{ID: "1", Label: "a"}}))

	got, err := repo.List(ctx, "v1")
	require.NoError(t, err)
	got[0].Label = "mutated"

	again, err := repo.List(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Label)
}
