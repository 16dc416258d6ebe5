package sqlite

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/tag"
	"vaultkeeper/internal/domain/vault"
	"vaultkeeper/internal/infrastructure/storage/storagetest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vaultkeeper.db")
	s, err := New(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteBackend(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagetest.Stores {
		s := openTestStorage(t)
		log := discardLogger()
		return storagetest.Stores{
			Vaults:   NewVaultRepository(s.DB(), log),
			Tags:     NewTagRepository(s.DB(), log),
			Accounts: NewAccountRepository(s.DB(), log),
		}
	})
}

func TestNew_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vaultkeeper.db")

	s, err := New(ctx, path, nil)
	require.NoError(t, err)
	repo := NewTagRepository(s.DB(), discardLogger())
	require.NoError(t, repo.ReplaceAll(ctx, "v1", []tag.Tag{{ID: "1", Label: "work"}}))
	require.NoError(t, s.Close())

	// второй запуск миграций не должен падать на ErrNoChange
	s, err = New(ctx, path, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := NewTagRepository(s.DB(), discardLogger()).List(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, []tag.Tag{{ID: "1", Label: "work"}}, got)
}

func TestAccountRepository_NullableColumns(t *testing.T) {
	ctx := context.Background()
	s := openTestStorage(t)
	repo := NewAccountRepository(s.DB(), discardLogger())

	require.NoError(t, repo.Save(ctx, "v1", account.Account{ID: "a1", PlatformName: "Bank"}))

	got, err := repo.Get(ctx, "v1", "a1")
	require.NoError(t, err)
	assert.Nil(t, got.Username)
	assert.Nil(t, got.Email)
	assert.Empty(t, got.Credentials)
	assert.Empty(t, got.TagIDs)
}

func setupMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestVaultRepository_Errors(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("database is locked")

	tests := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
		call  func(r *VaultRepository) error
		want  error
	}{
		{
			name: "list",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, last_update FROM vaults`)).
					WillReturnError(dbErr)
			},
			call: func(r *VaultRepository) error {
				_, err := r.List(ctx)
				return err
			},
			want: dbErr,
		},
		{
			name: "get missing",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM vaults WHERE id = ?`)).
					WithArgs("ghost").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "last_update"}))
			},
			call: func(r *VaultRepository) error {
				_, err := r.Get(ctx, "ghost")
				return err
			},
			want: vault.ErrNotFound,
		},
		{
			name: "delete",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM vaults WHERE id = ?`)).
					WithArgs("v1").
					WillReturnError(dbErr)
			},
			call: func(r *VaultRepository) error {
				_, err := r.Delete(ctx, "v1")
				return err
			},
			want: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMock(t)
			tt.setup(mock)

			err := tt.call(NewVaultRepository(db, discardLogger()))

			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagRepository_ReplaceAllRollsBack(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewTagRepository(db, discardLogger())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tags WHERE vault_id = ?`)).
		WithArgs("v1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tags`)).
		WillReturnError(errors.New("UNIQUE constraint failed: tags.vault_id, tags.label"))
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), "v1", []tag.Tag{{ID: "1", Label: "a"}, {ID: "2", Label: "a"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert tags")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_CorruptRow(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewAccountRepository(db, discardLogger())

	rows := sqlmock.NewRows([]string{"vault_id", "id", "platform_name", "username", "email", "note", "credentials", "tag_ids"}).
		AddRow("v1", "a1", "Bank", nil, nil, "", "{not json", "[]")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM accounts WHERE vault_id = ?`)).
		WithArgs("v1").
		WillReturnRows(rows)

	_, err := repo.List(context.Background(), "v1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}
