package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/vault"
)

type vaultRow struct {
	ID          string        `db:"id"`
	Name        string        `db:"name"`
	Description string        `db:"description"`
	LastUpdate  sql.NullInt64 `db:"last_update"`
}

func (r vaultRow) toDomain() vault.Vault {
	v := vault.Vault{ID: r.ID, Name: r.Name, Description: r.Description}
	if r.LastUpdate.Valid {
		t := time.UnixMilli(r.LastUpdate.Int64).UTC()
		v.LastUpdate = &t
	}
	return v
}

type VaultRepository struct {
	db  *sqlx.DB
	log *slog.Logger
}

func NewVaultRepository(db *sqlx.DB, log *slog.Logger) *VaultRepository {
	return &VaultRepository{
		db:  db,
		log: log.With("component", "sqlite_vault_repository"),
	}
}

func (r *VaultRepository) List(ctx context.Context) ([]vault.Vault, error) {
	const query = `SELECT id, name, description, last_update FROM vaults ORDER BY rowid`

	var rows []vaultRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list vaults: %w", err)
	}

	vaults := make([]vault.Vault, 0, len(rows))
	for _, row := range rows {
		vaults = append(vaults, row.toDomain())
	}
	return vaults, nil
}

func (r *VaultRepository) Get(ctx context.Context, id string) (*vault.Vault, error) {
	const query = `SELECT id, name, description, last_update FROM vaults WHERE id = ?`

	var row vaultRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vault.ErrNotFound
		}
		return nil, fmt.Errorf("get vault: %w", err)
	}

	v := row.toDomain()
	return &v, nil
}

func (r *VaultRepository) Save(ctx context.Context, v vault.Vault) error {
	const query = `
		INSERT INTO vaults (id, name, description, last_update)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			last_update = excluded.last_update`

	var lastUpdate sql.NullInt64
	if v.LastUpdate != nil {
		lastUpdate = sql.NullInt64{Int64: v.LastUpdate.UnixMilli(), Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, query, v.ID, v.Name, v.Description, lastUpdate); err != nil {
		return fmt.Errorf("save vault: %w", err)
	}
	r.log.Debug("vault row saved", "vault_id", v.ID)
	return nil
}

func (r *VaultRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vaults WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete vault: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete vault: %w", err)
	}
	return n > 0, nil
}
