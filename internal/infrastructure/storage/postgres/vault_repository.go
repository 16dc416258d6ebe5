package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/vault"
)

type VaultRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewVaultRepository(pool *pgxpool.Pool, log *slog.Logger) *VaultRepository {
	return &VaultRepository{
		pool: pool,
		log:  log.With("component", "postgres_vault_repository"),
	}
}

func (r *VaultRepository) List(ctx context.Context) ([]vault.Vault, error) {
	const query = `SELECT id, name, description, last_update FROM vaults ORDER BY seq`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vaults: %w", err)
	}
	defer rows.Close()

	vaults := []vault.Vault{}
	for rows.Next() {
		v, err := scanVault(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vault: %w", err)
		}
		vaults = append(vaults, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vaults: %w", err)
	}
	return vaults, nil
}

func (r *VaultRepository) Get(ctx context.Context, id string) (*vault.Vault, error) {
	const query = `SELECT id, name, description, last_update FROM vaults WHERE id = $1`

	v, err := scanVault(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vault.ErrNotFound
		}
		return nil, fmt.Errorf("get vault: %w", err)
	}
	return v, nil
}

func (r *VaultRepository) Save(ctx context.Context, v vault.Vault) error {
	const query = `
		INSERT INTO vaults (id, name, description, last_update)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			last_update = EXCLUDED.last_update`

	if _, err := r.pool.Exec(ctx, query, v.ID, v.Name, v.Description, v.LastUpdate); err != nil {
		return fmt.Errorf("save vault: %w", err)
	}
	r.log.Debug("vault row saved", "vault_id", v.ID)
	return nil
}

func (r *VaultRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vaults WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete vault: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanVault(row pgx.Row) (*vault.Vault, error) {
	var v vault.Vault
	if err := row.Scan(&v.ID, &v.Name, &v.Description, &v.LastUpdate); err != nil {
		return nil, err
	}
	if v.LastUpdate != nil {
		t := v.LastUpdate.UTC()
		v.LastUpdate = &t
	}
	return &v, nil
}
