package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/account"
)

type AccountRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewAccountRepository(pool *pgxpool.Pool, log *slog.Logger) *AccountRepository {
	return &AccountRepository{
		pool: pool,
		log:  log.With("component", "postgres_account_repository"),
	}
}

const accountColumns = `id, platform_name, username, email, note, credentials, tag_ids`

func (r *AccountRepository) List(ctx context.Context, vaultID string) ([]account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE vault_id = $1 ORDER BY seq`

	rows, err := r.pool.Query(ctx, query, vaultID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (account.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) Get(ctx context.Context, vaultID, accountID string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE vault_id = $1 AND id = $2`

	a, err := scanAccount(r.pool.QueryRow(ctx, query, vaultID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

func (r *AccountRepository) Save(ctx context.Context, vaultID string, a account.Account) error {
	const query = `
		INSERT INTO accounts (vault_id, id, platform_name, username, email, note, credentials, tag_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (vault_id, id) DO UPDATE SET
			platform_name = EXCLUDED.platform_name,
			username = EXCLUDED.username,
			email = EXCLUDED.email,
			note = EXCLUDED.note,
			credentials = EXCLUDED.credentials,
			tag_ids = EXCLUDED.tag_ids`

	creds := a.Credentials
	if creds == nil {
		creds = []account.Credential{}
	}
	tagIDs := a.TagIDs
	if tagIDs == nil {
		tagIDs = []string{}
	}

	_, err := r.pool.Exec(ctx, query,
		vaultID, a.ID, a.PlatformName, a.Username, a.Email, a.Note, creds, tagIDs,
	)
	if err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	r.log.Debug("account row saved", "vault_id", vaultID, "account_id", a.ID)
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, vaultID, accountID string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE vault_id = $1 AND id = $2`, vaultID, accountID)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *AccountRepository) DeleteAll(ctx context.Context, vaultID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE vault_id = $1`, vaultID); err != nil {
		return fmt.Errorf("delete vault accounts: %w", err)
	}
	return nil
}

func scanAccount(row pgx.Row) (account.Account, error) {
	var a account.Account
	err := row.Scan(&a.ID, &a.PlatformName, &a.Username, &a.Email, &a.Note, &a.Credentials, &a.TagIDs)
	if err != nil {
		return account.Account{}, err
	}
	if a.Credentials == nil {
		a.Credentials = []account.Credential{}
	}
	if a.TagIDs == nil {
		a.TagIDs = []string{}
	}
	return a, nil
}
