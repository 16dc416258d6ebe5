package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/account"
)

// accountRow keeps credentials and tag IDs as JSON text columns.
type accountRow struct {
	VaultID      string         `db:"vault_id"`
	ID           string         `db:"id"`
	PlatformName string         `db:"platform_name"`
	Username     sql.NullString `db:"username"`
	Email        sql.NullString `db:"email"`
	Note         string         `db:"note"`
	Credentials  string         `db:"credentials"`
	TagIDs       string         `db:"tag_ids"`
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func newAccountRow(vaultID string, a account.Account) (accountRow, error) {
	creds := a.Credentials
	if creds == nil {
		creds = []account.Credential{}
	}
	credJSON, err := json.Marshal(creds)
	if err != nil {
		return accountRow{}, fmt.Errorf("encode credentials: %w", err)
	}
	tagIDs := a.TagIDs
	if tagIDs == nil {
		tagIDs = []string{}
	}
	tagJSON, err := json.Marshal(tagIDs)
	if err != nil {
		return accountRow{}, fmt.Errorf("encode tag ids: %w", err)
	}
	return accountRow{
		VaultID:      vaultID,
		ID:           a.ID,
		PlatformName: a.PlatformName,
		Username:     nullString(a.Username),
		Email:        nullString(a.Email),
		Note:         a.Note,
		Credentials:  string(credJSON),
		TagIDs:       string(tagJSON),
	}, nil
}

func (r accountRow) toDomain() (account.Account, error) {
	a := account.Account{
		ID:           r.ID,
		PlatformName: r.PlatformName,
		Username:     stringPtr(r.Username),
		Email:        stringPtr(r.Email),
		Note:         r.Note,
		Credentials:  []account.Credential{},
		TagIDs:       []string{},
	}
	if err := json.Unmarshal([]byte(r.Credentials), &a.Credentials); err != nil {
		return account.Account{}, fmt.Errorf("decode credentials of %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.TagIDs), &a.TagIDs); err != nil {
		return account.Account{}, fmt.Errorf("decode tag ids of %s: %w", r.ID, err)
	}
	return a, nil
}

type AccountRepository struct {
	db  *sqlx.DB
	log *slog.Logger
}

func NewAccountRepository(db *sqlx.DB, log *slog.Logger) *AccountRepository {
	return &AccountRepository{
		db:  db,
		log: log.With("component", "sqlite_account_repository"),
	}
}

const accountColumns = `vault_id, id, platform_name, username, email, note, credentials, tag_ids`

func (r *AccountRepository) List(ctx context.Context, vaultID string) ([]account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE vault_id = ? ORDER BY rowid`

	var rows []accountRow
	if err := r.db.SelectContext(ctx, &rows, query, vaultID); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts := make([]account.Account, 0, len(rows))
	for _, row := range rows {
		a, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (r *AccountRepository) Get(ctx context.Context, vaultID, accountID string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE vault_id = ? AND id = ?`

	var row accountRow
	if err := r.db.GetContext(ctx, &row, query, vaultID, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	a, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) Save(ctx context.Context, vaultID string, a account.Account) error {
	const query = `
		INSERT INTO accounts (vault_id, id, platform_name, username, email, note, credentials, tag_ids)
		VALUES (:vault_id, :id, :platform_name, :username, :email, :note, :credentials, :tag_ids)
		ON CONFLICT(vault_id, id) DO UPDATE SET
			platform_name = excluded.platform_name,
			username = excluded.username,
			email = excluded.email,
			note = excluded.note,
			credentials = excluded.credentials,
			tag_ids = excluded.tag_ids`

	row, err := newAccountRow(vaultID, a)
	if err != nil {
		return err
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	r.log.Debug("account row saved", "vault_id", vaultID, "account_id", a.ID)
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, vaultID, accountID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE vault_id = ? AND id = ?`, vaultID, accountID)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return n > 0, nil
}

func (r *AccountRepository) DeleteAll(ctx context.Context, vaultID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE vault_id = ?`, vaultID); err != nil {
		return fmt.Errorf("delete vault accounts: %w", err)
	}
	return nil
}
