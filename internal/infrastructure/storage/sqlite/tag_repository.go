package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/tag"
)

type tagRow struct {
	VaultID  string `db:"vault_id"`
	ID       string `db:"id"`
	Label    string `db:"label"`
	Position int    `db:"position"`
}

type TagRepository struct {
	db  *sqlx.DB
	log *slog.Logger
}

func NewTagRepository(db *sqlx.DB, log *slog.Logger) *TagRepository {
	return &TagRepository{
		db:  db,
		log: log.With("component", "sqlite_tag_repository"),
	}
}

func (r *TagRepository) List(ctx context.Context, vaultID string) ([]tag.Tag, error) {
	const query = `SELECT vault_id, id, label, position FROM tags WHERE vault_id = ? ORDER BY position`

	var rows []tagRow
	if err := r.db.SelectContext(ctx, &rows, query, vaultID); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	tags := make([]tag.Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, tag.Tag{ID: row.ID, Label: row.Label})
	}
	return tags, nil
}

// ReplaceAll rewrites the tag set of the vault in one transaction.
func (r *TagRepository) ReplaceAll(ctx context.Context, vaultID string, tags []tag.Tag) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Error("rollback failed", "vault_id", vaultID, "error", rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tags WHERE vault_id = ?`, vaultID); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}

	if len(tags) > 0 {
		rows := make([]tagRow, 0, len(tags))
		for i, t := range tags {
			rows = append(rows, tagRow{VaultID: vaultID, ID: t.ID, Label: t.Label, Position: i})
		}
		const insert = `INSERT INTO tags (vault_id, id, label, position) VALUES (:vault_id, :id, :label, :position)`
		if _, err = tx.NamedExecContext(ctx, insert, rows); err != nil {
			return fmt.Errorf("insert tags: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tags: %w", err)
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, vaultID string, t tag.Tag) (bool, error) {
	const query = `DELETE FROM tags WHERE vault_id = ? AND id = ? AND label = ?`

	res, err := r.db.ExecContext(ctx, query, vaultID, t.ID, t.Label)
	if err != nil {
		return false, fmt.Errorf("delete tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete tag: %w", err)
	}
	return n > 0, nil
}

func (r *TagRepository) DeleteAll(ctx context.Context, vaultID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE vault_id = ?`, vaultID); err != nil {
		return fmt.Errorf("delete vault tags: %w", err)
	}
	return nil
}
