package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/tag"
)

type TagRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewTagRepository(pool *pgxpool.Pool, log *slog.Logger) *TagRepository {
	return &TagRepository{
		pool: pool,
		log:  log.With("component", "postgres_tag_repository"),
	}
}

func (r *TagRepository) List(ctx context.Context, vaultID string) ([]tag.Tag, error) {
	const query = `SELECT id, label FROM tags WHERE vault_id = $1 ORDER BY position`

	rows, err := r.pool.Query(ctx, query, vaultID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (tag.Tag, error) {
		var t tag.Tag
		err := row.Scan(&t.ID, &t.Label)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan tags: %w", err)
	}
	return tags, nil
}

// ReplaceAll rewrites the tag set of the vault in one transaction.
func (r *TagRepository) ReplaceAll(ctx context.Context, vaultID string, tags []tag.Tag) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.log.Error("rollback failed", "vault_id", vaultID, "error", rbErr)
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM tags WHERE vault_id = $1`, vaultID); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}

	if len(tags) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"tags"},
			[]string{"vault_id", "id", "label", "position"},
			pgx.CopyFromSlice(len(tags), func(i int) ([]any, error) {
				return []any{vaultID, tags[i].ID, tags[i].Label, i}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("insert tags: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tags: %w", err)
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, vaultID string, t tag.Tag) (bool, error) {
	const query = `DELETE FROM tags WHERE vault_id = $1 AND id = $2 AND label = $3`

	res, err := r.pool.Exec(ctx, query, vaultID, t.ID, t.Label)
	if err != nil {
		return false, fmt.Errorf("delete tag: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *TagRepository) DeleteAll(ctx context.Context, vaultID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE vault_id = $1`, vaultID); err != nil {
		return fmt.Errorf("delete vault tags: %w", err)
	}
	return nil
}
