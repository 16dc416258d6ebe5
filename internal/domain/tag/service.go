package tag

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/failure"
)

type Servicer interface {
	List(ctx context.Context, vaultID string) ([]Tag, error)
	Reconcile(ctx context.Context, vaultID string, desired []Tag) (bool, error)
	Delete(ctx context.Context, vaultID string, t Tag) (bool, error)
	DeleteAll(ctx context.Context, vaultID string) error
}

// Service keeps the tag set of every vault free of duplicate labels.
type Service struct {
	repo  Repository
	log   *slog.Logger
	newID func() string
}

// NewService creates a new tag service. A nil newID falls back to UUIDs.
func NewService(repo Repository, log *slog.Logger, newID func() string) *Service {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Service{
		repo:  repo,
		log:   log.With("component", "tag_service"),
		newID: newID,
	}
}

// List returns the tags of a vault
func (s *Service) List(ctx context.Context, vaultID string) ([]Tag, error) {
	tags, err := s.repo.List(ctx, vaultID)
	if err != nil {
		s.log.Error("failed to list tags", "vault_id", vaultID, "error", err)
		return nil, failure.New(failure.PersistenceFailed, "list tags", err)
	}
	if tags == nil {
		tags = []Tag{}
	}
	return tags, nil
}

// Reconcile upserts desired into the vault's tag set. It reports false without
// touching the store when the result would hold a label twice.
func (s *Service) Reconcile(ctx context.Context, vaultID string, desired []Tag) (bool, error) {
	if len(desired) == 0 {
		return true, nil
	}

	current, err := s.List(ctx, vaultID)
	if err != nil {
		return false, err
	}

	merged, err := Reconcile(current, desired, s.newID)
	if err != nil {
		if errors.Is(err, ErrDuplicateLabel) {
			s.log.Debug("tag reconcile rejected", "vault_id", vaultID, "error", err)
			return false, nil
		}
		return false, err
	}

	if err := s.repo.ReplaceAll(ctx, vaultID, merged); err != nil {
		s.log.Error("failed to store tags", "vault_id", vaultID, "error", err)
		return false, failure.New(failure.PersistenceFailed, "reconcile tags", err)
	}

	s.log.Info("tags reconciled", "vault_id", vaultID, "count", len(merged))
	return true, nil
}

// Delete removes a single tag. Only an exact match (ID and label) is removed.
func (s *Service) Delete(ctx context.Context, vaultID string, t Tag) (bool, error) {
	deleted, err := s.repo.Delete(ctx, vaultID, t)
	if err != nil {
		s.log.Error("failed to delete tag", "vault_id", vaultID, "tag_id", t.ID, "error", err)
		return false, failure.New(failure.PersistenceFailed, "delete tag", err)
	}
	return deleted, nil
}

// DeleteAll drops every tag of the vault.
func (s *Service) DeleteAll(ctx context.Context, vaultID string) error {
	if err := s.repo.DeleteAll(ctx, vaultID); err != nil {
		s.log.Error("failed to delete vault tags", "vault_id", vaultID, "error", err)
		return failure.New(failure.PersistenceFailed, "delete tags", err)
	}
	return nil
}
