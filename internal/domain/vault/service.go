package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/failure"
)

type Servicer interface {
	List(ctx context.Context) ([]Vault, error)
	Get(ctx context.Context, id string) (*Vault, error)
	Upsert(ctx context.Context, v Vault) (Vault, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Service owns vault records and the cascade of their scoped contents.
type Service struct {
	repo    Repository
	cascade []Cascader
	log     *slog.Logger
	newID   func() string
	now     func() time.Time
}

// Option tunes a Service.
type Option func(*Service)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// WithClock replaces time.Now as the source of LastUpdate.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithCascade registers stores whose rows are removed together with a vault.
func WithCascade(targets ...Cascader) Option {
	return func(s *Service) {
		s.cascade = append(s.cascade, targets...)
	}
}

// NewService creates a new vault service
func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		log:   log.With("component", "vault_service"),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all vaults
func (s *Service) List(ctx context.Context) ([]Vault, error) {
	vaults, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list vaults", "error", err)
		return nil, failure.New(failure.PersistenceFailed, "list vaults", err)
	}
	if vaults == nil {
		vaults = []Vault{}
	}
	return vaults, nil
}

// Get returns a vault by ID
func (s *Service) Get(ctx context.Context, id string) (*Vault, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, failure.New(failure.NotFound, "get vault", fmt.Errorf("%w: %s", ErrNotFound, id))
		}
		s.log.Error("failed to get vault", "vault_id", id, "error", err)
		return nil, failure.New(failure.PersistenceFailed, "get vault", err)
	}
	return v, nil
}

// Upsert stores the vault and returns the stored record. A vault without ID is
// created under a fresh ID; a vault with an ID must already exist.
func (s *Service) Upsert(ctx context.Context, v Vault) (Vault, error) {
	if strings.TrimSpace(v.Name) == "" {
		return Vault{}, failure.New(failure.ValidationFailed, "upsert vault", ErrBlankName)
	}

	created := false
	if v.ID == "" {
		v.ID = s.newID()
		created = true
	} else if _, err := s.Get(ctx, v.ID); err != nil {
		return Vault{}, err
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	v.LastUpdate = &now

	if err := s.repo.Save(ctx, v); err != nil {
		s.log.Error("failed to save vault", "vault_id", v.ID, "error", err)
		return Vault{}, failure.New(failure.PersistenceFailed, "upsert vault", err)
	}

	if created {
		s.log.Info("vault created", "vault_id", v.ID)
	} else {
		s.log.Info("vault updated", "vault_id", v.ID)
	}
	return v, nil
}

// Delete removes the vault together with every tag and account scoped to it.
// The vault row goes last so that a failed cascade can be retried.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := s.Get(ctx, id); err != nil {
		if failure.Is(err, failure.NotFound) {
			return false, nil
		}
		return false, err
	}

	for _, target := range s.cascade {
		if err := target.DeleteAll(ctx, id); err != nil {
			s.log.Error("failed to cascade vault delete", "vault_id", id, "error", err)
			return false, failure.New(failure.PersistenceFailed, "delete vault contents", err)
		}
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete vault", "vault_id", id, "error", err)
		return false, failure.New(failure.PersistenceFailed, "delete vault", err)
	}

	s.log.Info("vault deleted", "vault_id", id, "deleted", deleted)
	return deleted, nil
}
