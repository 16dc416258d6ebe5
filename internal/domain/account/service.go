package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/failure"
)

type Servicer interface {
	List(ctx context.Context, vaultID string) ([]Account, error)
	Get(ctx context.Context, vaultID, accountID string) (*Account, error)
	Upsert(ctx context.Context, vaultID string, a Account) (bool, error)
	Save(ctx context.Context, vaultID string, a Account) (Account, bool, error)
	Delete(ctx context.Context, vaultID, accountID string) (bool, error)
	DeleteAll(ctx context.Context, vaultID string) error
}

// Service manages the accounts of each vault. It does not check that tag
// references resolve; that is left to the callers showing them.
type Service struct {
	repo  Repository
	log   *slog.Logger
	newID func() string
}

// NewService creates a new account service. A nil newID falls back to UUIDs.
func NewService(repo Repository, log *slog.Logger, newID func() string) *Service {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Service{
		repo:  repo,
		log:   log.With("component", "account_service"),
		newID: newID,
	}
}

// List returns the accounts of a vault
func (s *Service) List(ctx context.Context, vaultID string) ([]Account, error) {
	accounts, err := s.repo.List(ctx, vaultID)
	if err != nil {
		s.log.Error("failed to list accounts", "vault_id", vaultID, "error", err)
		return nil, failure.New(failure.PersistenceFailed, "list accounts", err)
	}
	if accounts == nil {
		accounts = []Account{}
	}
	return accounts, nil
}

// Get returns an account by ID
func (s *Service) Get(ctx context.Context, vaultID, accountID string) (*Account, error) {
	a, err := s.repo.Get(ctx, vaultID, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, failure.New(failure.NotFound, "get account", fmt.Errorf("%w: %s", ErrNotFound, accountID))
		}
		s.log.Error("failed to get account", "vault_id", vaultID, "account_id", accountID, "error", err)
		return nil, failure.New(failure.PersistenceFailed, "get account", err)
	}
	return a, nil
}

// Upsert stores the account. The result tells whether a new account was
// created or an existing one replaced (true), or whether an account carrying
// an unknown ID was inserted as is (false). In every case the account is
// persisted unless an error is returned.
func (s *Service) Upsert(ctx context.Context, vaultID string, a Account) (bool, error) {
	_, updated, err := s.Save(ctx, vaultID, a)
	return updated, err
}

// Save is Upsert that also returns the stored account with its assigned ID.
func (s *Service) Save(ctx context.Context, vaultID string, a Account) (Account, bool, error) {
	for _, c := range a.Credentials {
		if err := c.Type.Validate(); err != nil {
			return Account{}, false, failure.New(failure.ValidationFailed, "upsert account", err)
		}
	}
	a = a.Clone()
	a.TagIDs = uniqueTagIDs(a.TagIDs)

	updated := true
	if a.ID == "" {
		a.ID = s.newID()
	} else if _, err := s.Get(ctx, vaultID, a.ID); err != nil {
		if !failure.Is(err, failure.NotFound) {
			return Account{}, false, err
		}
		updated = false
	}

	if err := s.repo.Save(ctx, vaultID, a); err != nil {
		s.log.Error("failed to save account", "vault_id", vaultID, "account_id", a.ID, "error", err)
		return Account{}, false, failure.New(failure.PersistenceFailed, "upsert account", err)
	}

	if !updated {
		s.log.Warn("account stored under unknown id", "vault_id", vaultID, "account_id", a.ID)
	} else {
		s.log.Info("account saved", "vault_id", vaultID, "account_id", a.ID)
	}
	return a, updated, nil
}

// Delete removes an account by ID
func (s *Service) Delete(ctx context.Context, vaultID, accountID string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, vaultID, accountID)
	if err != nil {
		s.log.Error("failed to delete account", "vault_id", vaultID, "account_id", accountID, "error", err)
		return false, failure.New(failure.PersistenceFailed, "delete account", err)
	}
	return deleted, nil
}

// DeleteAll drops every account of the vault.
func (s *Service) DeleteAll(ctx context.Context, vaultID string) error {
	if err := s.repo.DeleteAll(ctx, vaultID); err != nil {
		s.log.Error("failed to delete vault accounts", "vault_id", vaultID, "error", err)
		return failure.New(failure.PersistenceFailed, "delete accounts", err)
	}
	return nil
}
