// Package backup moves a vault with its tags and accounts in and out of a
// YAML document.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/failure"
	"vaultkeeper/internal/domain/tag"
	"vaultkeeper/internal/domain/vault"
)

// Version of the document layout written by Export.
const Version = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported backup version")
	ErrEmptyDocument      = errors.New("backup document is empty")
)

type Document struct {
	Version  int               `yaml:"version"`
	Vault    vault.Vault       `yaml:"vault"`
	Tags     []tag.Tag         `yaml:"tags"`
	Accounts []account.Account `yaml:"accounts"`
}

type Service struct {
	vaults   vault.Servicer
	tags     tag.Servicer
	accounts account.Servicer
	log      *slog.Logger
}

func NewService(vaults vault.Servicer, tags tag.Servicer, accounts account.Servicer, log *slog.Logger) *Service {
	return &Service{
		vaults:   vaults,
		tags:     tags,
		accounts: accounts,
		log:      log.With("component", "backup_service"),
	}
}

// Snapshot collects the vault with everything scoped to it.
func (s *Service) Snapshot(ctx context.Context, vaultID string) (*Document, error) {
	v, err := s.vaults.Get(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.List(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accounts.List(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	return &Document{Version: Version, Vault: *v, Tags: tags, Accounts: accounts}, nil
}

// Export writes the vault as YAML to w.
func (s *Service) Export(ctx context.Context, vaultID string, w io.Writer) error {
	doc, err := s.Snapshot(ctx, vaultID)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}

	s.log.Info("vault exported", "vault_id", vaultID, "tags", len(doc.Tags), "accounts", len(doc.Accounts))
	return nil
}

// Decode reads and checks a document without touching the stores.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, failure.New(failure.ValidationFailed, "decode backup", ErrEmptyDocument)
		}
		return nil, failure.New(failure.ValidationFailed, "decode backup", err)
	}
	if doc.Version != Version {
		return nil, failure.New(failure.ValidationFailed, "decode backup", fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version))
	}
	if err := doc.validate(); err != nil {
		return nil, failure.New(failure.ValidationFailed, "decode backup", err)
	}
	return &doc, nil
}

func (d *Document) validate() error {
	if d.Vault.Name == "" {
		return vault.ErrBlankName
	}
	if _, err := tag.Reconcile(nil, d.Tags, uuid.NewString); err != nil {
		return err
	}
	for _, a := range d.Accounts {
		for _, c := range a.Credentials {
			if err := c.Type.Validate(); err != nil {
				return fmt.Errorf("account %q: %w", a.PlatformName, err)
			}
		}
	}
	return nil
}

// Import reads a document and stores it as a new vault. Tag and account IDs
// are kept so that tag references stay valid.
func (s *Service) Import(ctx context.Context, r io.Reader) (vault.Vault, error) {
	doc, err := Decode(r)
	if err != nil {
		return vault.Vault{}, err
	}
	return s.Restore(ctx, doc)
}

// Restore stores a decoded document as a new vault.
func (s *Service) Restore(ctx context.Context, doc *Document) (vault.Vault, error) {
	created, err := s.vaults.Upsert(ctx, vault.Vault{
		Name:        doc.Vault.Name,
		Description: doc.Vault.Description,
	})
	if err != nil {
		return vault.Vault{}, err
	}

	ok, err := s.tags.Reconcile(ctx, created.ID, doc.Tags)
	if err != nil {
		return created, err
	}
	if !ok {
		return created, failure.New(failure.ValidationFailed, "restore backup", tag.ErrDuplicateLabel)
	}

	for _, a := range doc.Accounts {
		if _, err := s.accounts.Upsert(ctx, created.ID, a); err != nil {
			return created, err
		}
	}

	s.log.Info("vault imported", "vault_id", created.ID, "source_vault_id", doc.Vault.ID,
		"tags", len(doc.Tags), "accounts", len(doc.Accounts))
	return created, nil
}
