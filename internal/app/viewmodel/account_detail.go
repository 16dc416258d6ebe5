package viewmodel

import (
	"context"
	"strconv"

	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/failure"
	"vaultkeeper/internal/domain/tag"
)

// AccountErrors holds field validation results of the form.
type AccountErrors struct {
	InvalidEmail bool
}

type AccountDetailState struct {
	VaultID string
	Account account.Account
	// Tags are the options attached to the account, in option order.
	Tags           []tag.Tag
	TagOptions     []tag.Tag
	ShowTagOptions bool
	Errors         AccountErrors
	Status         SaveStatus
	Err            error
}

// CanSave requires a platform name, no blank credential and a valid email.
func (s AccountDetailState) CanSave() bool {
	if isBlank(s.Account.PlatformName) || s.Errors.InvalidEmail {
		return false
	}
	for _, c := range s.Account.Credentials {
		if isBlank(c.Value) {
			return false
		}
	}
	return true
}

// AccountChange lists the fields to update; nil fields stay as they are.
type AccountChange struct {
	PlatformName *string
	Username     *string
	Email        *string
	Note         *string
}

// AccountDetail edits one account of a vault.
type AccountDetail struct {
	*Observable[AccountDetailState]
	accounts AccountStore
	log      *slog.Logger
	// nextCredID numbers credentials created in this session. The numbers
	// stay as credential IDs after saving.
	nextCredID int
}

// NewAccountDetail loads the account, or starts a blank one tagged with the
// first tag of the vault when accountID is empty.
func NewAccountDetail(ctx context.Context, vaultID, accountID string, accounts AccountStore, tags TagStore, log *slog.Logger) (*AccountDetail, error) {
	options, err := tags.List(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	var a account.Account
	if accountID != "" {
		found, err := accounts.Get(ctx, vaultID, accountID)
		if err != nil {
			return nil, err
		}
		a = found.Clone()
	} else if len(options) > 0 {
		a.TagIDs = []string{options[0].ID}
	}
	if a.Credentials == nil {
		a.Credentials = []account.Credential{}
	}
	if a.TagIDs == nil {
		a.TagIDs = []string{}
	}

	state := AccountDetailState{
		VaultID:    vaultID,
		Account:    a,
		Tags:       tagsOf(a, options),
		TagOptions: options,
		Errors:     AccountErrors{InvalidEmail: emailInvalid(a.Email)},
	}

	return &AccountDetail{
		Observable: newObservable(state),
		accounts:   accounts,
		log:        log.With("component", "account_detail", "vault_id", vaultID),
		nextCredID: nextCredentialID(a.Credentials),
	}, nil
}

func (c *AccountDetail) edit(fn func(s AccountDetailState) AccountDetailState) {
	c.update(func(s AccountDetailState) AccountDetailState {
		s = fn(s)
		if s.Status == Failed {
			s.Status = Editing
			s.Err = nil
		}
		return s
	})
}

// Update applies the non-nil fields and revalidates the email.
func (c *AccountDetail) Update(change AccountChange) {
	c.edit(func(s AccountDetailState) AccountDetailState {
		a := s.Account
		if change.PlatformName != nil {
			a.PlatformName = *change.PlatformName
		}
		if change.Username != nil {
			u := *change.Username
			a.Username = &u
		}
		if change.Email != nil {
			e := *change.Email
			a.Email = &e
		}
		if change.Note != nil {
			a.Note = *change.Note
		}
		s.Account = a
		s.Errors.InvalidEmail = emailInvalid(a.Email)
		return s
	})
}

// AddTag attaches an already loaded tag. Attaching it twice is a no-op.
func (c *AccountDetail) AddTag(t tag.Tag) {
	c.edit(func(s AccountDetailState) AccountDetailState {
		if s.Account.HasTag(t.ID) {
			return s
		}
		s.Account.TagIDs = append(append([]string(nil), s.Account.TagIDs...), t.ID)
		s.Tags = append(append([]tag.Tag(nil), s.Tags...), t)
		return s
	})
}

// RemoveTag detaches the tag.
func (c *AccountDetail) RemoveTag(t tag.Tag) {
	c.edit(func(s AccountDetailState) AccountDetailState {
		ids := make([]string, 0, len(s.Account.TagIDs))
		for _, id := range s.Account.TagIDs {
			if id != t.ID {
				ids = append(ids, id)
			}
		}
		s.Account.TagIDs = ids

		tags := make([]tag.Tag, 0, len(s.Tags))
		for _, tg := range s.Tags {
			if tg != t {
				tags = append(tags, tg)
			}
		}
		s.Tags = tags
		return s
	})
}

// CreateCredential appends an empty password credential.
func (c *AccountDetail) CreateCredential() {
	c.edit(func(s AccountDetailState) AccountDetailState {
		cred := account.Credential{
			ID:   strconv.Itoa(c.nextCredID),
			Type: account.CredentialPassword,
		}
		c.nextCredID++
		s.Account.Credentials = append(append([]account.Credential(nil), s.Account.Credentials...), cred)
		return s
	})
}

// UpdateCredential changes the value and/or type of the credential with id.
// Unknown IDs are ignored.
func (c *AccountDetail) UpdateCredential(id string, value *string, typ *account.CredentialType) {
	c.edit(func(s AccountDetailState) AccountDetailState {
		creds := append([]account.Credential(nil), s.Account.Credentials...)
		for i := range creds {
			if creds[i].ID != id {
				continue
			}
			if value != nil {
				creds[i].Value = *value
			}
			if typ != nil {
				creds[i].Type = *typ
			}
			break
		}
		s.Account.Credentials = creds
		return s
	})
}

// RemoveCredential drops the first credential equal to cred.
func (c *AccountDetail) RemoveCredential(cred account.Credential) {
	c.edit(func(s AccountDetailState) AccountDetailState {
		for i := range s.Account.Credentials {
			if s.Account.Credentials[i] == cred {
				creds := make([]account.Credential, 0, len(s.Account.Credentials)-1)
				creds = append(creds, s.Account.Credentials[:i]...)
				s.Account.Credentials = append(creds, s.Account.Credentials[i+1:]...)
				break
			}
		}
		return s
	})
}

// ToggleTagOptions shows or hides the tag picker.
func (c *AccountDetail) ToggleTagOptions() {
	c.update(func(s AccountDetailState) AccountDetailState {
		s.ShowTagOptions = !s.ShowTagOptions
		return s
	})
}

// Save stores the account. The buffer survives a failed save.
func (c *AccountDetail) Save(ctx context.Context) error {
	st := c.State()
	if !st.CanSave() {
		return failure.New(failure.ValidationFailed, "save account", ErrCannotSave)
	}
	c.update(func(s AccountDetailState) AccountDetailState {
		s.Status = Saving
		s.Err = nil
		return s
	})

	stored, updated, err := c.accounts.Save(ctx, st.VaultID, st.Account)
	if err != nil {
		c.log.Warn("account save failed", "error", err)
		c.update(func(s AccountDetailState) AccountDetailState {
			s.Status = Failed
			s.Err = err
			return s
		})
		return err
	}
	if !updated {
		c.log.Warn("account id was unknown, stored as new", "account_id", stored.ID)
	}

	c.update(func(s AccountDetailState) AccountDetailState {
		s.Account = stored
		s.Tags = tagsOf(stored, s.TagOptions)
		s.Status = Saved
		s.Err = nil
		return s
	})
	return nil
}

func emailInvalid(email *string) bool {
	if email == nil {
		return false
	}
	return account.ValidateEmail(*email) != nil
}

func tagsOf(a account.Account, options []tag.Tag) []tag.Tag {
	out := make([]tag.Tag, 0, len(a.TagIDs))
	for _, t := range options {
		if a.HasTag(t.ID) {
			out = append(out, t)
		}
	}
	return out
}

// nextCredentialID continues the numbering after the largest numeric ID so a
// new credential never shadows a loaded one.
func nextCredentialID(creds []account.Credential) int {
	next := 0
	for _, cr := range creds {
		if n, err := strconv.Atoi(cr.ID); err == nil && n >= next {
			next = n + 1
		}
	}
	return next
}
