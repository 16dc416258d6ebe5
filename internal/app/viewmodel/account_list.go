package viewmodel

import (
	"context"
	"strings"

	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/account"
	"vaultkeeper/internal/domain/tag"
)

type AccountListState struct {
	VaultID  string
	Accounts []account.Account
	Tags     []tag.Tag
	// Filtered is Accounts narrowed by SelectedTagIDs and Search.
	Filtered       []account.Account
	SelectedTagIDs []string
	Search         string
	Err            error
}

// IsSelected reports whether the tag takes part in the filter.
func (s AccountListState) IsSelected(tagID string) bool {
	for _, id := range s.SelectedTagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// AccountList shows the accounts of a vault with search and tag filters.
type AccountList struct {
	*Observable[AccountListState]
	accounts AccountStore
	tags     TagStore
	log      *slog.Logger
}

func NewAccountList(vaultID string, accounts AccountStore, tags TagStore, log *slog.Logger) *AccountList {
	return &AccountList{
		Observable: newObservable(AccountListState{
			VaultID:        vaultID,
			Accounts:       []account.Account{},
			Tags:           []tag.Tag{},
			Filtered:       []account.Account{},
			SelectedTagIDs: []string{},
		}),
		accounts: accounts,
		tags:     tags,
		log:      log.With("component", "account_list", "vault_id", vaultID),
	}
}

// Load fetches accounts and tags and reapplies the current filters.
func (c *AccountList) Load(ctx context.Context) error {
	vaultID := c.State().VaultID

	accounts, err := c.accounts.List(ctx, vaultID)
	if err != nil {
		return c.fail(err)
	}
	tags, err := c.tags.List(ctx, vaultID)
	if err != nil {
		return c.fail(err)
	}

	c.update(func(s AccountListState) AccountListState {
		s.Accounts = accounts
		s.Tags = tags
		s.Err = nil
		s.Filtered = FilterAccounts(s.Accounts, s.SelectedTagIDs, s.Search)
		return s
	})
	return nil
}

func (c *AccountList) fail(err error) error {
	c.log.Error("failed to load accounts", "error", err)
	c.update(func(s AccountListState) AccountListState {
		s.Err = err
		return s
	})
	return err
}

// Search sets the search text and refilters.
func (c *AccountList) Search(text string) {
	c.update(func(s AccountListState) AccountListState {
		s.Search = text
		s.Filtered = FilterAccounts(s.Accounts, s.SelectedTagIDs, s.Search)
		return s
	})
}

// ToggleTagSelection adds the tag to the filter or removes it.
func (c *AccountList) ToggleTagSelection(t tag.Tag) {
	c.update(func(s AccountListState) AccountListState {
		selected := make([]string, 0, len(s.SelectedTagIDs)+1)
		found := false
		for _, id := range s.SelectedTagIDs {
			if id == t.ID {
				found = true
				continue
			}
			selected = append(selected, id)
		}
		if !found {
			selected = append(selected, t.ID)
		}
		s.SelectedTagIDs = selected
		s.Filtered = FilterAccounts(s.Accounts, s.SelectedTagIDs, s.Search)
		return s
	})
}

// ResolveTags returns the loaded tags referenced by the account, in tag
// order. References to deleted tags are skipped.
func (c *AccountList) ResolveTags(a account.Account) []tag.Tag {
	var out []tag.Tag
	for _, t := range c.State().Tags {
		if a.HasTag(t.ID) {
			out = append(out, t)
		}
	}
	return out
}

// FilterAccounts keeps the accounts that carry any selected tag (all of them
// when none is selected) and whose platform name, username or email contains
// search. Matching is case-sensitive and keeps the input order.
func FilterAccounts(accounts []account.Account, selectedTagIDs []string, search string) []account.Account {
	out := make([]account.Account, 0, len(accounts))
	for _, a := range accounts {
		if !matchesTags(a, selectedTagIDs) || !matchesSearch(a, search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesTags(a account.Account, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, id := range selected {
		if a.HasTag(id) {
			return true
		}
	}
	return false
}

func matchesSearch(a account.Account, search string) bool {
	if strings.Contains(a.PlatformName, search) {
		return true
	}
	if a.Username != nil && strings.Contains(*a.Username, search) {
		return true
	}
	return a.Email != nil && strings.Contains(*a.Email, search)
}
