package viewmodel

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/failure"
	"vaultkeeper/internal/domain/tag"
	"vaultkeeper/internal/domain/vault"
)

type VaultDetailState struct {
	Vault vault.Vault
	// Tags is the edit buffer. Entries with an empty ID are not stored yet.
	Tags    []tag.Tag
	Status  SaveStatus
	Err     error
	Deleted bool
}

// CanSave requires a name and at least one tag, none of them blank.
func (s VaultDetailState) CanSave() bool {
	if isBlank(s.Vault.Name) || len(s.Tags) == 0 {
		return false
	}
	for _, t := range s.Tags {
		if isBlank(t.Label) {
			return false
		}
	}
	return true
}

// CanDelete reports whether the vault exists in the store.
func (s VaultDetailState) CanDelete() bool {
	return s.Vault.IsPersisted()
}

// VaultDetail edits one vault and its tag set.
type VaultDetail struct {
	*Observable[VaultDetailState]
	vaults  VaultStore
	tags    TagStore
	log     *slog.Logger
	oldTags []tag.Tag
}

// NewVaultDetail loads the vault and its tags, or starts a blank vault when
// vaultID is empty. A vault without tags starts with one blank tag.
func NewVaultDetail(ctx context.Context, vaultID string, vaults VaultStore, tags TagStore, log *slog.Logger) (*VaultDetail, error) {
	state := VaultDetailState{}

	var oldTags []tag.Tag
	if vaultID != "" {
		v, err := vaults.Get(ctx, vaultID)
		if err != nil {
			return nil, err
		}
		state.Vault = *v

		oldTags, err = tags.List(ctx, vaultID)
		if err != nil {
			return nil, err
		}
		state.Tags = append([]tag.Tag(nil), oldTags...)
	}
	if len(state.Tags) == 0 {
		state.Tags = []tag.Tag{{}}
	}

	return &VaultDetail{
		Observable: newObservable(state),
		vaults:     vaults,
		tags:       tags,
		log:        log.With("component", "vault_detail", "vault_id", vaultID),
		oldTags:    oldTags,
	}, nil
}

// edit applies a buffer change and leaves a failed session.
func (c *VaultDetail) edit(fn func(s VaultDetailState) VaultDetailState) {
	c.update(func(s VaultDetailState) VaultDetailState {
		s = fn(s)
		if s.Status == Failed {
			s.Status = Editing
			s.Err = nil
		}
		return s
	})
}

// Update changes the fields that are not nil.
func (c *VaultDetail) Update(name, description *string) {
	c.edit(func(s VaultDetailState) VaultDetailState {
		if name != nil {
			s.Vault.Name = *name
		}
		if description != nil {
			s.Vault.Description = *description
		}
		return s
	})
}

// CreateTag appends a blank tag to the buffer.
func (c *VaultDetail) CreateTag() {
	c.edit(func(s VaultDetailState) VaultDetailState {
		s.Tags = append(append([]tag.Tag(nil), s.Tags...), tag.Tag{})
		return s
	})
}

// UpdateTag relabels the buffered tag at index. Out of range is a no-op.
func (c *VaultDetail) UpdateTag(index int, label string) {
	c.edit(func(s VaultDetailState) VaultDetailState {
		if index < 0 || index >= len(s.Tags) {
			return s
		}
		tags := append([]tag.Tag(nil), s.Tags...)
		tags[index].Label = label
		s.Tags = tags
		return s
	})
}

// RemoveTag drops the first buffered tag equal to t.
func (c *VaultDetail) RemoveTag(t tag.Tag) {
	c.edit(func(s VaultDetailState) VaultDetailState {
		for i := range s.Tags {
			if s.Tags[i] == t {
				tags := make([]tag.Tag, 0, len(s.Tags)-1)
				tags = append(tags, s.Tags[:i]...)
				s.Tags = append(tags, s.Tags[i+1:]...)
				break
			}
		}
		return s
	})
}

func (c *VaultDetail) fail(err error) error {
	c.log.Warn("vault save failed", "error", err)
	c.update(func(s VaultDetailState) VaultDetailState {
		s.Status = Failed
		s.Err = err
		return s
	})
	return err
}

// Save stores the vault and makes the buffer its tag set. Tags loaded at
// creation and missing from the buffer are deleted. A buffer whose labels
// would collide is rejected before anything is written, and a new vault is
// removed again when a later write fails.
func (c *VaultDetail) Save(ctx context.Context) error {
	st := c.State()
	if !st.CanSave() {
		return failure.New(failure.ValidationFailed, "save vault", ErrCannotSave)
	}
	c.update(func(s VaultDetailState) VaultDetailState {
		s.Status = Saving
		s.Err = nil
		return s
	})

	removed := c.removedTags(st.Tags)

	if st.Vault.IsPersisted() {
		stored, err := c.tags.List(ctx, st.Vault.ID)
		if err != nil {
			return c.fail(err)
		}
		if _, err := tag.Reconcile(withoutTags(stored, removed), st.Tags, uuid.NewString); err != nil {
			return c.fail(failure.New(failure.ValidationFailed, "save vault", err))
		}
	} else if _, err := tag.Reconcile(nil, st.Tags, uuid.NewString); err != nil {
		return c.fail(failure.New(failure.ValidationFailed, "save vault", err))
	}

	v := st.Vault
	created := false
	if !v.IsPersisted() {
		stored, err := c.vaults.Upsert(ctx, v)
		if err != nil {
			return c.fail(err)
		}
		v = stored
		created = true
	}
	// новое хранилище без тегов не должно пережить неудачное сохранение
	fail := func(err error) error {
		if created {
			c.rollback(ctx, v)
		}
		return c.fail(err)
	}

	for _, t := range removed {
		if _, err := c.tags.Delete(ctx, v.ID, t); err != nil {
			return fail(err)
		}
	}

	ok, err := c.tags.Reconcile(ctx, v.ID, st.Tags)
	if err != nil {
		return fail(err)
	}
	if !ok {
		return fail(failure.New(failure.ValidationFailed, "save vault", tag.ErrDuplicateLabel))
	}

	if !created {
		updated, err := c.vaults.Upsert(ctx, v)
		if err != nil {
			return fail(err)
		}
		v = updated
	}

	stored, err := c.tags.List(ctx, v.ID)
	if err != nil {
		return fail(err)
	}
	c.oldTags = stored

	c.update(func(s VaultDetailState) VaultDetailState {
		s.Vault = v
		s.Tags = append([]tag.Tag(nil), stored...)
		s.Status = Saved
		s.Err = nil
		return s
	})
	c.log.Info("vault saved", "saved_vault_id", v.ID, "tags", len(stored))
	return nil
}

// Delete removes the vault with everything scoped to it.
func (c *VaultDetail) Delete(ctx context.Context) error {
	st := c.State()
	if !st.CanDelete() {
		return failure.New(failure.ValidationFailed, "delete vault", ErrCannotDelete)
	}

	deleted, err := c.vaults.Delete(ctx, st.Vault.ID)
	if err != nil {
		c.update(func(s VaultDetailState) VaultDetailState {
			s.Err = err
			return s
		})
		return err
	}
	if !deleted {
		err := failure.New(failure.NotFound, "delete vault", fmt.Errorf("%w: %s", vault.ErrNotFound, st.Vault.ID))
		c.update(func(s VaultDetailState) VaultDetailState {
			s.Err = err
			return s
		})
		return err
	}

	c.update(func(s VaultDetailState) VaultDetailState {
		s.Deleted = true
		s.Err = nil
		return s
	})
	return nil
}

// rollback deletes a vault created by a save that failed later. When the
// delete fails too, the vault stays in the state so a retry reuses it.
func (c *VaultDetail) rollback(ctx context.Context, v vault.Vault) {
	if _, err := c.vaults.Delete(ctx, v.ID); err != nil {
		c.log.Error("failed to roll back created vault", "saved_vault_id", v.ID, "error", err)
		c.update(func(s VaultDetailState) VaultDetailState {
			s.Vault = v
			return s
		})
		return
	}
	c.log.Debug("created vault rolled back", "saved_vault_id", v.ID)
}

// removedTags returns the tags loaded at creation whose IDs are gone from buf.
func (c *VaultDetail) removedTags(buf []tag.Tag) []tag.Tag {
	keep := make(map[string]struct{}, len(buf))
	for _, t := range buf {
		if t.ID != "" {
			keep[t.ID] = struct{}{}
		}
	}
	var removed []tag.Tag
	for _, t := range c.oldTags {
		if _, ok := keep[t.ID]; !ok {
			removed = append(removed, t)
		}
	}
	return removed
}

func withoutTags(tags, drop []tag.Tag) []tag.Tag {
	ids := make(map[string]struct{}, len(drop))
	for _, t := range drop {
		ids[t.ID] = struct{}{}
	}
	out := make([]tag.Tag, 0, len(tags))
	for _, t := range tags {
		if _, ok := ids[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}
