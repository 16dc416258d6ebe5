package client

import (
	"context"
	"net/http"
	"net/url"

	"vaultkeeper/internal/domain/tag"
)

// Tags is tag.Servicer over HTTP.
type Tags struct {
	c *Client
}

var _ tag.Servicer = (*Tags)(nil)

func (c *Client) Tags() *Tags {
	return &Tags{c: c}
}

func tagsPath(vaultID string) string {
	return vaultPath(vaultID) + "/tags"
}

func (t *Tags) List(ctx context.Context, vaultID string) ([]tag.Tag, error) {
	var out struct {
		Tags []tag.Tag `json:"tags"`
	}
	if err := t.c.do(ctx, http.MethodGet, tagsPath(vaultID), nil, &out, "list tags"); err != nil {
		return nil, err
	}
	if out.Tags == nil {
		out.Tags = []tag.Tag{}
	}
	return out.Tags, nil
}

// Reconcile reports false when the server rejects the set as a duplicate (409).
func (t *Tags) Reconcile(ctx context.Context, vaultID string, desired []tag.Tag) (bool, error) {
	if len(desired) == 0 {
		return true, nil
	}

	type tagRequest struct {
		ID    string `json:"id,omitempty"`
		Label string `json:"label"`
	}
	body := struct {
		Tags []tagRequest `json:"tags"`
	}{Tags: make([]tagRequest, 0, len(desired))}
	for _, d := range desired {
		body.Tags = append(body.Tags, tagRequest{ID: d.ID, Label: d.Label})
	}

	err := t.c.do(ctx, http.MethodPut, tagsPath(vaultID), body, nil, "reconcile tags")
	if statusOf(err) == http.StatusConflict {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the tag only if the server holds it with the same label.
func (t *Tags) Delete(ctx context.Context, vaultID string, target tag.Tag) (bool, error) {
	current, err := t.List(ctx, vaultID)
	if err != nil {
		return false, err
	}
	found := false
	for _, c := range current {
		if c == target {
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	err = t.c.do(ctx, http.MethodDelete, tagsPath(vaultID)+"/"+url.PathEscape(target.ID), nil, nil, "delete tag")
	if statusOf(err) == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAll deletes the tags one by one; the API has no bulk route.
func (t *Tags) DeleteAll(ctx context.Context, vaultID string) error {
	current, err := t.List(ctx, vaultID)
	if err != nil {
		return err
	}
	for _, c := range current {
		if _, err := t.Delete(ctx, vaultID, c); err != nil {
			return err
		}
	}
	return nil
}
