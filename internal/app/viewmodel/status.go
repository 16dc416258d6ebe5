package viewmodel

import (
	"errors"
	"strings"
)

// SaveStatus tracks an edit session: Editing -> Saving -> Saved | Failed.
// A Failed session keeps its buffer and returns to Editing on the next edit.
type SaveStatus int

const (
	Editing SaveStatus = iota
	Saving
	Saved
	Failed
)

func (s SaveStatus) String() string {
	switch s {
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	case Saved:
		return "saved"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrCannotSave   = errors.New("form is incomplete")
	ErrCannotDelete = errors.New("nothing to delete")
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
