package tag

import "fmt"

// Reconcile merges desired into existing and returns the resulting tag set.
//
// Tags of desired without ID get one from newID. A tag whose ID is already in
// the working set replaces it in place, others are appended. Tags of existing
// that desired does not mention are kept. Labels are checked on the merged
// set only, so two tags can swap labels in one call. Neither input is modified.
func Reconcile(existing, desired []Tag, newID func() string) ([]Tag, error) {
	merged := make([]Tag, len(existing), len(existing)+len(desired))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, t := range merged {
		index[t.ID] = i
	}

	for _, t := range desired {
		if t.ID == "" {
			t.ID = newID()
		}
		if i, ok := index[t.ID]; ok {
			merged[i] = t
			continue
		}
		index[t.ID] = len(merged)
		merged = append(merged, t)
	}

	seen := make(map[string]struct{}, len(merged))
	for _, t := range merged {
		if _, dup := seen[t.Label]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, t.Label)
		}
		seen[t.Label] = struct{}{}
	}

	return merged, nil
}
