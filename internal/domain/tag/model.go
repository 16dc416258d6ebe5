package tag

// Tag is a classifier scoped to one vault. Labels are unique within a vault.
type Tag struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}
