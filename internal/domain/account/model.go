package account

import "fmt"

// CredentialType is the kind of secret a credential holds.
type CredentialType string

const (
	CredentialPIN      CredentialType = "pin"
	CredentialPassword CredentialType = "password"
)

// Validate rejects unknown credential types.
func (t CredentialType) Validate() error {
	switch t {
	case CredentialPIN, CredentialPassword:
		return nil
	}
	return fmt.Errorf("unknown credential type: %q", string(t))
}

func (t CredentialType) String() string {
	return string(t)
}

// DisplayName returns a human readable name of the type.
func (t CredentialType) DisplayName() string {
	switch t {
	case CredentialPIN:
		return "PIN"
	case CredentialPassword:
		return "Password"
	default:
		return "Unknown"
	}
}

// Credential is one secret value owned by an account.
type Credential struct {
	ID    string         `json:"id" yaml:"id"`
	Type  CredentialType `json:"type" yaml:"type"`
	Value string         `json:"value" yaml:"value"`
}

// Account is a credential holding record scoped to a vault. TagIDs are weak
// references to tags of the same vault and may point at deleted tags.
type Account struct {
	ID           string       `json:"id" yaml:"id"`
	PlatformName string       `json:"platform_name" yaml:"platform_name"`
	Username     *string      `json:"username,omitempty" yaml:"username,omitempty"`
	Email        *string      `json:"email,omitempty" yaml:"email,omitempty"`
	Note         string       `json:"note" yaml:"note"`
	Credentials  []Credential `json:"credentials" yaml:"credentials"`
	TagIDs       []string     `json:"tag_ids" yaml:"tag_ids"`
}

// HasTag reports whether the account references the tag ID.
func (a Account) HasTag(id string) bool {
	for _, t := range a.TagIDs {
		if t == id {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with a.
func (a Account) Clone() Account {
	c := a
	if a.Username != nil {
		u := *a.Username
		c.Username = &u
	}
	if a.Email != nil {
		e := *a.Email
		c.Email = &e
	}
	if a.Credentials != nil {
		c.Credentials = append([]Credential(nil), a.Credentials...)
	}
	if a.TagIDs != nil {
		c.TagIDs = append([]string(nil), a.TagIDs...)
	}
	return c
}

// uniqueTagIDs drops repeated tag IDs, keeping the first occurrence.
func uniqueTagIDs(ids []string) []string {
	if len(ids) == 0 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
