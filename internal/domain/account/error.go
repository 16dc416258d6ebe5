package account

import "errors"

var (
	ErrNotFound     = errors.New("account not found")
	ErrInvalidEmail = errors.New("invalid email address")
)
