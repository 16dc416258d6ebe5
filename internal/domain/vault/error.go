package vault

import "errors"

var (
	ErrNotFound  = errors.New("vault not found")
	ErrBlankName = errors.New("vault name is blank")
)
