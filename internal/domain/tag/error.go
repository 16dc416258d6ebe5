package tag

import "errors"

var ErrDuplicateLabel = errors.New("duplicate tag label")
