package repository

import "errors"

// ErrNotFound is returned (wrapped) whenever a lookup or an update addresses a row that does not exist.
var ErrNotFound = errors.New("not found")
