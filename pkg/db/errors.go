package db

import "errors"

// ErrNotFound is returned when a requested record does not exist. Store
// methods map pgx.ErrNoRows onto it so callers never depend on pgx directly.
var ErrNotFound = errors.New("record not found")
