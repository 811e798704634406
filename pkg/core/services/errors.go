package services

import "errors"

// Token failures are terminal for a request and map to the "not found /
// expired" condition at the API layer, distinct from internal errors.
var (
	ErrTokenNotFound = errors.New("selection token not found")
	ErrTokenExpired  = errors.New("selection token expired")
)
