package types

import "errors"

// Domain error taxonomy. Callers match with errors.Is; the HTTP layer maps
// each to a status code.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrComplianceBlocked = errors.New("blocked by compliance rule")
	ErrExpired           = errors.New("share link expired")
	ErrAccessLimit       = errors.New("share link access limit reached")
	ErrAuth              = errors.New("share link password mismatch")
	ErrConflict          = errors.New("stale update")
	ErrStorage           = errors.New("storage failure")
)
