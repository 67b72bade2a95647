package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrMissingImage    = errors.New("image is required")
	ErrNoDreams        = errors.New("at least one dream must be selected")
	ErrProviderFailure = errors.New("provider failure")
)
