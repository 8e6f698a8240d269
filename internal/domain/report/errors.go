package report

import "errors"

var (
	// ErrInvalidRange signals a missing or malformed date range. Summary
	// computation fails fast instead of defaulting; callers must validate
	// before rendering.
	ErrInvalidRange = errors.New("invalid date range")
)
