package health

import "errors"

var (
	// ErrCheckFailed indicates a health check crossed its critical threshold.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckCancelled indicates the check context ended before sampling.
	ErrCheckCancelled = errors.New("health: check cancelled")
)
