package resilience

import "errors"

// Sentinel errors for resilience operations.
var (
	// ErrLimiterFull is returned when no slot frees up within MaxWait.
	ErrLimiterFull = errors.New("resilience: limiter at capacity")

	// ErrTimeout is returned when an operation times out.
	ErrTimeout = errors.New("resilience: operation timed out")
)
