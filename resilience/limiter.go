package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// LimiterConfig configures a Limiter.
type LimiterConfig struct {
	// MaxConcurrent is the number of slots.
	// Default: 10
	MaxConcurrent int64

	// ReleaseDelay is how long a slot stays taken after its call returns.
	// Zero means the default; negative releases immediately.
	// Default: 1 second
	ReleaseDelay time.Duration

	// MaxWait bounds the wait for a slot. Zero waits until ctx is done.
	MaxWait time.Duration

	// Disabled lets every call through without taking a slot.
	Disabled bool
}

// Limiter bounds concurrent operations with a weighted semaphore.
type Limiter struct {
	config LimiterConfig
	sem    *semaphore.Weighted

	mu       sync.Mutex
	running  int
	held     int64
	rejected int64
}

// NewLimiter creates a limiter.
func NewLimiter(config LimiterConfig) *Limiter {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}
	if config.ReleaseDelay == 0 {
		config.ReleaseDelay = time.Second
	}

	return &Limiter{
		config: config,
		sem:    semaphore.NewWeighted(config.MaxConcurrent),
	}
}

// Acquire takes a slot, waiting up to MaxWait or until ctx is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	if l.config.Disabled {
		return nil
	}

	waitCtx := ctx
	if l.config.MaxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.config.MaxWait)
		defer cancel()
	}

	if err := l.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.mu.Lock()
		l.rejected++
		l.mu.Unlock()
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrLimiterFull
		}
		return err
	}

	l.mu.Lock()
	l.held++
	l.mu.Unlock()
	return nil
}

// Release returns a slot after ReleaseDelay. It does not block.
func (l *Limiter) Release() {
	if l.config.Disabled {
		return
	}
	if l.config.ReleaseDelay < 0 {
		l.release()
		return
	}
	time.AfterFunc(l.config.ReleaseDelay, l.release)
}

func (l *Limiter) release() {
	l.mu.Lock()
	l.held--
	l.mu.Unlock()
	l.sem.Release(1)
}

// Execute runs op within a slot.
func (l *Limiter) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer l.Release()

	l.mu.Lock()
	l.running++
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.running--
		l.mu.Unlock()
	}()

	return op(ctx)
}

// Metrics returns current limiter statistics.
func (l *Limiter) Metrics() LimiterMetrics {
	l.mu.Lock()
	defer l.mu.Unlock()

	return LimiterMetrics{
		Running:       l.running,
		Held:          l.held,
		MaxConcurrent: l.config.MaxConcurrent,
		Rejected:      l.rejected,
	}
}

// LimiterMetrics contains limiter statistics.
type LimiterMetrics struct {
	Running       int   // calls executing now
	Held          int64 // slots taken, including those cooling down
	MaxConcurrent int64
	Rejected      int64
}

// Client shares one underlying client value behind a Limiter.
// Copies of the pointer share the same slots.
type Client[T any] struct {
	client  T
	limiter *Limiter
}

// NewClient wraps client with a limiter built from config.
func NewClient[T any](client T, config LimiterConfig) *Client[T] {
	return &Client[T]{client: client, limiter: NewLimiter(config)}
}

// Limiter returns the client's limiter.
func (c *Client[T]) Limiter() *Limiter { return c.limiter }

// Call runs fn with the wrapped client inside a limiter slot. Errors from fn
// are returned unchanged.
func Call[T, R any](ctx context.Context, c *Client[T], fn func(context.Context, T) (R, error)) (R, error) {
	var result R
	var callErr error

	err := c.limiter.Execute(ctx, func(ctx context.Context) error {
		result, callErr = fn(ctx, c.client)
		return callErr
	})
	if err != nil && callErr == nil {
		// Rejected before fn ran.
		return result, err
	}
	return result, callErr
}
