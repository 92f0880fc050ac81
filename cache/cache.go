package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/memocache/health"
	"github.com/jonwraymond/memocache/observe"
)

// DefaultTTL is applied when a caller does not pass a positive TTL.
const DefaultTTL = time.Hour

// Sentinel errors for cache operations.
var (
	ErrNilCache = errors.New("cache: cache is nil")
	ErrCodec    = errors.New("cache: codec failure")
)

// CodecError reports a key or value serialization failure.
// It is always recovered inside the cache; callers only see it in logs.
type CodecError struct {
	Op  string // "key", "encode" or "decode"
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("cache: %s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

// Is reports whether target is ErrCodec.
func (e *CodecError) Is(target error) bool { return target == ErrCodec }

// Entry is a stored value with an optional absolute expiry.
type Entry struct {
	// Value is the serialized value.
	Value string

	// ExpiresAt is the instant the entry stops being visible.
	// The zero time means the entry never expires.
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its expiry at now.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && e.ExpiresAt.Before(now)
}

// Store is the shared key/entry mapping behind a Cache.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Get: returns (Entry{}, false) for missing or expired entries and must not
//   mutate the store while doing so.
// - Set: inserts or overwrites unconditionally.
// - Delete: idempotent, no error on miss.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Set(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, key string) error
	Len() int
}

// Cache is a handle to a TTL cache. Copies of the pointer share one Store.
// A nil *Cache is valid and caches nothing.
type Cache struct {
	name       string
	store      Store
	keyer      Keyer
	codec      Codec
	scheduler  Scheduler
	policy     Policy
	tracer     observe.Tracer
	metrics    observe.Metrics
	logger     observe.Logger
	mw         *observe.Middleware
	group      *singleflight.Group
	thresholds health.ThresholdConfig
}

// New creates a cache. Without options it uses a MemoryStore, canonical JSON
// keys, JSON values, runtime timers, DefaultPolicy and no-op instrumentation.
func New(opts ...Option) *Cache {
	c := &Cache{
		name:    "default",
		keyer:   CanonicalKeyer{},
		codec:   JSONCodec{},
		policy:  DefaultPolicy(),
		tracer:  observe.NewNoopTracer(),
		metrics: observe.NewNoopMetrics(),
		logger:  observe.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		c.store = NewMemoryStore()
	}
	if c.scheduler == nil {
		c.scheduler = NewTimerScheduler()
	}
	c.logger = c.logger.With(observe.Field{Key: "cache.name", Value: c.name})
	c.mw = observe.NewMiddleware(c.tracer, c.metrics, c.logger)

	return c
}

// Name returns the cache name used in telemetry.
func (c *Cache) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Len returns the number of physically stored entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.store.Len()
}

// PendingExpiries returns the number of outstanding expiry timers, or zero
// when the scheduler does not track them.
func (c *Cache) PendingExpiries() int64 {
	if c == nil {
		return 0
	}
	if p, ok := c.scheduler.(interface{ Pending() int64 }); ok {
		return p.Pending()
	}
	return 0
}

func (c *Cache) meta(op string) observe.CacheMeta {
	return observe.CacheMeta{Name: c.name, Operation: op}
}
