package cache

import (
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/memocache/health"
	"github.com/jonwraymond/memocache/observe"
)

// Option configures a Cache.
type Option func(*Cache)

// WithName sets the cache name reported in logs, spans and metrics.
func WithName(name string) Option {
	return func(c *Cache) {
		if name != "" {
			c.name = name
		}
	}
}

// WithStore sets the backing store. Caches built on the same store share
// their entries.
func WithStore(s Store) Option {
	return func(c *Cache) {
		c.store = s
	}
}

// WithKeyer sets the key canonicalizer.
func WithKeyer(k Keyer) Option {
	return func(c *Cache) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithCodec sets the value codec.
func WithCodec(codec Codec) Option {
	return func(c *Cache) {
		if codec != nil {
			c.codec = codec
		}
	}
}

// WithScheduler sets the expiry scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Cache) {
		c.scheduler = s
	}
}

// WithPolicy sets the TTL policy.
func WithPolicy(p Policy) Option {
	return func(c *Cache) {
		c.policy = p
	}
}

// WithLogger sets the logger.
func WithLogger(l observe.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m observe.Metrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(t observe.Tracer) Option {
	return func(c *Cache) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithInstruments takes tracer, metrics and logger from an existing middleware,
// typically one built by observe.MiddlewareFromObserver.
func WithInstruments(mw *observe.Middleware) Option {
	return func(c *Cache) {
		if mw == nil {
			return
		}
		c.tracer = mw.Tracer()
		c.metrics = mw.Metrics()
		c.logger = mw.Logger()
	}
}

// WithSingleFlight coalesces concurrent misses on the same key into one
// producer call. Waiting callers receive the leader's value or error.
func WithSingleFlight() Option {
	return func(c *Cache) {
		c.group = &singleflight.Group{}
	}
}

// WithHealthThresholds sets the entry counts at which Check reports
// degraded and unhealthy. Zero disables a threshold.
func WithHealthThresholds(cfg health.ThresholdConfig) Option {
	return func(c *Cache) {
		c.thresholds = cfg
	}
}
