package cache

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jonwraymond/memocache/observe"
)

// Cached returns the value stored under key, or calls producer, stores its
// result for ttl and returns it.
// On a hit producer is not called. Producer errors are returned unchanged
// and nothing is stored. If key cannot be encoded, producer runs uncached.
//
// Without WithSingleFlight there is no per-key exclusion: concurrent misses
// each call producer, the last store wins, and every caller gets the value it
// computed.
func Cached[K, V any](
	ctx context.Context,
	c *Cache,
	key K,
	ttl time.Duration,
	producer func(context.Context) (V, error),
) (V, error) {
	if c == nil {
		return producer(ctx)
	}

	ctx, span := c.tracer.StartSpan(ctx, c.meta("cached"))
	v, hit, err := cached(ctx, c, key, ttl, producer)
	span.SetAttributes(attribute.Bool("cache.hit", hit))
	c.tracer.EndSpan(span, err)

	return v, err
}

func cached[K, V any](
	ctx context.Context,
	c *Cache,
	key K,
	ttl time.Duration,
	producer func(context.Context) (V, error),
) (V, bool, error) {
	k, ok := c.encodeKey(ctx, key)
	if !ok {
		v, err := observe.Wrap(c.mw, c.meta("compute"), producer)(ctx)
		return v, false, err
	}

	if v, ok := lookup[V](ctx, c, k).Get(); ok {
		c.logger.Debug(ctx, "cache hit", observe.Field{Key: "cache.key", Value: k})
		return v, true, nil
	}

	if c.group == nil {
		v, err := compute(ctx, c, k, ttl, producer)
		return v, false, err
	}

	res, err, _ := c.group.Do(k, func() (any, error) {
		// A previous flight may have stored the value after our lookup.
		if v, ok := lookup[V](ctx, c, k).Get(); ok {
			return flight{v: v, hit: true}, nil
		}
		v, err := compute(ctx, c, k, ttl, producer)
		return flight{v: v}, err
	})
	f, _ := res.(flight)

	var v V
	if f.v != nil {
		var ok bool
		if v, ok = f.v.(V); !ok && err == nil {
			// The flight was led by a caller expecting another value type.
			v, err = compute(ctx, c, k, ttl, producer)
			return v, false, err
		}
	}
	return v, f.hit, err
}

// flight is the shared outcome of a single-flight call. hit is set when the
// value came from the store rather than the producer.
type flight struct {
	v   any
	hit bool
}

func compute[V any](
	ctx context.Context,
	c *Cache,
	k string,
	ttl time.Duration,
	producer func(context.Context) (V, error),
) (V, error) {
	v, err := observe.Wrap(c.mw, c.meta("compute"), producer)(ctx)
	if err != nil {
		return v, err
	}

	if c.put(ctx, k, v, ttl) {
		c.logger.Debug(ctx, "cache entry stored", observe.Field{Key: "cache.key", Value: k})
	}
	return v, nil
}

// memoKey scopes a memoized argument to the function it belongs to.
type memoKey[K any] struct {
	Fn  string `json:"fn"`
	Arg K      `json:"arg"`
}

// Memoize returns fn wrapped with Cached. Results are keyed by name and the
// call argument, so several functions can share one cache.
func Memoize[K, V any](
	c *Cache,
	name string,
	ttl time.Duration,
	fn func(context.Context, K) (V, error),
) func(context.Context, K) (V, error) {
	return func(ctx context.Context, arg K) (V, error) {
		return Cached(ctx, c, memoKey[K]{Fn: name, Arg: arg}, ttl, func(ctx context.Context) (V, error) {
			return fn(ctx, arg)
		})
	}
}
