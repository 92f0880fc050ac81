package cache

import (
	"context"
	"time"

	"github.com/samber/mo"

	"github.com/jonwraymond/memocache/observe"
)

// Get returns the value stored under key, or mo.None when the key is
// missing, expired, or cannot be encoded or decoded as V.
func Get[K, V any](ctx context.Context, c *Cache, key K) mo.Option[V] {
	if c == nil {
		return mo.None[V]()
	}
	k, ok := c.encodeKey(ctx, key)
	if !ok {
		return mo.None[V]()
	}
	return lookup[V](ctx, c, k)
}

// Set stores value under key for ttl and schedules its removal. A ttl <= 0
// selects the policy default. Set returns the stored value, or mo.None when
// nothing was stored.
func Set[K, V any](ctx context.Context, c *Cache, key K, value V, ttl time.Duration) mo.Option[V] {
	if c == nil {
		return mo.None[V]()
	}
	k, ok := c.encodeKey(ctx, key)
	if !ok {
		return mo.None[V]()
	}
	if !c.put(ctx, k, value, ttl) {
		return mo.None[V]()
	}
	return mo.Some(value)
}

// Delete removes key from the cache. Idempotent.
// Expiry timers already scheduled for key still fire.
func Delete[K any](ctx context.Context, c *Cache, key K) {
	if c == nil {
		return
	}
	k, ok := c.encodeKey(ctx, key)
	if !ok {
		return
	}
	if err := c.store.Delete(ctx, k); err != nil {
		c.logger.Warn(ctx, "cache delete failed",
			observe.Field{Key: "cache.key", Value: k},
			observe.Field{Key: "error", Value: err.Error()},
		)
	}
}

func lookup[V any](ctx context.Context, c *Cache, k string) mo.Option[V] {
	entry, ok := c.store.Get(ctx, k)
	if !ok {
		c.metrics.RecordLookup(ctx, c.meta("get"), false)
		return mo.None[V]()
	}

	var v V
	if err := c.codec.Decode(entry.Value, &v); err != nil {
		c.codecFailure(ctx, "decode", k, err)
		c.metrics.RecordLookup(ctx, c.meta("get"), false)
		return mo.None[V]()
	}

	c.metrics.RecordLookup(ctx, c.meta("get"), true)
	return mo.Some(v)
}

func (c *Cache) encodeKey(ctx context.Context, key any) (string, bool) {
	k, err := c.keyer.Key(key)
	if err != nil {
		c.codecFailure(ctx, "key", "", err)
		return "", false
	}
	return k, true
}

// put writes one entry and schedules exactly one expiry timer for it.
func (c *Cache) put(ctx context.Context, k string, value any, ttl time.Duration) bool {
	data, err := c.codec.Encode(value)
	if err != nil {
		c.codecFailure(ctx, "encode", k, err)
		return false
	}

	ttl = c.policy.EffectiveTTL(ttl)
	entry := Entry{Value: data, ExpiresAt: time.Now().Add(ttl)}

	if err := c.store.Set(ctx, k, entry); err != nil {
		c.logger.Warn(ctx, "cache store failed",
			observe.Field{Key: "cache.key", Value: k},
			observe.Field{Key: "error", Value: err.Error()},
		)
		return false
	}
	c.metrics.RecordStore(ctx, c.meta("set"))

	c.scheduler.Schedule(ttl, func() { c.expire(k) })
	return true
}

// expire removes whatever is stored under k. It does not check that the
// entry is the one whose store scheduled it, and it records the timer even
// when nothing was left to remove.
func (c *Cache) expire(k string) {
	ctx := context.Background()
	if err := c.store.Delete(ctx, k); err != nil {
		c.logger.Warn(ctx, "cache expiry failed",
			observe.Field{Key: "cache.key", Value: k},
			observe.Field{Key: "error", Value: err.Error()},
		)
		return
	}
	c.metrics.RecordExpiry(ctx, c.meta("expire"))
}

func (c *Cache) codecFailure(ctx context.Context, op, k string, err error) {
	c.metrics.RecordCodecError(ctx, c.meta(op))

	fields := []observe.Field{{Key: "error", Value: err.Error()}}
	if k != "" {
		fields = append(fields, observe.Field{Key: "cache.key", Value: k})
	}
	c.logger.Debug(ctx, "cache codec failure", fields...)
}
