// Package cache provides an in-process TTL cache with memoizing execution.
//
// Keys and values are arbitrary serializable Go values. Keys are reduced to a
// canonical string by a Keyer, values are stored in serialized form by a
// Codec, and every successful store schedules a one-shot expiry timer that
// removes the entry once its TTL elapses.
//
// Cached wraps a fallible producer: it returns the stored value on a hit and
// otherwise calls the producer, stores its result and returns it. Producer
// errors are returned unchanged and never cached. Cache-internal failures
// (key or value encoding, store errors) degrade to a miss and are never
// surfaced to the caller.
//
// Concurrent misses on the same key each call the producer unless the cache
// is built with WithSingleFlight.
package cache
