package cache

import "time"

// Policy configures TTL selection.
type Policy struct {
	// DefaultTTL is used when a caller passes a TTL <= 0.
	// If zero, the package DefaultTTL is used.
	DefaultTTL time.Duration

	// MaxTTL clamps every TTL. If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// DefaultPolicy returns a one hour default TTL with no maximum.
func DefaultPolicy() Policy {
	return Policy{DefaultTTL: DefaultTTL}
}

// EffectiveTTL returns the TTL to use, applying defaults and clamping.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}
	return ttl
}
