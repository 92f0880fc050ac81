// Package observe provides logging, tracing and metrics for cache operations.
//
// NewObserver builds OpenTelemetry tracer and meter providers from a Config;
// MiddlewareFromObserver turns an Observer into the Middleware a cache uses
// to record lookups, stores, expirations, codec failures and producer calls.
// Everything defaults to no-op implementations when disabled.
package observe
