// Package resilience provides call guards for expensive or rate-limited
// remote operations, typically the producers behind a memoizing cache.
//
//   - Limiter: caps concurrent calls; each slot is held for a cool-down
//     after the call returns, which spaces out bursts against rate-limited
//     upstreams.
//   - Client: a shared client value whose calls go through a Limiter.
//   - Timeout: bounds how long a caller waits for an operation.
//
// Typical use with a cache:
//
//	rpc := resilience.NewClient(rpcClient, resilience.LimiterConfig{MaxConcurrent: 3})
//
//	price, err := cache.Cached(ctx, c, "sol-usd", time.Minute, func(ctx context.Context) (float64, error) {
//	    return resilience.Call(ctx, rpc, func(ctx context.Context, cl *RPC) (float64, error) {
//	        return cl.SolUSDPrice(ctx)
//	    })
//	})
package resilience
