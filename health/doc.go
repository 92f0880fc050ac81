// Package health provides health check results and a threshold checker.
//
// A Checker reports a Result with a Status of Healthy, Degraded or Unhealthy.
// ThresholdChecker samples a single gauge, such as the number of entries in
// an unbounded cache, and grades it against warning and critical levels:
//
//	checker := health.NewThresholdChecker("sessions", health.ThresholdConfig{
//	    Warning:  50_000,
//	    Critical: 100_000,
//	}, func(ctx context.Context) (float64, error) {
//	    return float64(c.Len()), nil
//	})
//
//	if r := checker.Check(ctx); r.Status != health.StatusHealthy {
//	    log.Printf("sessions cache: %s", r.Message)
//	}
package health
