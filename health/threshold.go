package health

import (
	"context"
	"fmt"
	"time"
)

// ThresholdConfig sets the levels at which a sampled value degrades health.
type ThresholdConfig struct {
	// Warning is the value at or above which the check is degraded.
	// Zero disables the warning level.
	Warning float64

	// Critical is the value at or above which the check is unhealthy.
	// Zero disables the critical level.
	Critical float64
}

// SampleFunc returns the current value of the watched gauge.
type SampleFunc func(ctx context.Context) (float64, error)

// ThresholdChecker grades a sampled value against a ThresholdConfig.
type ThresholdChecker struct {
	name   string
	config ThresholdConfig
	sample SampleFunc
}

// NewThresholdChecker creates a checker for the gauge returned by sample.
// A critical level below the warning level is raised to the warning level.
func NewThresholdChecker(name string, config ThresholdConfig, sample SampleFunc) *ThresholdChecker {
	if config.Warning < 0 {
		config.Warning = 0
	}
	if config.Critical < 0 {
		config.Critical = 0
	}
	if config.Critical > 0 && config.Warning > 0 && config.Critical < config.Warning {
		config.Critical = config.Warning
	}

	return &ThresholdChecker{name: name, config: config, sample: sample}
}

// Name returns the checker name.
func (c *ThresholdChecker) Name() string {
	return c.name
}

// Check samples the gauge and grades it.
func (c *ThresholdChecker) Check(ctx context.Context) Result {
	start := time.Now()

	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", fmt.Errorf("%w: %v", ErrCheckCancelled, ctx.Err()))
	default:
	}

	value, err := c.sample(ctx)
	if err != nil {
		return Unhealthy(fmt.Sprintf("%s: sample failed", c.name), err).WithDuration(time.Since(start))
	}

	details := map[string]any{
		"value":    value,
		"warning":  c.config.Warning,
		"critical": c.config.Critical,
	}

	var result Result
	switch {
	case c.config.Critical > 0 && value >= c.config.Critical:
		result = Unhealthy(fmt.Sprintf("%s: %.0f at or above critical %.0f", c.name, value, c.config.Critical), ErrCheckFailed)
	case c.config.Warning > 0 && value >= c.config.Warning:
		result = Degraded(fmt.Sprintf("%s: %.0f at or above warning %.0f", c.name, value, c.config.Warning))
	default:
		result = Healthy(fmt.Sprintf("%s: %.0f", c.name, value))
	}

	return result.WithDetails(details).WithDuration(time.Since(start))
}

var _ Checker = (*ThresholdChecker)(nil)
