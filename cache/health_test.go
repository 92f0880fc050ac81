package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonwraymond/memocache/health"
)

func TestCheck_Thresholds(t *testing.T) {
	tests := []struct {
		name    string
		entries int
		want    health.Status
	}{
		{"below warning", 1, health.StatusHealthy},
		{"at warning", 3, health.StatusDegraded},
		{"at critical", 5, health.StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newManualCache(
				WithName("prices"),
				WithHealthThresholds(health.ThresholdConfig{Warning: 3, Critical: 5}),
			)
			for i := 0; i < tt.entries; i++ {
				Set(context.Background(), c, fmt.Sprintf("k%d", i), i, time.Minute)
			}

			result := c.Check(context.Background())
			if result.Status != tt.want {
				t.Errorf("Status = %v, want %v (%s)", result.Status, tt.want, result.Message)
			}
			if got := result.Details["value"]; got != float64(tt.entries) {
				t.Errorf("Details[value] = %v, want %d", got, tt.entries)
			}
			if _, ok := result.Details["pending_expiries"]; !ok {
				t.Error("Details should include pending_expiries")
			}
		})
	}
}

func TestCheck_NoThresholdsAlwaysHealthy(t *testing.T) {
	c, _ := newManualCache()
	for i := 0; i < 100; i++ {
		Set(context.Background(), c, i, i, time.Minute)
	}
	if got := c.Check(context.Background()).Status; got != health.StatusHealthy {
		t.Errorf("Status = %v, want healthy", got)
	}
}

func TestCheck_NilCache(t *testing.T) {
	var c *Cache
	result := c.Check(context.Background())
	if result.Status != health.StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", result.Status)
	}
	if !errors.Is(result.Error, ErrNilCache) {
		t.Errorf("Error = %v, want ErrNilCache", result.Error)
	}
}

func TestCheck_CancelledContext(t *testing.T) {
	c := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := c.Check(ctx)
	if !errors.Is(result.Error, health.ErrCheckCancelled) {
		t.Errorf("Error = %v, want ErrCheckCancelled", result.Error)
	}
}
