package testutil

import (
	"time"

	"github.com/light-bringer/storefront-catalog/internal/pkg/clock"
)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) *clock.MockClock {
	return clock.NewMockClock(t.UTC().Truncate(clock.Precision))
}
