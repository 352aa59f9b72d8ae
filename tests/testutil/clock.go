package testutil

import (
	"time"

	"github.com/light-bringer/menucat-service/internal/pkg/clock"
)

// NewMockClock returns a settable clock starting now. Items created "days ago"
// are produced by rewinding it with Advance before the create call.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(time.Now())
}
