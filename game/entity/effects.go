package entity

import (
	"time"
)

// SpeedModifier is the single timed effect that changes the tick interval.
// StartedAt is measured on the run's game clock.
type SpeedModifier struct {
	Kind      FoodKind
	Interval  time.Duration
	StartedAt time.Duration
	Duration  time.Duration
}

func (m *SpeedModifier) Expired(now time.Duration) bool {
	return now-m.StartedAt >= m.Duration
}

func (m *SpeedModifier) Remaining(now time.Duration) time.Duration {
	left := m.Duration - (now - m.StartedAt)
	if left < 0 {
		return 0
	}
	return left
}

type Effects struct {
	Shield bool
	Speed  *SpeedModifier
}

func (e *Effects) Reset() {
	e.Shield = false
	e.Speed = nil
}
