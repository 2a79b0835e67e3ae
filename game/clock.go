package game

import (
	"sync"
	"time"
)

// TimeProvider supplies wall-clock readings. The controller schedules ticks
// from it; tests swap in a ManualClock.
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time {
	return time.Now()
}

// RealTime returns the system clock
func RealTime() TimeProvider {
	return realTime{}
}

// ManualClock is a TimeProvider that only moves when told to
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

func (m *ManualClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// GameClock measures run time with pauses cut out. Timed effects are
// compared against it, so a pause freezes their countdown.
type GameClock struct {
	source      TimeProvider
	startedAt   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	paused      bool
}

func NewGameClock(source TimeProvider) *GameClock {
	return &GameClock{source: source, startedAt: source.Now()}
}

// Restart zeroes the clock and clears any pause
func (gc *GameClock) Restart() {
	gc.startedAt = gc.source.Now()
	gc.pausedTotal = 0
	gc.paused = false
	gc.pausedAt = time.Time{}
}

func (gc *GameClock) Pause() {
	if gc.paused {
		return
	}
	gc.paused = true
	gc.pausedAt = gc.source.Now()
}

func (gc *GameClock) Resume() {
	if !gc.paused {
		return
	}
	gc.pausedTotal += gc.source.Now().Sub(gc.pausedAt)
	gc.paused = false
	gc.pausedAt = time.Time{}
}

func (gc *GameClock) IsPaused() bool {
	return gc.paused
}

// Elapsed is the run time so far, excluding paused spans
func (gc *GameClock) Elapsed() time.Duration {
	end := gc.source.Now()
	if gc.paused {
		end = gc.pausedAt
	}
	return end.Sub(gc.startedAt) - gc.pausedTotal
}
