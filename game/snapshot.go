package game

import (
	"math"
	"time"

	"snake-deluxe/game/entity"
	"snake-deluxe/game/manager"
	"snake-deluxe/game/types"
)

// Snapshot is a read-only view of the game handed to renderers
type Snapshot struct {
	Phase     Phase
	Grid      types.Grid
	Snake     []types.Point
	Direction types.Direction
	Pickup    entity.Pickup
	// PulsePhase scales a power-up between 0.9 and 1.0 of a cell
	PulsePhase float64
	Shield     bool

	Score      int
	HighScore  int
	FinalScore int

	Difficulty     types.Difficulty
	Interval       time.Duration
	SpeedEffect    entity.FoodKind
	SpeedRemaining time.Duration

	Leaderboard []manager.LeaderboardEntry
	PlayerName  string
	Events      Events
}

// HasSnake is false before the first run has been started
func (s Snapshot) HasSnake() bool {
	return len(s.Snake) > 0
}

// PulseAt mirrors the power-up pulse: |sin(t/200ms)| mapped onto [0.9, 1.0]
func PulseAt(t time.Time) float64 {
	ms := float64(t.UnixNano()) / float64(time.Millisecond)
	return math.Abs(math.Sin(ms/200))*0.1 + 0.9
}
