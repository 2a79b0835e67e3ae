package game

import (
	"snake-deluxe/game/entity"
	"snake-deluxe/game/types"
)

type Phase int

const (
	Idle Phase = iota
	Running
	Paused
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	}
	return "idle"
}

// GameState is the whole mutable world of one run. The controller holds the
// only live instance and hands it to the simulation each tick.
type GameState struct {
	Grid    types.Grid
	Snake   *entity.Snake
	Pickup  entity.Pickup
	Effects entity.Effects
	Score   int
	Phase   Phase
	Ticks   int
}

// NewGameState places the starting snake in the middle of grid. The pickup
// slot is filled by Simulation.NewRun.
func NewGameState(grid types.Grid) *GameState {
	return &GameState{
		Grid:  grid,
		Snake: entity.NewSnake(grid.Center()),
		Phase: Idle,
	}
}

// Copy returns a deep copy, safe to hand to another goroutine
func (gs *GameState) Copy() *GameState {
	out := *gs
	out.Snake = gs.Snake.Clone()
	if gs.Effects.Speed != nil {
		speed := *gs.Effects.Speed
		out.Effects.Speed = &speed
	}
	return &out
}
