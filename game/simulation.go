package game

import (
	"time"

	"snake-deluxe/game/entity"
	"snake-deluxe/game/manager"
	"snake-deluxe/game/types"
)

// Events flags what happened during a step or transition
type Events uint16

const (
	EventAte Events = 1 << iota
	EventPowerUp
	EventShieldBroken
	EventEffectExpired
	EventGameOver
	EventNewHighScore
	EventStarted
	EventPaused
	EventResumed
)

func (e Events) Has(flag Events) bool {
	return e&flag != 0
}

type StepResult struct {
	Events    Events
	Eaten     entity.FoodKind
	Collision manager.CollisionType
}

// Simulation advances a GameState one tick at a time
type Simulation struct {
	collisions *manager.CollisionManager
	food       *manager.FoodManager
	effects    *manager.EffectManager
}

func NewSimulation(grid types.Grid, rng manager.Random) *Simulation {
	return &Simulation{
		collisions: manager.NewCollisionManager(grid),
		food:       manager.NewFoodManager(grid, rng),
		effects:    manager.NewEffectManager(),
	}
}

// NewRun builds a fresh running state with its first pickup in place
func (s *Simulation) NewRun(grid types.Grid) *GameState {
	s.food.Reset()
	state := NewGameState(grid)
	state.Pickup = entity.Pickup{
		Pos:  s.food.SpawnFood(manager.Occupied(state.Snake)),
		Kind: entity.Normal,
	}
	state.Phase = Running
	return state
}

// Interval is the tick interval for state given the current base interval
func (s *Simulation) Interval(state *GameState, base time.Duration) time.Duration {
	return s.effects.Interval(&state.Effects, base)
}

func (s *Simulation) Collisions() *manager.CollisionManager {
	return s.collisions
}

// Step runs one tick. base is the base interval of the selected difficulty
// and now the run's game clock reading. Nothing happens unless the state is
// Running.
func (s *Simulation) Step(state *GameState, base, now time.Duration) StepResult {
	var result StepResult
	if state.Phase != Running {
		return result
	}

	snake := state.Snake
	snake.CommitDirection()
	snake.Push(snake.NextHead())

	collision := s.collisions.CheckHead(snake)
	result.Collision = collision

	switch {
	case collision != manager.NoCollision && !state.Effects.Shield:
		// the fatal head is never committed
		snake.RemoveHead()
		state.Phase = GameOver
		result.Events |= EventGameOver
		return result

	case collision != manager.NoCollision:
		// the shield soaks up this hit and is gone
		state.Effects.Shield = false
		s.collisions.Absorb(snake, collision)
		snake.RemoveTail()
		result.Events |= EventShieldBroken

	case snake.Head() == state.Pickup.Pos:
		eaten := state.Pickup
		state.Score += eaten.Score()
		if eaten.IsPowerUp() {
			s.effects.Apply(eaten.Kind, snake, &state.Effects, base, now)
			result.Events |= EventPowerUp
		}
		s.food.RecordConsumption()
		state.Pickup = s.food.NextPickup(manager.Occupied(snake))
		result.Events |= EventAte
		result.Eaten = eaten.Kind

	default:
		snake.RemoveTail()
	}

	if s.effects.Sweep(&state.Effects, now) {
		result.Events |= EventEffectExpired
	}
	state.Ticks++
	return result
}
