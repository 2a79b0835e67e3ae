package ai

import (
	"log"

	"snake-deluxe/game"
	"snake-deluxe/game/types"
)

// SaveEvery is how many finished runs pass between Q-table saves
const SaveEvery = 10

// Autopilot plays the game with a QLearning agent and keeps learning while
// it does. Steer is fed one snapshot per tick.
type Autopilot struct {
	agent *QLearning
	path  string

	prev       *State
	prevAction Action
	prevScore  int
}

func NewAutopilot(agent *QLearning, path string) *Autopilot {
	return &Autopilot{agent: agent, path: path}
}

func (a *Autopilot) Agent() *QLearning {
	return a.agent
}

// Steer learns from the outcome of its previous choice and returns the
// heading for the next tick. It returns NONE when nothing is running.
func (a *Autopilot) Steer(snap game.Snapshot) types.Direction {
	if !snap.HasSnake() {
		return types.NONE
	}

	switch snap.Phase {
	case game.GameOver:
		a.finish(snap)
		return types.NONE
	case game.Running:
	default:
		return types.NONE
	}

	state := Observe(snap)
	if a.prev != nil {
		ate := snap.Score > a.prevScore
		reward := Reward(*a.prev, a.prevAction, state, ate, false)
		a.agent.Update(*a.prev, a.prevAction, reward, state, false)
	}

	action := a.agent.GetAction(state)
	a.prev = &state
	a.prevAction = action
	a.prevScore = snap.Score
	return action.Direction()
}

func (a *Autopilot) finish(snap game.Snapshot) {
	if a.prev == nil {
		return
	}
	a.agent.Update(*a.prev, a.prevAction, RewardDeath, *a.prev, true)
	a.agent.EndGame()
	a.prev = nil
	a.prevScore = 0

	games := a.agent.Games()
	log.Printf("Autopilot run %d over: score=%d", games, snap.FinalScore)
	if games%SaveEvery == 0 {
		a.save()
	}
}

// Close saves the Q-table
func (a *Autopilot) Close() {
	a.save()
}

func (a *Autopilot) save() {
	if a.path == "" {
		return
	}
	if err := a.agent.SaveQTable(a.path); err != nil {
		log.Printf("Warning: could not save q-table: %v", err)
	}
}
