package ai

import (
	"fmt"

	"snake-deluxe/game"
	"snake-deluxe/game/entity"
	"snake-deluxe/game/manager"
	"snake-deluxe/game/types"
)

// State is the agent's coarse view of the board around the head
type State struct {
	RelativeFoodDir [2]int  // sign of the pickup offset from the head (x, y)
	FoodDistance    int     // Manhattan distance to the pickup
	DangerDirs      [4]bool // a step in each Action direction would be fatal
	Heading         Action
	Shield          bool
}

// Observe builds the State for a snapshot. It must only be called while the
// snapshot has a snake.
func Observe(snap game.Snapshot) State {
	snake := &entity.Snake{Body: snap.Snake, Current: snap.Direction}
	head := snake.Head()
	collisions := manager.NewCollisionManager(snap.Grid)

	state := State{
		RelativeFoodDir: [2]int{sign(snap.Pickup.Pos.X - head.X), sign(snap.Pickup.Pos.Y - head.Y)},
		FoodDistance:    manhattanDistance(head, snap.Pickup.Pos),
		Heading:         actionFor(snap.Direction),
		Shield:          snap.Shield,
	}
	for a := Up; a <= Left; a++ {
		state.DangerDirs[a] = collisions.IsDanger(head.Add(a.Direction().ToPoint()), snake)
	}
	return state
}

// Key is the Q-table row for the state. Distance is left out so states
// generalise across the board.
func (s State) Key() string {
	return fmt.Sprintf("%d,%d|%d%d%d%d|%d|%d",
		s.RelativeFoodDir[0], s.RelativeFoodDir[1],
		boolToInt(s.DangerDirs[Up]), boolToInt(s.DangerDirs[Right]),
		boolToInt(s.DangerDirs[Down]), boolToInt(s.DangerDirs[Left]),
		s.Heading, boolToInt(s.Shield))
}

func actionFor(d types.Direction) Action {
	switch d {
	case types.UP:
		return Up
	case types.DOWN:
		return Down
	case types.LEFT:
		return Left
	}
	return Right
}

func manhattanDistance(p1, p2 types.Point) int {
	return abs(p1.X-p2.X) + abs(p1.Y-p2.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
