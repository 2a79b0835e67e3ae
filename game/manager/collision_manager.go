package manager

import (
	"snake-deluxe/game/entity"
	"snake-deluxe/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	}
	return "none"
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckHead tests the freshly pushed head. Walls are checked first, then the
// body as it was before the push, so the new head never matches itself.
func (cm *CollisionManager) CheckHead(snake *entity.Snake) CollisionType {
	head := snake.Head()
	if cm.isWallCollision(head) {
		return WallCollision
	}
	if snake.Occupies(head, 1) {
		return SelfCollision
	}
	return NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

// Absorb corrects the head after a shield soaked up a collision. Only wall
// hits move the head; a self hit is left as is.
func (cm *CollisionManager) Absorb(snake *entity.Snake, collision CollisionType) {
	if collision == WallCollision {
		snake.SetHead(cm.grid.Wrap(snake.Head()))
	}
}

// IsDanger reports whether moving the head onto pos would be fatal without
// a shield. The tail cell counts because the head is checked before the pop.
func (cm *CollisionManager) IsDanger(pos types.Point, snake *entity.Snake) bool {
	return cm.isWallCollision(pos) || snake.Occupies(pos, 0)
}
