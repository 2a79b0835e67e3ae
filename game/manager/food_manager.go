package manager

import (
	"snake-deluxe/game/entity"
	"snake-deluxe/game/types"
)

// Random is the subset of golang.org/x/exp/rand.Rand the spawner needs
type Random interface {
	Intn(n int) int
	Float64() float64
}

type FoodManager struct {
	grid             types.Grid
	rng              Random
	sinceLastPowerUp int
}

func NewFoodManager(grid types.Grid, rng Random) *FoodManager {
	return &FoodManager{
		grid: grid,
		rng:  rng,
	}
}

func (fm *FoodManager) Reset() {
	fm.sinceLastPowerUp = 0
}

// RecordConsumption counts an eaten pickup towards the next power-up chance
func (fm *FoodManager) RecordConsumption() {
	fm.sinceLastPowerUp++
}

func (fm *FoodManager) SinceLastPowerUp() int {
	return fm.sinceLastPowerUp
}

// Occupied builds the blocked cell set for a spawn. The pickup being
// replaced is never part of it.
func Occupied(snake *entity.Snake) map[types.Point]bool {
	occupied := make(map[types.Point]bool, snake.Len())
	for _, p := range snake.Body {
		occupied[p] = true
	}
	return occupied
}

// NextPickup picks the replacement item. After more than PowerUpThreshold
// foods since the last power-up every spawn rolls PowerUpChance for one.
func (fm *FoodManager) NextPickup(occupied map[types.Point]bool) entity.Pickup {
	if fm.sinceLastPowerUp > types.PowerUpThreshold && fm.rng.Float64() < types.PowerUpChance {
		if pos, ok := fm.spawnPowerUp(occupied); ok {
			kind := entity.PowerUpKinds[fm.rng.Intn(len(entity.PowerUpKinds))]
			fm.sinceLastPowerUp = 0
			return entity.Pickup{Pos: pos, Kind: kind}
		}
	}
	return entity.Pickup{Pos: fm.SpawnFood(occupied), Kind: entity.Normal}
}

// SpawnFood returns a uniformly random free cell. Random probing gives up
// after a few passes over the grid and falls back to picking among the free
// cells directly; on a full grid any cell is returned.
func (fm *FoodManager) SpawnFood(occupied map[types.Point]bool) types.Point {
	for attempts := 0; attempts < fm.grid.Cells()*4; attempts++ {
		pos := fm.randomCell()
		if !occupied[pos] {
			return pos
		}
	}

	free := make([]types.Point, 0, max(0, fm.grid.Cells()-len(occupied)))
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			pos := types.Point{X: x, Y: y}
			if !occupied[pos] {
				free = append(free, pos)
			}
		}
	}
	if len(free) == 0 {
		return fm.randomCell()
	}
	return free[fm.rng.Intn(len(free))]
}

func (fm *FoodManager) spawnPowerUp(occupied map[types.Point]bool) (types.Point, bool) {
	for attempts := 0; attempts < types.PowerUpAttempts; attempts++ {
		pos := fm.randomCell()
		if !occupied[pos] {
			return pos, true
		}
	}
	return types.Point{}, false
}

func (fm *FoodManager) randomCell() types.Point {
	return types.Point{
		X: fm.rng.Intn(fm.grid.Width),
		Y: fm.rng.Intn(fm.grid.Height),
	}
}
