package game

import (
	"testing"
	"time"

	"snake-deluxe/game/entity"
	"snake-deluxe/game/manager"
	"snake-deluxe/game/types"
)

// scriptedRandom replays fixed values; once exhausted Intn returns 0 and
// Float64 returns 0.99 so no power-up is ever rolled by accident.
type scriptedRandom struct {
	ints   []int
	floats []float64
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

var testGrid = types.Grid{Width: 20, Height: 20}

func runningState(dir types.Direction, body ...types.Point) *GameState {
	state := NewGameState(testGrid)
	state.Snake = &entity.Snake{Body: body, Current: dir, Next: dir}
	state.Pickup = entity.Pickup{Pos: types.Point{X: 19, Y: 19}, Kind: entity.Normal}
	state.Phase = Running
	return state
}

func pt(x, y int) types.Point {
	return types.Point{X: x, Y: y}
}

func TestStepMovesWithoutGrowing(t *testing.T) {
	sim := NewSimulation(testGrid, &scriptedRandom{})
	state := runningState(types.RIGHT, pt(5, 5), pt(4, 5), pt(3, 5))

	result := sim.Step(state, 100*time.Millisecond, 0)

	if result.Collision != manager.NoCollision {
		t.Fatalf("unexpected collision %v", result.Collision)
	}
	want := []types.Point{pt(6, 5), pt(5, 5), pt(4, 5)}
	if len(state.Snake.Body) != len(want) {
		t.Fatalf("length = %d, want %d", len(state.Snake.Body), len(want))
	}
	for i, p := range want {
		if state.Snake.Body[i] != p {
			t.Errorf("segment %d = %v, want %v", i, state.Snake.Body[i], p)
		}
	}
	if state.Snake.Occupies(pt(3, 5), 0) {
		t.Error("old tail (3,5) should have been removed")
	}
	if state.Phase != Running {
		t.Errorf("phase = %v, want running", state.Phase)
	}
}

func TestStepCommitsPendingDirection(t *testing.T) {
	sim := NewSimulation(testGrid, &scriptedRandom{})
	state := runningState(types.RIGHT, pt(5, 5), pt(4, 5), pt(3, 5))

	state.Snake.SetDirection(types.UP)
	state.Snake.SetDirection(types.DOWN)
	sim.Step(state, 100*time.Millisecond, 0)

	if state.Snake.Current != types.DOWN {
		t.Errorf("current direction = %v, want DOWN (latest request wins)", state.Snake.Current)
	}
	if state.Snake.Head() != pt(5, 6) {
		t.Errorf("head = %v, want (5,6)", state.Snake.Head())
	}
}

func TestWallCollisionWithoutShieldEndsRun(t *testing.T) {
	sim := NewSimulation(testGrid, &scriptedRandom{})
	state := runningState(types.LEFT, pt(0, 7), pt(1, 7), pt(2, 7))

	result := sim.Step(state, 100*time.Millisecond, 0)

	if !result.Events.Has(EventGameOver) {
		t.Fatal("expected game over event")
	}
	if result.Collision != manager.WallCollision {
		t.Errorf("collision = %v, want wall", result.Collision)
	}
	if state.Phase != GameOver {
		t.Errorf("phase = %v, want game over", state.Phase)
	}
	if state.Snake.Len() != 3 {
		t.Errorf("length = %d, want 3 (no growth)", state.Snake.Len())
	}
	for _, p := range state.Snake.Body {
		if !testGrid.Contains(p) {
			t.Errorf("segment %v left outside the grid", p)
		}
	}

	before := state.Snake.Segments()
	sim.Step(state, 100*time.Millisecond, 0)
	if state.Snake.Head() != before[0] {
		t.Error("step after game over must not move the snake")
	}
}

func TestShieldWrapsWallCollision(t *testing.T) {
	sim := NewSimulation(testGrid, &scriptedRandom{})
	state := runningState(types.LEFT, pt(0, 7), pt(1, 7), pt(2, 7))
	state.Effects.Shield = true

	result := sim.Step(state, 100*time.Millisecond, 0)

	if !result.Events.Has(EventShieldBroken) {
		t.Error("expected shield broken event")
	}
	if state.Effects.Shield {
		t.Error("shield should be consumed")
	}
	if state.Phase != Running {
		t.Fatalf("phase = %v, want running", state.Phase)
	}
	if state.Snake.Head() != pt(testGrid.Width-1, 7) {
		t.Errorf("head = %v, want (%d,7)", state.Snake.Head(), testGrid.Width-1)
	}
	if state.Snake.Len() != 3 {
		t.Errorf("length = %d, want 3", state.Snake.Len())
	}
}

func TestShieldWrapsEveryEdge(t *testing.T) {
	tests := []struct {
		name string
		dir  types.Direction
		body []types.Point
		want types.Point
	}{
		{"right", types.RIGHT, []types.Point{pt(19, 3), pt(18, 3), pt(17, 3)}, pt(0, 3)},
		{"up", types.UP, []types.Point{pt(4, 0), pt(4, 1), pt(4, 2)}, pt(4, 19)},
		{"down", types.DOWN, []types.Point{pt(4, 19), pt(4, 18), pt(4, 17)}, pt(4, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := NewSimulation(testGrid, &scriptedRandom{})
			state := runningState(tt.dir, tt.body...)
			state.Effects.Shield = true

			sim.Step(state, 100*time.Millisecond, 0)

			if state.Snake.Head() != tt.want {
				t.Errorf("head = %v, want %v", state.Snake.Head(), tt.want)
			}
		})
	}
}

func TestShieldIsSingleUse(t *testing.T) {
	sim := NewSimulation(testGrid, &scriptedRandom{})
	state := runningState(types.LEFT, pt(0, 7), pt(1, 7), pt(2, 7))
	state.Effects.Shield = true

	sim.Step(state, 100*time.Millisecond, 0)
	if state.Phase != Running {
		t.Fatal("first collision should be absorbed")
	}

	// head is now on the right edge; turn back into the wall
	state.Snake.SetDirection(types.UP)
	sim.Step(state, 100*time.Millisecond, 0)
	state.Snake.SetDirection(types.RIGHT)
	result := sim.Step(state, 100*time.Millisecond, 0)

	if !result.Events.Has(EventGameOver) || state.Phase != GameOver {
		t.Errorf("second collision should end the run, phase = %v", state.Phase)
	}
}

func TestShieldAbsorbsSelfCollisionInPlace(t *testing.T) {
	sim := NewSimulation(testGrid, &scriptedRandom{})
	// head at (5,5) turning back into its own body at (5,6)
	state := runningState(types.LEFT, pt(5, 5), pt(6, 5), pt(6, 6), pt(5, 6), pt(4, 6))
	state.Snake.Current = types.LEFT
	state.Snake.SetDirection(types.DOWN)
	state.Effects.Shield = true

	result := sim.Step(state, 100*time.Millisecond, 0)

	if result.Collision != manager.SelfCollision {
		t.Fatalf("collision = %v, want self", result.Collision)
	}
	if state.Phase != Running {
		t.Fatalf("phase = %v, want running", state.Phase)
	}
	if state.Snake.Head() != pt(5, 6) {
		t.Errorf("head = %v, want (5,6) with no correction", state.Snake.Head())
	}
	if state.Snake.Len() != 5 {
		t.Errorf("length = %d, want 5", state.Snake.Len())
	}
}

func TestSelfCollisionIgnoresNewHead(t *testing.T) {
	sim := NewSimulation(testGrid, &scriptedRandom{})
	state := runningState(types.UP, pt(3, 3), pt(3, 4), pt(3, 5), pt(3, 6))

	for i := 0; i < 3; i++ {
		result := sim.Step(state, 100*time.Millisecond, 0)
		if result.Collision != manager.NoCollision {
			t.Fatalf("tick %d: unexpected %v collision", i, result.Collision)
		}
	}
}

func TestMovingIntoTailCellCollides(t *testing.T) {
	sim := NewSimulation(testGrid, &scriptedRandom{})
	// a closed 2x2 loop: the tail still counts during the check
	state := runningState(types.UP, pt(1, 1), pt(1, 2), pt(2, 2), pt(2, 1))
	state.Snake.SetDirection(types.RIGHT)

	result := sim.Step(state, 100*time.Millisecond, 0)

	if result.Collision != manager.SelfCollision {
		t.Errorf("collision = %v, want self", result.Collision)
	}
}

func TestEatingNormalFoodGrows(t *testing.T) {
	rng := &scriptedRandom{ints: []int{10, 10}}
	sim := NewSimulation(testGrid, rng)
	state := runningState(types.RIGHT, pt(5, 5), pt(4, 5), pt(3, 5))
	state.Pickup = entity.Pickup{Pos: pt(6, 5), Kind: entity.Normal}

	result := sim.Step(state, 100*time.Millisecond, 0)

	if !result.Events.Has(EventAte) || result.Eaten != entity.Normal {
		t.Fatalf("expected normal food eaten, got events %b", result.Events)
	}
	if state.Snake.Len() != 4 {
		t.Errorf("length = %d, want 4", state.Snake.Len())
	}
	if state.Score != 10 {
		t.Errorf("score = %d, want 10", state.Score)
	}
	if state.Pickup.Pos != pt(10, 10) {
		t.Errorf("replacement at %v, want (10,10)", state.Pickup.Pos)
	}
	if state.Snake.Occupies(state.Pickup.Pos, 0) {
		t.Error("replacement spawned on the snake")
	}
}

func TestLengthAccounting(t *testing.T) {
	sim := NewSimulation(testGrid, &scriptedRandom{})
	state := runningState(types.RIGHT, pt(2, 2), pt(1, 2), pt(0, 2))
	state.Pickup = entity.Pickup{Pos: pt(4, 2), Kind: entity.Normal}

	for i := 0; i < 12 && state.Phase == Running; i++ {
		before := state.Snake.Len()
		result := sim.Step(state, 100*time.Millisecond, 0)
		after := state.Snake.Len()
		if result.Events.Has(EventAte) {
			if after != before+1 {
				t.Errorf("tick %d: ate but length %d -> %d", i, before, after)
			}
		} else if after != before {
			t.Errorf("tick %d: length changed %d -> %d without eating", i, before, after)
		}
	}
}

func TestShrinkFloorsAtThree(t *testing.T) {
	tests := []struct {
		name string
		body []types.Point
		want int
	}{
		// length 5 once the head has moved onto the pickup
		{"five becomes three", []types.Point{pt(5, 5), pt(4, 5), pt(3, 5), pt(2, 5)}, 3},
		{"minimum stays", []types.Point{pt(5, 5), pt(4, 5), pt(3, 5)}, 3},
		{"long snake loses two", []types.Point{pt(8, 5), pt(7, 5), pt(6, 5), pt(5, 5), pt(4, 5), pt(3, 5)}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := NewSimulation(testGrid, &scriptedRandom{})
			state := runningState(types.RIGHT, tt.body...)
			state.Pickup = entity.Pickup{Pos: state.Snake.Head().Add(pt(1, 0)), Kind: entity.Shrink}

			result := sim.Step(state, 100*time.Millisecond, 0)

			if !result.Events.Has(EventPowerUp) {
				t.Fatal("expected power-up event")
			}
			if state.Snake.Len() != tt.want {
				t.Errorf("length = %d, want %d", state.Snake.Len(), tt.want)
			}
		})
	}
}

func TestSpeedBoostOnHard(t *testing.T) {
	base := types.Hard.BaseInterval()
	sim := NewSimulation(testGrid, &scriptedRandom{})
	state := runningState(types.RIGHT, pt(5, 5), pt(4, 5), pt(3, 5))
	state.Pickup = entity.Pickup{Pos: pt(6, 5), Kind: entity.SpeedBoost}

	sim.Step(state, base, 0)
	if got := sim.Interval(state, base); got != 42*time.Millisecond {
		t.Fatalf("boosted interval = %v, want 42ms", got)
	}
	if state.Score != 20 {
		t.Errorf("score = %d, want 20", state.Score)
	}

	sim.Step(state, base, 4999*time.Millisecond)
	if got := sim.Interval(state, base); got != 42*time.Millisecond {
		t.Errorf("interval before expiry = %v, want 42ms", got)
	}

	result := sim.Step(state, base, 5000*time.Millisecond)
	if !result.Events.Has(EventEffectExpired) {
		t.Error("expected effect expiry at 5000ms")
	}
	if got := sim.Interval(state, base); got != 70*time.Millisecond {
		t.Errorf("interval after expiry = %v, want 70ms", got)
	}
}

func TestSpeedModifiersDoNotStack(t *testing.T) {
	base := types.Hard.BaseInterval()
	sim := NewSimulation(testGrid, &scriptedRandom{})
	state := runningState(types.RIGHT, pt(5, 5), pt(4, 5), pt(3, 5))
	state.Pickup = entity.Pickup{Pos: pt(6, 5), Kind: entity.SpeedBoost}
	sim.Step(state, base, 0)

	state.Pickup = entity.Pickup{Pos: pt(7, 5), Kind: entity.SlowMo}
	sim.Step(state, base, 3000*time.Millisecond)

	if got := sim.Interval(state, base); got != 105*time.Millisecond {
		t.Fatalf("interval = %v, want 105ms from slow-mo alone", got)
	}
	if state.Effects.Speed.Kind != entity.SlowMo {
		t.Errorf("active modifier = %v, want SLOW_MO", state.Effects.Speed.Kind)
	}

	// the boost would have expired at 5000ms; slow-mo runs until 8000ms
	state.Snake.SetDirection(types.DOWN)
	sim.Step(state, base, 5000*time.Millisecond)
	if state.Effects.Speed == nil {
		t.Fatal("slow-mo cleared by the replaced boost's timer")
	}
	sim.Step(state, base, 8000*time.Millisecond)
	if state.Effects.Speed != nil {
		t.Error("slow-mo should expire 5000ms after it was applied")
	}
}

func TestScoreBonusAndShieldPickups(t *testing.T) {
	sim := NewSimulation(testGrid, &scriptedRandom{})
	state := runningState(types.RIGHT, pt(5, 5), pt(4, 5), pt(3, 5))
	state.Pickup = entity.Pickup{Pos: pt(6, 5), Kind: entity.ScoreBonus}
	sim.Step(state, 100*time.Millisecond, 0)

	state.Pickup = entity.Pickup{Pos: pt(7, 5), Kind: entity.Shield}
	sim.Step(state, 100*time.Millisecond, 0)

	if state.Score != 65 {
		t.Errorf("score = %d, want 65", state.Score)
	}
	if !state.Effects.Shield {
		t.Error("shield flag should be set")
	}
	if state.Effects.Speed != nil {
		t.Error("neither pickup starts a speed modifier")
	}
}

func TestNewRunStartsFresh(t *testing.T) {
	sim := NewSimulation(testGrid, &scriptedRandom{ints: []int{0, 0}})
	state := sim.NewRun(testGrid)

	if state.Phase != Running {
		t.Errorf("phase = %v, want running", state.Phase)
	}
	want := []types.Point{pt(11, 10), pt(10, 10), pt(9, 10)}
	for i, p := range want {
		if state.Snake.Body[i] != p {
			t.Errorf("segment %d = %v, want %v", i, state.Snake.Body[i], p)
		}
	}
	if state.Snake.Current != types.RIGHT || state.Snake.Next != types.RIGHT {
		t.Error("a new run heads right")
	}
	if state.Pickup.Kind != entity.Normal {
		t.Errorf("first pickup = %v, want NORMAL", state.Pickup.Kind)
	}
	if state.Snake.Occupies(state.Pickup.Pos, 0) {
		t.Error("first pickup spawned on the snake")
	}
}
