package entity

import (
	"testing"

	"snake-deluxe/game/types"
)

func TestNewSnake(t *testing.T) {
	s := NewSnake(types.Point{X: 12, Y: 12})

	want := []types.Point{{X: 13, Y: 12}, {X: 12, Y: 12}, {X: 11, Y: 12}}
	if s.Len() != len(want) {
		t.Fatalf("length = %d, want %d", s.Len(), len(want))
	}
	for i, p := range want {
		if s.Body[i] != p {
			t.Errorf("segment %d = %v, want %v", i, s.Body[i], p)
		}
	}
	if s.Current != types.RIGHT || s.Next != types.RIGHT {
		t.Errorf("heading = %v/%v, want RIGHT", s.Current, s.Next)
	}
}

func TestSetDirectionRejectsReversal(t *testing.T) {
	tests := []struct {
		current types.Direction
		request types.Direction
		ok      bool
	}{
		{types.RIGHT, types.LEFT, false},
		{types.LEFT, types.RIGHT, false},
		{types.UP, types.DOWN, false},
		{types.DOWN, types.UP, false},
		{types.RIGHT, types.UP, true},
		{types.RIGHT, types.RIGHT, true},
		{types.UP, types.NONE, false},
	}

	for _, tt := range tests {
		s := &Snake{Body: []types.Point{{X: 5, Y: 5}}, Current: tt.current, Next: tt.current}
		if got := s.SetDirection(tt.request); got != tt.ok {
			t.Errorf("%v -> %v accepted = %v, want %v", tt.current, tt.request, got, tt.ok)
		}
		if !tt.ok && s.Next != tt.current {
			t.Errorf("%v -> %v changed pending heading to %v", tt.current, tt.request, s.Next)
		}
	}
}

func TestReversalCheckedAgainstCommittedHeading(t *testing.T) {
	s := NewSnake(types.Point{X: 5, Y: 5})

	// UP is pending, but LEFT still reverses the committed RIGHT
	s.SetDirection(types.UP)
	if s.SetDirection(types.LEFT) {
		t.Error("LEFT accepted while RIGHT is committed")
	}
	if s.Next != types.UP {
		t.Errorf("pending = %v, want UP", s.Next)
	}
}

func TestPushAndRemove(t *testing.T) {
	s := NewSnake(types.Point{X: 5, Y: 5})
	s.Push(s.NextHead())

	if s.Head() != (types.Point{X: 7, Y: 5}) || s.Len() != 4 {
		t.Fatalf("after push head=%v len=%d", s.Head(), s.Len())
	}
	s.RemoveHead()
	if s.Head() != (types.Point{X: 6, Y: 5}) || s.Len() != 3 {
		t.Errorf("after RemoveHead head=%v len=%d", s.Head(), s.Len())
	}
	s.RemoveTail()
	if s.Len() != 2 || s.Occupies(types.Point{X: 4, Y: 5}, 0) {
		t.Errorf("RemoveTail left %v", s.Body)
	}
}

func TestShrink(t *testing.T) {
	s := &Snake{Body: make([]types.Point, 4)}

	if removed := s.Shrink(2, 3); removed != 1 || s.Len() != 3 {
		t.Errorf("removed %d, length %d; want 1, 3", removed, s.Len())
	}
	if removed := s.Shrink(2, 3); removed != 0 {
		t.Errorf("removed %d at the floor", removed)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSnake(types.Point{X: 5, Y: 5})
	c := s.Clone()
	c.Body[0] = types.Point{}
	c.SetDirection(types.DOWN)

	if s.Head() != (types.Point{X: 6, Y: 5}) || s.Next != types.RIGHT {
		t.Error("clone shares state with the original")
	}
}

func TestKindTable(t *testing.T) {
	tests := []struct {
		kind      FoodKind
		score     int
		temporary bool
	}{
		{Normal, 10, false},
		{SpeedBoost, 20, true},
		{SlowMo, 5, true},
		{Shield, 15, false},
		{ScoreBonus, 50, false},
		{Shrink, 0, false},
	}

	for _, tt := range tests {
		info := tt.kind.Info()
		if info.Score != tt.score || info.Temporary != tt.temporary {
			t.Errorf("%v: score=%d temporary=%v", tt.kind, info.Score, info.Temporary)
		}
		if tt.kind.IsPowerUp() == (tt.kind == Normal) {
			t.Errorf("%v: IsPowerUp = %v", tt.kind, tt.kind.IsPowerUp())
		}
	}
	if len(PowerUpKinds) != 5 {
		t.Errorf("power-up kinds = %d, want 5", len(PowerUpKinds))
	}
}
