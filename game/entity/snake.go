package entity

import (
	"snake-deluxe/game/types"
)

type Color struct {
	R, G, B uint8
}

// Snake keeps its segments head first. Current is the committed heading,
// Next is the pending one picked up at the start of the following tick.
type Snake struct {
	Body    []types.Point
	Current types.Direction
	Next    types.Direction
}

// NewSnake lays out a horizontal snake of InitialSnakeLength cells whose
// middle segment sits on center, heading right.
func NewSnake(center types.Point) *Snake {
	body := make([]types.Point, 0, types.InitialSnakeLength)
	for i := 0; i < types.InitialSnakeLength; i++ {
		body = append(body, types.Point{X: center.X + 1 - i, Y: center.Y})
	}
	return &Snake{
		Body:    body,
		Current: types.RIGHT,
		Next:    types.RIGHT,
	}
}

func (s *Snake) Head() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// SetDirection stores dir as the pending heading unless it reverses the
// committed one. The latest accepted request before a tick wins.
func (s *Snake) SetDirection(dir types.Direction) bool {
	if dir == types.NONE || dir == s.Current.Opposite() {
		return false
	}
	s.Next = dir
	return true
}

func (s *Snake) CommitDirection() {
	s.Current = s.Next
}

// NextHead is the cell the head moves into under the committed heading
func (s *Snake) NextHead() types.Point {
	return s.Head().Add(s.Current.ToPoint())
}

func (s *Snake) Push(head types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = head
}

// RemoveHead undoes a Push
func (s *Snake) RemoveHead() {
	if len(s.Body) > 1 {
		s.Body = s.Body[1:]
	}
}

func (s *Snake) SetHead(p types.Point) {
	s.Body[0] = p
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Shrink removes up to n tail segments without going below min.
// It returns how many were removed.
func (s *Snake) Shrink(n, min int) int {
	removed := 0
	for i := 0; i < n && len(s.Body) > min; i++ {
		s.Body = s.Body[:len(s.Body)-1]
		removed++
	}
	return removed
}

// Occupies reports whether p matches any segment at index from or later
func (s *Snake) Occupies(p types.Point, from int) bool {
	for i := from; i < len(s.Body); i++ {
		if s.Body[i] == p {
			return true
		}
	}
	return false
}

func (s *Snake) Segments() []types.Point {
	out := make([]types.Point, len(s.Body))
	copy(out, s.Body)
	return out
}

func (s *Snake) Clone() *Snake {
	return &Snake{
		Body:    s.Segments(),
		Current: s.Current,
		Next:    s.Next,
	}
}
