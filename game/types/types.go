package types

import (
	"fmt"
	"strings"
	"time"
)

// Point is a cell coordinate on the grid
type Point struct {
	X, Y int
}

func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the grid
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Wrap moves an out-of-bounds point to the opposite edge
func (g Grid) Wrap(p Point) Point {
	if p.X < 0 {
		p.X = g.Width - 1
	} else if p.X >= g.Width {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = g.Height - 1
	} else if p.Y >= g.Height {
		p.Y = 0
	}
	return p
}

func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Center returns the middle cell, rounded down
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

type Direction int

const (
	NONE Direction = iota
	UP
	RIGHT
	DOWN
	LEFT
)

func (d Direction) ToPoint() Point {
	switch d {
	case UP:
		return Point{X: 0, Y: -1}
	case RIGHT:
		return Point{X: 1, Y: 0}
	case DOWN:
		return Point{X: 0, Y: 1}
	case LEFT:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case UP:
		return DOWN
	case DOWN:
		return UP
	case LEFT:
		return RIGHT
	case RIGHT:
		return LEFT
	}
	return NONE
}

func (d Direction) TurnLeft() Direction {
	switch d {
	case UP:
		return LEFT
	case RIGHT:
		return UP
	case DOWN:
		return RIGHT
	case LEFT:
		return DOWN
	default:
		return d
	}
}

func (d Direction) TurnRight() Direction {
	switch d {
	case UP:
		return RIGHT
	case RIGHT:
		return DOWN
	case DOWN:
		return LEFT
	case LEFT:
		return UP
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case UP:
		return "UP"
	case RIGHT:
		return "RIGHT"
	case DOWN:
		return "DOWN"
	case LEFT:
		return "LEFT"
	}
	return "NONE"
}

// Difficulty names a base tick interval preset
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Insane Difficulty = "insane"
)

// Difficulties lists the presets in menu order
var Difficulties = []Difficulty{Easy, Medium, Hard, Insane}

// BaseInterval returns the tick interval for d. Unknown values fall back to medium.
func (d Difficulty) BaseInterval() time.Duration {
	switch d {
	case Easy:
		return 150 * time.Millisecond
	case Medium:
		return 100 * time.Millisecond
	case Hard:
		return 70 * time.Millisecond
	case Insane:
		return 50 * time.Millisecond
	default:
		return 100 * time.Millisecond
	}
}

// ParseDifficulty maps a preset name to its Difficulty, defaulting to medium
func ParseDifficulty(name string) Difficulty {
	d := Difficulty(strings.ToLower(strings.TrimSpace(name)))
	for _, v := range Difficulties {
		if v == d {
			return v
		}
	}
	return Medium
}

// Next cycles through the presets; unknown values restart at easy
func (d Difficulty) Next() Difficulty {
	for i, v := range Difficulties {
		if v == d {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return Easy
}

// Game constants
const (
	MinGridSize = 10
	MaxGridSize = 100

	InitialSnakeLength = 3
	MinSnakeLength     = 3
	ShrinkAmount       = 2

	EffectDuration   = 5000 * time.Millisecond
	MinTickInterval  = 30 * time.Millisecond
	PowerUpChance    = 0.15
	PowerUpThreshold = 3
	PowerUpAttempts  = 50

	MaxLeaderboardEntries = 10
	MaxNameLength         = 3
	DefaultPlayerName     = "ANON"
)

// Config holds the startup settings for a game session
type Config struct {
	Width      int
	Height     int
	Difficulty Difficulty
	Seed       uint64
}

func DefaultConfig() Config {
	return Config{
		Width:      25,
		Height:     25,
		Difficulty: Medium,
	}
}

func (c Config) Validate() error {
	if c.Width < MinGridSize || c.Width > MaxGridSize {
		return fmt.Errorf("grid width %d out of range [%d, %d]", c.Width, MinGridSize, MaxGridSize)
	}
	if c.Height < MinGridSize || c.Height > MaxGridSize {
		return fmt.Errorf("grid height %d out of range [%d, %d]", c.Height, MinGridSize, MaxGridSize)
	}
	return nil
}

func (c Config) Grid() Grid {
	return Grid{Width: c.Width, Height: c.Height}
}
