package game

import (
	"log"
	"time"

	"golang.org/x/exp/rand"

	"snake-deluxe/game/entity"
	"snake-deluxe/game/manager"
	"snake-deluxe/game/types"
)

// Presenter receives a snapshot after every tick and every transition
type Presenter interface {
	Present(snap Snapshot)
}

// RunRecorder is told about every run that ends in game over
type RunRecorder interface {
	Record(run manager.RunRecord)
}

// Controller owns the live GameState and the tick schedule. It is not safe
// for concurrent use; one goroutine drives it and feeds it input.
type Controller struct {
	grid       types.Grid
	difficulty types.Difficulty

	sim     *Simulation
	state   *GameState
	persist *manager.StateManager

	clock     TimeProvider
	gameClock *GameClock
	nextTick  time.Time
	runStart  time.Time

	finalScore int
	lastEvents Events

	presenters []Presenter
	recorder   RunRecorder
}

type Option func(*Controller)

// WithClock replaces the system clock
func WithClock(clock TimeProvider) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithRandom replaces the seeded spawner RNG
func WithRandom(rng manager.Random) Option {
	return func(c *Controller) {
		c.sim = NewSimulation(c.grid, rng)
	}
}

func WithRecorder(recorder RunRecorder) Option {
	return func(c *Controller) {
		c.recorder = recorder
	}
}

func NewController(cfg types.Config, persist *manager.StateManager, opts ...Option) *Controller {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	grid := cfg.Grid()
	c := &Controller{
		grid:       grid,
		difficulty: types.ParseDifficulty(string(cfg.Difficulty)),
		sim:        NewSimulation(grid, rand.New(rand.NewSource(seed))),
		persist:    persist,
		clock:      RealTime(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.gameClock = NewGameClock(c.clock)
	c.state = NewGameState(grid)
	c.state.Snake.Body = nil
	return c
}

func (c *Controller) AddPresenter(p Presenter) {
	c.presenters = append(c.presenters, p)
}

func (c *Controller) Phase() Phase {
	return c.state.Phase
}

func (c *Controller) Grid() types.Grid {
	return c.grid
}

func (c *Controller) Difficulty() types.Difficulty {
	return c.difficulty
}

func (c *Controller) Persistence() *manager.StateManager {
	return c.persist
}

// State returns a copy of the live world
func (c *Controller) State() *GameState {
	return c.state.Copy()
}

// SetDifficulty selects a preset. Unknown names fall back to medium. While a
// speed modifier is active the new base only shows once it expires.
func (c *Controller) SetDifficulty(d types.Difficulty) {
	c.difficulty = types.ParseDifficulty(string(d))
}

// Interval is the tick interval in force right now
func (c *Controller) Interval() time.Duration {
	return c.sim.Interval(c.state, c.difficulty.BaseInterval())
}

// Start begins a fresh run, discarding any run in progress
func (c *Controller) Start() {
	c.state = c.sim.NewRun(c.grid)
	c.gameClock.Restart()
	c.runStart = c.clock.Now()
	c.finalScore = 0
	c.nextTick = c.runStart.Add(c.Interval())
	log.Printf("Run started: grid=%dx%d difficulty=%s interval=%v",
		c.grid.Width, c.grid.Height, c.difficulty, c.Interval())
	c.present(EventStarted)
}

func (c *Controller) Restart() {
	c.Start()
}

// TogglePause flips between Running and Paused. The tick schedule stops
// while paused and is rebuilt from the current interval on resume.
func (c *Controller) TogglePause() {
	switch c.state.Phase {
	case Running:
		c.state.Phase = Paused
		c.gameClock.Pause()
		c.present(EventPaused)
	case Paused:
		c.state.Phase = Running
		c.gameClock.Resume()
		c.nextTick = c.clock.Now().Add(c.Interval())
		c.present(EventResumed)
	}
}

// RequestDirection queues a heading for the next tick. Requests outside a
// running game, and reversals, are dropped.
func (c *Controller) RequestDirection(dir types.Direction) bool {
	if c.state.Phase != Running {
		return false
	}
	return c.state.Snake.SetDirection(dir)
}

// Update runs a tick if one is due and reports whether it did
func (c *Controller) Update() (StepResult, bool) {
	if c.state.Phase != Running {
		return StepResult{}, false
	}
	now := c.clock.Now()
	if now.Before(c.nextTick) {
		return StepResult{}, false
	}

	result := c.Tick()

	c.nextTick = c.nextTick.Add(c.Interval())
	if c.nextTick.Before(now) {
		// fell behind; do not replay the missed ticks
		c.nextTick = now.Add(c.Interval())
	}
	return result, true
}

// NextTick is when the next scheduled tick is due
func (c *Controller) NextTick() time.Time {
	return c.nextTick
}

// Tick advances the simulation immediately, ignoring the schedule
func (c *Controller) Tick() StepResult {
	if c.state.Phase != Running {
		return StepResult{}
	}
	result := c.sim.Step(c.state, c.difficulty.BaseInterval(), c.gameClock.Elapsed())
	if result.Events.Has(EventGameOver) {
		result.Events |= c.endRun(result.Collision)
	}
	c.present(result.Events)
	return result
}

func (c *Controller) endRun(cause manager.CollisionType) Events {
	var events Events
	c.finalScore = c.state.Score
	if c.persist.UpdateScore(c.finalScore) {
		events |= EventNewHighScore
	}

	ended := c.clock.Now()
	log.Printf("Run over: score=%d length=%d ticks=%d cause=%s",
		c.finalScore, c.state.Snake.Len(), c.state.Ticks, cause)

	if c.recorder != nil {
		c.recorder.Record(manager.RunRecord{
			StartTime:  c.runStart,
			EndTime:    ended,
			Score:      c.finalScore,
			Length:     c.state.Snake.Len(),
			Ticks:      c.state.Ticks,
			Difficulty: c.difficulty,
			Played:     c.gameClock.Elapsed(),
		})
	}
	return events
}

// SubmitScore files the final score under name and returns to the idle
// screen. It only works once per game over.
func (c *Controller) SubmitScore(name string) []manager.LeaderboardEntry {
	if c.state.Phase != GameOver {
		return c.persist.Leaderboard()
	}
	entries := c.persist.Submit(name, c.finalScore)
	c.state.Phase = Idle
	c.present(0)
	return entries
}

func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:       c.state.Phase,
		Grid:        c.grid,
		Snake:       c.state.Snake.Segments(),
		Direction:   c.state.Snake.Current,
		Pickup:      c.state.Pickup,
		PulsePhase:  PulseAt(c.clock.Now()),
		Shield:      c.state.Effects.Shield,
		Score:       c.state.Score,
		HighScore:   c.persist.HighScore(),
		FinalScore:  c.finalScore,
		Difficulty:  c.difficulty,
		Interval:    c.Interval(),
		SpeedEffect: entity.Normal,
		Leaderboard: c.persist.Leaderboard(),
		PlayerName:  c.persist.PlayerName(),
		Events:      c.lastEvents,
	}
	if speed := c.state.Effects.Speed; speed != nil {
		snap.SpeedEffect = speed.Kind
		snap.SpeedRemaining = speed.Remaining(c.gameClock.Elapsed())
	}
	return snap
}

func (c *Controller) present(events Events) {
	c.lastEvents = events
	if len(c.presenters) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, p := range c.presenters {
		p.Present(snap)
	}
}
