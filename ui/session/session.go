package session

import (
	"unicode"

	"snake-deluxe/game"
	"snake-deluxe/game/manager"
	"snake-deluxe/game/types"
)

// Pilot steers the snake instead of the keyboard
type Pilot interface {
	Steer(snap game.Snapshot) types.Direction
}

// Action is a frontend-independent input
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionPause
	ActionConfirm
	ActionBackspace
	ActionRestart
	ActionDifficulty
	ActionQuit
)

// Session ties a frontend to a controller: it turns key presses into
// controller calls, owns the name being typed on the game-over screen, and
// drives the autopilot when one is attached. Like the controller it is
// meant for a single goroutine.
type Session struct {
	ctrl    *game.Controller
	pilot   Pilot
	history *manager.HistoryManager

	name      NameBuffer
	lastPhase game.Phase
	quit      bool
}

func New(ctrl *game.Controller, pilot Pilot, history *manager.HistoryManager) *Session {
	return &Session{
		ctrl:      ctrl,
		pilot:     pilot,
		history:   history,
		lastPhase: ctrl.Phase(),
	}
}

func (s *Session) Controller() *game.Controller {
	return s.ctrl
}

func (s *Session) Snapshot() game.Snapshot {
	return s.ctrl.Snapshot()
}

// Name is the player name as typed so far
func (s *Session) Name() string {
	return s.name.String()
}

func (s *Session) Quit() bool {
	return s.quit
}

func (s *Session) Autopilot() bool {
	return s.pilot != nil
}

// Summary reports the run history, if one is kept
func (s *Session) Summary() (manager.Summary, bool) {
	if s.history == nil {
		return manager.Summary{}, false
	}
	return s.history.Summary(), true
}

// Handle applies a non-character input
func (s *Session) Handle(a Action) {
	switch a {
	case ActionUp:
		s.steer(types.UP)
	case ActionDown:
		s.steer(types.DOWN)
	case ActionLeft:
		s.steer(types.LEFT)
	case ActionRight:
		s.steer(types.RIGHT)
	case ActionPause:
		s.ctrl.TogglePause()
	case ActionConfirm:
		s.confirm()
	case ActionBackspace:
		if s.ctrl.Phase() == game.GameOver {
			s.name.Backspace()
		}
	case ActionRestart:
		if s.ctrl.Phase() != game.Idle {
			s.start()
		}
	case ActionDifficulty:
		s.ctrl.SetDifficulty(s.ctrl.Difficulty().Next())
	case ActionQuit:
		s.quit = true
	}
	s.track()
}

// HandleRune applies a typed character. On the game-over screen letters go
// to the name; elsewhere WASD steers and a few letters are shortcuts.
func (s *Session) HandleRune(r rune) {
	if s.ctrl.Phase() == game.GameOver && unicode.IsLetter(r) {
		s.name.Add(r)
		return
	}

	switch unicode.ToLower(r) {
	case 'w':
		s.Handle(ActionUp)
	case 's':
		s.Handle(ActionDown)
	case 'a':
		s.Handle(ActionLeft)
	case 'd':
		s.Handle(ActionRight)
	case 'p', ' ':
		s.Handle(ActionPause)
	case 'r':
		s.Handle(ActionRestart)
	case 'q':
		s.Handle(ActionQuit)
	case '1', '2', '3', '4':
		s.ctrl.SetDifficulty(types.Difficulties[r-'1'])
	}
}

// Frame runs whatever the schedule says is due. Call it once per frame.
func (s *Session) Frame() {
	_, ticked := s.ctrl.Update()
	s.track()

	if s.pilot == nil {
		return
	}
	if ticked {
		s.autoSteer()
	}
	switch s.ctrl.Phase() {
	case game.Idle, game.GameOver:
		// the autopilot never files scores; it just goes again
		s.start()
	}
}

func (s *Session) steer(dir types.Direction) {
	if s.pilot != nil {
		return
	}
	s.ctrl.RequestDirection(dir)
}

func (s *Session) confirm() {
	switch s.ctrl.Phase() {
	case game.Idle:
		s.start()
	case game.GameOver:
		s.ctrl.SubmitScore(s.name.String())
	case game.Paused:
		s.ctrl.TogglePause()
	}
}

func (s *Session) start() {
	s.ctrl.Start()
	s.track()
	if s.pilot != nil {
		s.autoSteer()
	}
}

func (s *Session) autoSteer() {
	if dir := s.pilot.Steer(s.ctrl.Snapshot()); dir != types.NONE {
		s.ctrl.RequestDirection(dir)
	}
}

// track prefills the name entry with the remembered name each time a run
// ends
func (s *Session) track() {
	phase := s.ctrl.Phase()
	if phase == game.GameOver && s.lastPhase != game.GameOver {
		s.name.Reset(s.ctrl.Persistence().PlayerName())
	}
	s.lastPhase = phase
}
