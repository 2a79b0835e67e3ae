package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-deluxe/ui/session"
)

var keyActions = []struct {
	key    int32
	action session.Action
}{
	{rl.KeyUp, session.ActionUp},
	{rl.KeyDown, session.ActionDown},
	{rl.KeyLeft, session.ActionLeft},
	{rl.KeyRight, session.ActionRight},
	{rl.KeyEnter, session.ActionConfirm},
	{rl.KeyKpEnter, session.ActionConfirm},
	{rl.KeyBackspace, session.ActionBackspace},
	{rl.KeyTab, session.ActionDifficulty},
}

// Window plays the game in a raylib window. The window must already be
// open when Run is called.
type Window struct {
	session  *session.Session
	renderer *Renderer
}

func NewWindow(s *session.Session) *Window {
	return &Window{session: s, renderer: NewRenderer()}
}

// Run drives input, the game and drawing until the window closes or the
// player quits
func (w *Window) Run() {
	for !rl.WindowShouldClose() && !w.session.Quit() {
		w.handleInput()
		w.session.Frame()
		w.renderer.Draw(w.session.Snapshot(), w.session)
	}
}

func (w *Window) handleInput() {
	for _, ka := range keyActions {
		if rl.IsKeyPressed(ka.key) {
			w.session.Handle(ka.action)
		}
	}
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		w.session.HandleRune(r)
	}
}
