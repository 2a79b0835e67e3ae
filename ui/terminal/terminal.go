package terminal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"snake-deluxe/game"
	"snake-deluxe/game/entity"
	"snake-deluxe/ui/session"
)

// FrameInterval paces input handling and redraws, not the game
const FrameInterval = 16 * time.Millisecond

var errQuit = errors.New("quit")

// Each grid cell is two columns wide so cells look square
const cellWidth = 2

var glyphs = map[entity.FoodKind]rune{
	entity.Normal:     '●',
	entity.SpeedBoost: '»',
	entity.SlowMo:     '«',
	entity.Shield:     '◆',
	entity.ScoreBonus: '$',
	entity.Shrink:     '×',
}

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleShield  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleOverlay = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy).Bold(true)
)

// Terminal plays the game in a tcell screen
type Terminal struct {
	screen   tcell.Screen
	session  *session.Session
	finiOnce sync.Once
}

func New(screen tcell.Screen, s *session.Session) *Terminal {
	return &Terminal{screen: screen, session: s}
}

// Run polls input on one goroutine and drives the game on another until
// the player quits or ctx is cancelled. It finalises the screen on return.
func (t *Terminal) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 64)

	g.Go(func() error {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// screen finalised
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer t.fini()
		ticker := time.NewTicker(FrameInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				t.HandleEvent(ev)
			case <-ticker.C:
				t.session.Frame()
				t.Draw(t.session.Snapshot())
			}
			if t.session.Quit() {
				return errQuit
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func (t *Terminal) fini() {
	t.finiOnce.Do(t.screen.Fini)
}

// HandleEvent maps a tcell event onto the session
func (t *Terminal) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyUp:
			t.session.Handle(session.ActionUp)
		case tcell.KeyDown:
			t.session.Handle(session.ActionDown)
		case tcell.KeyLeft:
			t.session.Handle(session.ActionLeft)
		case tcell.KeyRight:
			t.session.Handle(session.ActionRight)
		case tcell.KeyEnter:
			t.session.Handle(session.ActionConfirm)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.session.Handle(session.ActionBackspace)
		case tcell.KeyTab:
			t.session.Handle(session.ActionDifficulty)
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.session.Handle(session.ActionQuit)
		case tcell.KeyRune:
			t.session.HandleRune(ev.Rune())
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// Draw renders one frame
func (t *Terminal) Draw(snap game.Snapshot) {
	t.screen.Clear()

	gridW := snap.Grid.Width * cellWidth
	gridH := snap.Grid.Height
	originX, originY := 1, 1

	t.drawBorder(originX-1, originY-1, gridW+2, gridH+2)

	if snap.HasSnake() {
		t.drawPickup(snap, originX, originY)

		for i := len(snap.Snake) - 1; i >= 0; i-- {
			p := snap.Snake[i]
			style := styleBody
			if i == 0 {
				style = styleHead
				if snap.Shield {
					style = styleShield
				}
			}
			t.setCell(originX+p.X*cellWidth, originY+p.Y, '█', style)
		}
	}

	t.drawPanel(snap, originX+gridW+2, originY)
	t.drawOverlay(snap, originX, originY, gridW, gridH)
	t.screen.Show()
}

func (t *Terminal) drawPickup(snap game.Snapshot, originX, originY int) {
	info := snap.Pickup.Kind.Info()
	style := styleDefault.Foreground(tcell.NewRGBColor(int32(info.Color.R), int32(info.Color.G), int32(info.Color.B)))
	if snap.Pickup.IsPowerUp() && snap.PulsePhase > 0.95 {
		style = style.Bold(true)
	}
	x := originX + snap.Pickup.Pos.X*cellWidth
	t.screen.SetContent(x, originY+snap.Pickup.Pos.Y, glyphs[snap.Pickup.Kind], nil, style)
}

func (t *Terminal) setCell(x, y int, r rune, style tcell.Style) {
	for i := 0; i < cellWidth; i++ {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *Terminal) drawBorder(x, y, w, h int) {
	for i := 1; i < w-1; i++ {
		t.screen.SetContent(x+i, y, '─', nil, styleBorder)
		t.screen.SetContent(x+i, y+h-1, '─', nil, styleBorder)
	}
	for j := 1; j < h-1; j++ {
		t.screen.SetContent(x, y+j, '│', nil, styleBorder)
		t.screen.SetContent(x+w-1, y+j, '│', nil, styleBorder)
	}
	t.screen.SetContent(x, y, '┌', nil, styleBorder)
	t.screen.SetContent(x+w-1, y, '┐', nil, styleBorder)
	t.screen.SetContent(x, y+h-1, '└', nil, styleBorder)
	t.screen.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)
}

func (t *Terminal) drawPanel(snap game.Snapshot, x, y int) {
	t.drawText(x, y, "SNAKE DELUXE", styleTitle)
	y += 2
	lines := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("High:  %d", snap.HighScore),
		fmt.Sprintf("Level: %s (%dms)", snap.Difficulty, snap.Interval.Milliseconds()),
	}
	if snap.SpeedEffect != entity.Normal {
		lines = append(lines, fmt.Sprintf("%s %.1fs", snap.SpeedEffect, snap.SpeedRemaining.Seconds()))
	}
	if snap.Shield {
		lines = append(lines, "SHIELD up")
	}
	if t.session.Autopilot() {
		lines = append(lines, "AUTOPILOT")
	}
	for _, line := range lines {
		t.drawText(x, y, line, styleDefault)
		y++
	}

	y++
	t.drawText(x, y, "Leaderboard", styleTitle)
	y++
	if len(snap.Leaderboard) == 0 {
		t.drawText(x, y, "no scores yet", styleBorder)
		y++
	}
	for i, e := range snap.Leaderboard {
		t.drawText(x, y, fmt.Sprintf("%2d. %-3s %6d", i+1, e.Name, e.Score), styleDefault)
		y++
	}

	if summary, ok := t.session.Summary(); ok && summary.Games > 0 {
		y++
		t.drawText(x, y, fmt.Sprintf("Runs: %d  avg %.0f  best %d", summary.Games, summary.AverageScore, summary.MaxScore), styleBorder)
		y++
	}

	y++
	t.drawText(x, y, "arrows/WASD move  P pause", styleBorder)
	t.drawText(x, y+1, "1-4/Tab level  Esc quit", styleBorder)
}

func (t *Terminal) drawOverlay(snap game.Snapshot, x, y, w, h int) {
	var lines []string
	switch snap.Phase {
	case game.Idle:
		lines = []string{"SNAKE DELUXE", "press Enter to play"}
	case game.Paused:
		lines = []string{"PAUSED", "P to resume"}
	case game.GameOver:
		title := "GAME OVER"
		if snap.Events.Has(game.EventNewHighScore) || (snap.FinalScore > 0 && snap.FinalScore == snap.HighScore) {
			title = "NEW HIGH SCORE"
		}
		lines = []string{
			title,
			fmt.Sprintf("score %d", snap.FinalScore),
			fmt.Sprintf("name: %-3s_", t.session.Name()),
			"Enter to save",
		}
	default:
		return
	}

	top := y + (h-len(lines))/2
	for i, line := range lines {
		left := x + (w-len([]rune(line)))/2
		t.drawText(left, top+i, line, styleOverlay)
	}
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
