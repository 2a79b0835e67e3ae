package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-deluxe/game"
	"snake-deluxe/game/entity"
	"snake-deluxe/game/types"
	"snake-deluxe/ui/session"
)

const (
	borderPadding = 10
	maxPanelWidth = 320
)

var (
	backgroundColor = rl.Color{R: 0x1a, G: 0x1a, B: 0x2e, A: 255}
	gridColor       = rl.Color{R: 0x25, G: 0x25, B: 0x3d, A: 255}
	bodyColor       = rl.Color{R: 0x4c, G: 0xaf, B: 0x50, A: 255}
	headColor       = rl.Color{R: 0x81, G: 0xc7, B: 0x84, A: 255}
	shieldColor     = rl.Color{R: 0x00, G: 0xbc, B: 0xd4, A: 255}
	overlayColor    = rl.Color{R: 0, G: 0, B: 0, A: 170}
)

var powerUpLabels = map[entity.FoodKind]string{
	entity.SpeedBoost: "F",
	entity.SlowMo:     "S",
	entity.Shield:     "D",
	entity.ScoreBonus: "$",
	entity.Shrink:     "X",
}

type Renderer struct {
	cellSize     int32
	screenWidth  int32
	screenHeight int32
	gameWidth    int32
	statsPanel   int32
	gridWidth    int32
	gridHeight   int32
	offsetX      int32
	offsetY      int32
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions(types.Grid{Width: types.MinGridSize, Height: types.MinGridSize})
	return r
}

// UpdateDimensions fits the grid into the window next to the stats panel
func (r *Renderer) UpdateDimensions(grid types.Grid) {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = min(r.screenWidth/4, maxPanelWidth)
	r.gameWidth = r.screenWidth - r.statsPanel

	availableWidth := r.gameWidth - borderPadding*2
	availableHeight := r.screenHeight - borderPadding*2
	r.cellSize = max(1, min(availableWidth/int32(grid.Width), availableHeight/int32(grid.Height)))

	r.gridWidth = r.cellSize * int32(grid.Width)
	r.gridHeight = r.cellSize * int32(grid.Height)
	r.offsetX = (r.gameWidth - r.gridWidth) / 2
	r.offsetY = (r.screenHeight - r.gridHeight) / 2
}

func (r *Renderer) Draw(snap game.Snapshot, s *session.Session) {
	r.UpdateDimensions(snap.Grid)
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	fontSize := max(12, min(r.screenHeight/40, r.statsPanel/14))
	lineHeight := fontSize + fontSize/3

	r.drawGrid(snap)
	if snap.HasSnake() {
		r.drawPickup(snap)
		r.drawSnake(snap)
	}
	r.drawStatsPanel(snap, s, fontSize, lineHeight)
	r.drawOverlay(snap, s, fontSize)

	rl.EndDrawing()
}

func (r *Renderer) cellX(x int) int32 {
	return r.offsetX + int32(x)*r.cellSize
}

func (r *Renderer) cellY(y int) int32 {
	return r.offsetY + int32(y)*r.cellSize
}

func (r *Renderer) drawGrid(snap game.Snapshot) {
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.gridWidth+2, r.gridHeight+2, rl.Black)
	for x := 0; x < snap.Grid.Width; x++ {
		for y := 0; y < snap.Grid.Height; y++ {
			rl.DrawRectangleLines(r.cellX(x), r.cellY(y), r.cellSize, r.cellSize, gridColor)
		}
	}

	border := rl.DarkGray
	if snap.Shield {
		border = shieldColor
	}
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X:      float32(r.offsetX - 2),
		Y:      float32(r.offsetY - 2),
		Width:  float32(r.gridWidth + 4),
		Height: float32(r.gridHeight + 4),
	}, 2, border)
}

func (r *Renderer) drawSnake(snap game.Snapshot) {
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		p := snap.Snake[i]
		color := bodyColor
		if i == 0 {
			color = headColor
			if snap.Shield {
				color = shieldColor
			}
		}
		rl.DrawRectangle(r.cellX(p.X)+1, r.cellY(p.Y)+1, r.cellSize-2, r.cellSize-2, color)
	}

	head := snap.Snake[0]
	r.drawDirection(head, snap.Direction)
}

// drawDirection marks the head with a triangle pointing where it goes
func (r *Renderer) drawDirection(head types.Point, dir types.Direction) {
	headX := float32(r.cellX(head.X))
	headY := float32(r.cellY(head.Y))
	cell := float32(r.cellSize)
	half := cell / 2

	var a, b, c rl.Vector2
	switch dir {
	case types.RIGHT:
		a, b, c = rl.Vector2{X: headX + cell, Y: headY + half}, rl.Vector2{X: headX + half, Y: headY}, rl.Vector2{X: headX + half, Y: headY + cell}
	case types.LEFT:
		a, b, c = rl.Vector2{X: headX, Y: headY + half}, rl.Vector2{X: headX + half, Y: headY + cell}, rl.Vector2{X: headX + half, Y: headY}
	case types.DOWN:
		a, b, c = rl.Vector2{X: headX + half, Y: headY + cell}, rl.Vector2{X: headX + cell, Y: headY + half}, rl.Vector2{X: headX, Y: headY + half}
	default:
		a, b, c = rl.Vector2{X: headX + half, Y: headY}, rl.Vector2{X: headX, Y: headY + half}, rl.Vector2{X: headX + cell, Y: headY + half}
	}
	rl.DrawTriangle(a, b, c, rl.Fade(rl.White, 0.5))
}

func (r *Renderer) drawPickup(snap game.Snapshot) {
	info := snap.Pickup.Kind.Info()
	color := rl.Color{R: info.Color.R, G: info.Color.G, B: info.Color.B, A: 255}
	centerX := r.cellX(snap.Pickup.Pos.X) + r.cellSize/2
	centerY := r.cellY(snap.Pickup.Pos.Y) + r.cellSize/2

	if !snap.Pickup.IsPowerUp() {
		rl.DrawCircle(centerX, centerY, float32(r.cellSize)*0.4, color)
		return
	}

	size := int32(math.Round(float64(r.cellSize) * snap.PulsePhase))
	rl.DrawRectangle(centerX-size/2, centerY-size/2, size, size, color)
	label := powerUpLabels[snap.Pickup.Kind]
	fontSize := max(8, r.cellSize*2/3)
	width := rl.MeasureText(label, fontSize)
	rl.DrawText(label, centerX-width/2, centerY-fontSize/2, fontSize, rl.Black)
}

func (r *Renderer) drawStatsPanel(snap game.Snapshot, s *session.Session, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 10
	statsY := int32(borderPadding)

	rl.DrawRectangle(r.gameWidth, 0, r.statsPanel, r.screenHeight, rl.Color{R: 0x16, G: 0x21, B: 0x3e, A: 255})

	text := func(line string, color rl.Color) {
		rl.DrawText(line, statsX, statsY, fontSize, color)
		statsY += lineHeight
	}

	text("SNAKE DELUXE", rl.Gold)
	statsY += lineHeight / 2
	text(fmt.Sprintf("Score: %d", snap.Score), rl.White)
	text(fmt.Sprintf("High Score: %d", snap.HighScore), rl.White)
	text(fmt.Sprintf("Level: %s", snap.Difficulty), rl.White)
	text(fmt.Sprintf("Speed: %dms", snap.Interval.Milliseconds()), rl.LightGray)

	if snap.SpeedEffect != entity.Normal {
		info := snap.SpeedEffect.Info()
		text(fmt.Sprintf("%s %.1fs", info.Name, snap.SpeedRemaining.Seconds()),
			rl.Color{R: info.Color.R, G: info.Color.G, B: info.Color.B, A: 255})
	}
	if snap.Shield {
		text("SHIELD ACTIVE", shieldColor)
	}
	if s.Autopilot() {
		text("AUTOPILOT", rl.Orange)
	}

	statsY += lineHeight / 2
	text("Leaderboard", rl.Gold)
	if len(snap.Leaderboard) == 0 {
		text("no scores yet", rl.Gray)
	}
	for i, e := range snap.Leaderboard {
		text(fmt.Sprintf("%2d. %-3s %6d", i+1, e.Name, e.Score), rl.White)
	}

	if summary, ok := s.Summary(); ok && summary.Games > 0 {
		statsY += lineHeight / 2
		text("History", rl.Gold)
		text(fmt.Sprintf("Runs: %d", summary.Games), rl.LightGray)
		text(fmt.Sprintf("Avg: %.1f  Median: %.1f", summary.AverageScore, summary.MedianScore), rl.LightGray)
		text(fmt.Sprintf("Best: %d", summary.MaxScore), rl.LightGray)
	}

	statsY = r.screenHeight - lineHeight*3
	text("Arrows/WASD move, P pause", rl.Gray)
	text("1-4 or Tab: level", rl.Gray)
	text("Esc quit", rl.Gray)
}

func (r *Renderer) drawOverlay(snap game.Snapshot, s *session.Session, fontSize int32) {
	var lines []string
	switch snap.Phase {
	case game.Idle:
		lines = []string{"SNAKE DELUXE", "Press Enter to play"}
	case game.Paused:
		lines = []string{"PAUSED", "P to resume"}
	case game.GameOver:
		title := "GAME OVER"
		if snap.FinalScore > 0 && snap.FinalScore == snap.HighScore {
			title = "NEW HIGH SCORE!"
		}
		lines = []string{
			title,
			fmt.Sprintf("Score: %d", snap.FinalScore),
			fmt.Sprintf("Name: %s_", s.Name()),
			"Enter to save",
		}
	default:
		return
	}

	rl.DrawRectangle(r.offsetX, r.offsetY, r.gridWidth, r.gridHeight, overlayColor)
	big := fontSize * 2
	y := r.offsetY + r.gridHeight/2 - int32(len(lines))*big/2
	for i, line := range lines {
		size := fontSize
		if i == 0 {
			size = big
		}
		width := rl.MeasureText(line, size)
		rl.DrawText(line, r.offsetX+(r.gridWidth-width)/2, y, size, rl.White)
		y += size + size/2
	}
}
