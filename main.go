package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-deluxe/ai"
	"snake-deluxe/game"
	"snake-deluxe/game/manager"
	"snake-deluxe/game/types"
	"snake-deluxe/ui"
	"snake-deluxe/ui/session"
	"snake-deluxe/ui/sound"
	"snake-deluxe/ui/terminal"
)

func main() {
	defaults := types.DefaultConfig()
	frontend := flag.String("ui", "window", "Frontend: window or terminal")
	width := flag.Int("width", defaults.Width, "Grid width in cells")
	height := flag.Int("height", defaults.Height, "Grid height in cells")
	difficulty := flag.String("difficulty", string(defaults.Difficulty), "easy, medium, hard or insane")
	dataDir := flag.String("data", "data", "Directory for scores, run history and the Q-table")
	seed := flag.Uint64("seed", 0, "Random seed (0 = time based)")
	autopilot := flag.Bool("autopilot", false, "Let the Q-learning agent play")
	withSound := flag.Bool("sound", false, "Play sound cues")
	logFile := flag.String("log", "", "Log to this file instead of stderr")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)

	// tcell owns the terminal, so its logs go to a file by default
	if *logFile == "" && *frontend == "terminal" {
		*logFile = filepath.Join(*dataDir, "snake.log")
	}
	if *logFile != "" {
		closeLog, err := redirectLog(*logFile)
		if err != nil {
			log.Fatalf("Error opening log file: %v", err)
		}
		defer closeLog()
	}

	cfg := types.Config{
		Width:      *width,
		Height:     *height,
		Difficulty: types.ParseDifficulty(*difficulty),
		Seed:       *seed,
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	persist := manager.NewStateManager(manager.NewFileStore(filepath.Join(*dataDir, "store.json")))
	history := manager.NewHistoryManager(filepath.Join(*dataDir, "history.json"))
	ctrl := game.NewController(cfg, persist, game.WithRecorder(history))

	var pilot session.Pilot
	if *autopilot {
		qtablePath := filepath.Join(*dataDir, "qtable.json")
		agent, err := ai.LoadOrNewQLearning(qtablePath, cfg.Seed)
		if err != nil {
			log.Printf("Warning: could not load Q-table, starting fresh: %v", err)
			agent = ai.NewQLearning(cfg.Seed)
		}
		log.Printf("Autopilot %s ready after %d games", agent.ID, agent.Games())
		ap := ai.NewAutopilot(agent, qtablePath)
		defer ap.Close()
		pilot = ap
	}

	if *withSound {
		player := sound.NewPlayer()
		if err := player.Initialize(); err != nil {
			log.Printf("Warning: sound disabled: %v", err)
		} else {
			ctrl.AddPresenter(player)
			defer player.Close()
		}
	}

	sess := session.New(ctrl, pilot, history)
	log.Printf("Starting %s game on a %dx%d grid (%s)", *frontend, cfg.Width, cfg.Height, cfg.Difficulty)

	switch *frontend {
	case "terminal":
		if err := runTerminal(sess); err != nil {
			log.Printf("Error: %v", err)
		}
	case "window":
		runWindow(sess)
	default:
		log.Printf("Error: unknown frontend %q", *frontend)
	}
}

func runTerminal(sess *session.Session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return terminal.New(screen, sess).Run(ctx)
}

func runWindow(sess *session.Session) {
	rl.InitWindow(1280, 800, "Snake Deluxe")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)
	ui.NewWindow(sess).Run()
}

func redirectLog(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return func() { f.Close() }, nil
}
