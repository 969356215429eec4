package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/highway/game"
	"github.com/golangdaddy/highway/session"
	"github.com/golangdaddy/highway/ui"
)

const (
	screenWidth  = 640
	screenHeight = 480
)

// State is the screen currently shown
type State int

const (
	StateTitle State = iota
	StateDriving
)

// Game implements ebiten.Game interface.
type Game struct {
	state    State
	title    *ui.TitleScreen
	roadView *game.RoadView
	session  *session.Session
}

// Update proceeds the game state.
// Update is called every tick (1/60 [s] by default).
func (g *Game) Update() error {
	switch g.state {
	case StateTitle:
		return g.title.Update()
	case StateDriving:
		return g.roadView.Update()
	}
	return nil
}

// Draw draws the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	switch g.state {
	case StateTitle:
		g.title.Draw(screen)
	case StateDriving:
		g.roadView.Draw(screen)
	}
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// onGameStart is called when the player leaves the title screen
func (g *Game) onGameStart() {
	g.roadView = game.NewRoadView(g.session)
	g.state = StateDriving
	slog.Info("driving", "seed", g.session.Seed())
}

func main() {
	var opts session.Options
	session.RegisterFlags(flag.CommandLine, &opts)
	headless := flag.Bool("headless", false, "Run without graphics and no input until the game ends")
	maxSeconds := flag.Float64("max-seconds", 120, "Simulated seconds before a headless run stops")
	verbose := flag.Bool("v", false, "Log debug output")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	opts.Logger = logger

	s, err := session.Open(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := s.Close(); err != nil {
			slog.Error("failed to close session", "error", err)
		}
	}()

	if *headless {
		summary := s.RunHeadless(*maxSeconds, 1.0/60)
		over, reason := s.Sim().GameOver()
		slog.Info("headless run finished", "game_over", over, "reason", reason, "summary", summary)
		return
	}

	g := &Game{state: StateTitle, session: s}
	g.title = ui.NewTitleScreen(g.onGameStart)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Highway")
	if err := ebiten.RunGame(g); err != nil {
		slog.Error("game loop failed", "error", err)
		os.Exit(1)
	}
}
