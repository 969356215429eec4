// Command highway-term drives the highway in a terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/golangdaddy/highway/session"
	"github.com/golangdaddy/highway/sim"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	holdTimeout   = 200 * time.Millisecond
)

type terminal struct {
	screen  tcell.Screen
	session *session.Session
	sim     *sim.Simulation
	held    *holdTracker
	last    time.Time
}

func main() {
	var opts session.Options
	session.RegisterFlags(flag.CommandLine, &opts)
	logPath := flag.String("log", "highway-term.log", "File to write logs to")
	verbose := flag.Bool("v", false, "Log debug output")
	flag.Parse()

	if err := run(opts, *logPath, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts session.Options, logPath string, verbose bool) error {
	// The terminal belongs to the screen, so logs go to a file.
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	opts.Logger = logger

	s, err := session.Open(opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			slog.Error("failed to close session", "error", err)
		}
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()

	t := &terminal{
		screen:  screen,
		session: s,
		sim:     s.Sim(),
		held:    newHoldTracker(holdTimeout),
		last:    time.Now(),
	}
	slog.Info("driving", "seed", s.Seed())
	t.loop()
	for _, name := range t.held.releaseAll() {
		t.sim.KeyUp(name)
	}
	slog.Info("quit", "score", t.sim.Score(), "elapsed", t.sim.Elapsed())
	return nil
}

// loop is the only goroutine that touches the simulation. Events are read
// on their own goroutine and handed over on a channel.
func (t *terminal) loop() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			for _, name := range t.held.expire(now) {
				t.sim.KeyUp(name)
			}
			t.sim.Tick(now.Sub(t.last).Seconds())
			t.last = now
			t.draw()
		}
	}
}

// handleEvent returns false when the player quits.
func (t *terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.press("w")
		case tcell.KeyDown:
			t.press("s")
		case tcell.KeyLeft:
			t.press("a")
		case tcell.KeyRight:
			t.press("d")
		case tcell.KeyRune:
			if name, ok := runeNames[ev.Rune()]; ok {
				t.press(name)
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// press forwards a key to the simulation. Held controls stay down until
// their repeats stop; the rest are released straight away.
func (t *terminal) press(name string) {
	if !holdable(name) {
		t.sim.KeyDown(name)
		t.sim.KeyUp(name)
		return
	}
	if t.held.touch(name, time.Now()) {
		t.sim.KeyDown(name)
	}
}
