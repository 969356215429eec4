// Package sim runs the highway: it owns the player, the traffic and the score
// and advances them together one frame at a time.
package sim

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/golangdaddy/highway/config"
	"github.com/golangdaddy/highway/models"
	"github.com/golangdaddy/highway/road"
	"github.com/golangdaddy/highway/scoring"
	"github.com/golangdaddy/highway/traffic"
)

// CrashReason is the game over reason when the player hits a car.
const CrashReason = "Crash! You hit another vehicle."

// Hooks are called synchronously from Tick. Any of them may be nil.
type Hooks struct {
	OnEvaluation  func(ev scoring.Evaluation)
	OnCrash       func(car *traffic.Car) // A traffic car crashed into another
	OnRemoved     func(car *traffic.Car) // A crashed car left the road
	OnGameOver    func(reason string, score int)
	BeforeRestart func() // Runs before the traffic is repopulated
	OnRestart     func()
}

// Options configure a Simulation. The zero value is usable.
type Options struct {
	Rand   traffic.Rand // Defaults to math/rand seeded from the config
	Hooks  Hooks
	Logger *slog.Logger
}

// Simulation is one highway session.
type Simulation struct {
	cfg   *config.Config
	road  *road.Road
	log   *slog.Logger
	hooks Hooks

	keys    models.KeyState
	player  *models.Player
	cars    *traffic.Controller
	scoring *scoring.Engine

	elapsed    float64
	gameOver   bool
	overReason string
}

// NewRand returns the generator a seed selects. Seed 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// New creates a simulation and places the initial traffic.
func New(cfg *config.Config, opts Options) *Simulation {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(cfg.Simulation.Seed)
	}

	r := road.NewRoad(cfg.Road.NumLanes, cfg.Road.LaneWidth)
	s := &Simulation{
		cfg:     cfg,
		road:    r,
		log:     logger,
		hooks:   opts.Hooks,
		player:  models.NewPlayer(r, cfg.Player),
		cars:    traffic.NewController(cfg, r, rng, logger),
		scoring: scoring.NewEngine(cfg),
	}
	placed := s.cars.Populate(s.player.Position)
	logger.Debug("simulation ready", "traffic", placed)
	return s
}

// KeyDown records a key press. Signals and lane changes fire once per press;
// restart is only accepted once the game is over. Unknown keys are ignored.
func (s *Simulation) KeyDown(name string) {
	key, ok := models.ParseKey(name)
	if !ok {
		return
	}
	pressed := s.keys.Press(key)

	if s.gameOver {
		if key == models.KeyRestart && pressed {
			s.Restart()
		}
		return
	}
	if !pressed {
		return
	}

	switch key {
	case models.KeySignalLeft:
		s.player.ToggleLeftSignal()
	case models.KeySignalRight:
		s.player.ToggleRightSignal()
	case models.KeyLaneLeft:
		s.changeLane(-1)
	case models.KeyLaneRight:
		s.changeLane(1)
	}
}

// KeyUp records a key release.
func (s *Simulation) KeyUp(name string) {
	if key, ok := models.ParseKey(name); ok {
		s.keys.Release(key)
	}
}

// changeLane starts a move of direction lanes. A change without the matching
// signal costs points at once.
func (s *Simulation) changeLane(direction int) {
	p := s.player
	target := p.TargetLane + direction
	if !s.road.Valid(target) {
		return
	}

	p.SignalUsedForLaneChange = false
	if p.Signalled(direction) {
		p.SignalUsedForLaneChange = true
	} else {
		s.scoring.LaneChangePenalty()
		p.Stats.UnsignalledChanges++
	}
	p.TargetLane = target
	p.SignalCancel = s.cfg.Player.SignalCancelDelay
	p.Stats.LaneChanges++
}

// Tick advances the simulation by dt seconds. Frames outside (0, max delta)
// and frames after game over are skipped; Tick reports whether it ran.
func (s *Simulation) Tick(dt float64) bool {
	if s.gameOver || !(dt > 0 && dt < s.cfg.Simulation.MaxDelta) {
		return false
	}
	s.elapsed += dt

	s.updatePlayer(dt)

	res := s.cars.Update(dt, *s.player)
	for _, car := range res.Crashed {
		if s.hooks.OnCrash != nil {
			s.hooks.OnCrash(car)
		}
	}
	for _, car := range res.Removed {
		if s.hooks.OnRemoved != nil {
			s.hooks.OnRemoved(car)
		}
	}

	if s.CheckCollisions() {
		return true
	}

	if ev, ok := s.scoring.Update(dt, s.view()); ok && s.hooks.OnEvaluation != nil {
		s.hooks.OnEvaluation(ev)
	}

	s.cars.TopUp(*s.player)
	return true
}

func (s *Simulation) updatePlayer(dt float64) {
	p := s.player
	cfg := s.cfg.Player

	if s.keys.Held(models.KeyThrottle) {
		p.Speed += cfg.ThrottleRate * dt
	}
	if s.keys.Held(models.KeyBrake) {
		p.Speed -= cfg.ThrottleRate * dt
	}
	p.Speed = math.Max(cfg.MinSpeed, math.Min(cfg.MaxSpeed, p.Speed))

	distance := p.Speed / 3.6 * dt
	p.Position -= distance

	var arrived bool
	p.X, arrived = road.Ease(p.X, s.road.LaneX(p.TargetLane), cfg.LateralRate, dt, cfg.LaneEpsilon)
	if arrived {
		p.Lane = p.TargetLane
	}

	if p.SignalCancel > 0 {
		p.SignalCancel -= dt
		if p.SignalCancel <= 0 {
			p.CancelSignals()
		}
	}

	p.Stats.TotalDistance += distance
	p.Stats.TimeDriven += dt
	p.UpdateTopSpeed(p.Speed)
}

// CheckCollisions ends the game if the player is touching an uncrashed car in
// its lane, and reports whether it did.
func (s *Simulation) CheckCollisions() bool {
	p := s.player
	if car := traffic.PlayerCollision(s.cars.Cars(), p.Lane, p.Position, s.cfg.Crash.PlayerDistance); car != nil {
		s.log.Debug("player collision", "car", car.ID, "driver", car.Driver, "lane", car.Lane)
		s.endGame(CrashReason)
		return true
	}
	return false
}

func (s *Simulation) endGame(reason string) {
	if s.gameOver {
		return
	}
	s.gameOver = true
	s.overReason = reason
	s.scoring.Halt()
	s.log.Info("game over",
		"reason", reason,
		"score", s.scoring.Score(),
		"elapsed", s.elapsed,
		"distance", s.player.Stats.TotalDistance,
	)
	if s.hooks.OnGameOver != nil {
		s.hooks.OnGameOver(reason, s.scoring.Score())
	}
}

// Restart puts the player back at the start with fresh traffic and score.
func (s *Simulation) Restart() {
	if s.hooks.BeforeRestart != nil {
		s.hooks.BeforeRestart()
	}
	s.player = models.NewPlayer(s.road, s.cfg.Player)
	s.keys.Clear()
	s.cars.Reset()
	placed := s.cars.Populate(s.player.Position)
	s.scoring.Reset()
	s.elapsed = 0
	s.gameOver = false
	s.overReason = ""
	s.log.Debug("restart", "traffic", placed)
	if s.hooks.OnRestart != nil {
		s.hooks.OnRestart()
	}
}

// Reseed replaces the traffic random source with one seeded by seed.
func (s *Simulation) Reseed(seed int64) {
	s.cars.SetRand(NewRand(seed))
}

func (s *Simulation) view() scoring.View {
	cars := s.cars.Cars()
	v := scoring.View{
		Player: scoring.Vehicle{
			Lane:     s.player.Lane,
			Position: s.player.Position,
			Speed:    s.player.Speed,
		},
		Traffic:   make([]scoring.Vehicle, len(cars)),
		InnerLane: s.road.InnerLane(),
		OuterLane: s.road.OuterLane(),
	}
	for i, c := range cars {
		v.Traffic[i] = scoring.Vehicle{Lane: c.Lane, Position: c.Position, Speed: c.Speed, Crashed: c.Crashed()}
	}
	return v
}

// Player returns a copy of the player state.
func (s *Simulation) Player() models.Player {
	return *s.player
}

// Traffic returns the active cars. The slice must not be modified.
func (s *Simulation) Traffic() []*traffic.Car {
	return s.cars.Cars()
}

// Score returns the current score.
func (s *Simulation) Score() int {
	return s.scoring.Score()
}

// Feedback returns the current feedback message.
func (s *Simulation) Feedback() scoring.Message {
	return s.scoring.Feedback()
}

// Mode returns the score trickle direction.
func (s *Simulation) Mode() scoring.Mode {
	return s.scoring.Mode()
}

// GameOver reports whether the game has ended and why.
func (s *Simulation) GameOver() (bool, string) {
	return s.gameOver, s.overReason
}

// Elapsed returns the simulated seconds since the last (re)start.
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

// Road returns the road geometry.
func (s *Simulation) Road() *road.Road {
	return s.road
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// Held reports whether the key named name is down.
func (s *Simulation) Held(name string) bool {
	key, ok := models.ParseKey(name)
	return ok && s.keys.Held(key)
}
