package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/highway/config"
	"github.com/golangdaddy/highway/scoring"
	"github.com/golangdaddy/highway/traffic"
)

const dt = 1.0 / 16

func newSim(seed int64, hooks Hooks) *Simulation {
	return New(config.Default(), Options{Rand: rand.New(rand.NewSource(seed)), Hooks: hooks})
}

// emptyRoad removes the initial traffic.
func emptyRoad(seed int64, hooks Hooks) *Simulation {
	s := newSim(seed, hooks)
	s.cars.Reset()
	return s
}

// tickAlone runs n ticks with the road cleared before each one, so only
// freshly spawned cars, which start well clear of the player, are present.
func tickAlone(s *Simulation, seconds float64) {
	for i := 0; i < int(seconds/dt); i++ {
		s.cars.Reset()
		s.Tick(dt)
	}
}

func press(s *Simulation, keys ...string) {
	for _, k := range keys {
		s.KeyDown(k)
		s.KeyUp(k)
	}
}

func TestNew(t *testing.T) {
	s := newSim(1, Hooks{})
	p := s.Player()

	assert.Equal(t, 100.0, p.Speed)
	assert.Equal(t, 1, p.Lane)
	assert.Equal(t, 1, p.TargetLane)
	assert.Equal(t, s.Road().LaneX(1), p.X)
	assert.Zero(t, p.Position)
	assert.Equal(t, 1000, s.Score())
	assert.NotEmpty(t, s.Traffic())
	assert.LessOrEqual(t, len(s.Traffic()), 8)

	over, _ := s.GameOver()
	assert.False(t, over)
}

func TestUnsignalledLaneChange(t *testing.T) {
	s := emptyRoad(1, Hooks{})
	s.KeyDown("a")

	p := s.Player()
	assert.Equal(t, 990, s.Score())
	assert.Equal(t, 0, p.TargetLane)
	assert.Equal(t, 1, p.Lane, "the move has only started")
	assert.False(t, p.SignalUsedForLaneChange)
	assert.Equal(t, 1, p.Stats.UnsignalledChanges)
	assert.Equal(t, "No Signal -10", s.Feedback().Text)
	assert.False(t, s.Feedback().Positive)
}

func TestSignalledLaneChange(t *testing.T) {
	s := emptyRoad(1, Hooks{})
	press(s, "q", "a")

	p := s.Player()
	require.Equal(t, 0, p.TargetLane)
	assert.Equal(t, 1000, s.Score())
	assert.True(t, p.SignalUsedForLaneChange)
	assert.True(t, p.LeftSignal)

	tickAlone(s, 7*dt)
	p = s.Player()
	assert.True(t, p.LeftSignal)
	assert.Equal(t, 1, p.Lane)

	tickAlone(s, dt)
	p = s.Player()
	assert.False(t, p.LeftSignal, "signals switch off half a second after the change")
	assert.Equal(t, 0, p.Lane)
	assert.Equal(t, s.Road().LaneX(0), p.X)
	assert.Equal(t, 1, p.Stats.LaneChanges)
	assert.Equal(t, 1.0, p.Stats.SignalRatio())
}

func TestSignalsToggle(t *testing.T) {
	s := emptyRoad(1, Hooks{})

	press(s, "q")
	assert.True(t, s.Player().LeftSignal)
	press(s, "q")
	assert.False(t, s.Player().LeftSignal)

	press(s, "q", "e")
	p := s.Player()
	assert.True(t, p.RightSignal)
	assert.False(t, p.LeftSignal, "signals are exclusive")

	s.KeyDown("Q")
	s.KeyDown("q") // held, not a new press
	assert.True(t, s.Player().LeftSignal)
	assert.False(t, s.Player().RightSignal)
}

func TestLaneChangeStaysOnRoad(t *testing.T) {
	s := emptyRoad(1, Hooks{})

	press(s, "d")
	assert.Equal(t, 1, s.Player().TargetLane)
	assert.Equal(t, 1000, s.Score(), "no penalty for a move off the road")

	press(s, "a", "a")
	assert.Equal(t, 0, s.Player().TargetLane)
	assert.Equal(t, 990, s.Score())

	press(s, "d")
	assert.Equal(t, 1, s.Player().TargetLane, "a transition can be reversed")
	assert.Equal(t, 980, s.Score())
}

func TestUnknownKeysIgnored(t *testing.T) {
	s := emptyRoad(1, Hooks{})
	before := s.Player()
	press(s, "x", "", "ArrowUp")
	assert.Equal(t, before, s.Player())
	assert.False(t, s.Held("x"))
}

func TestTickWindow(t *testing.T) {
	s := emptyRoad(1, Hooks{})

	assert.False(t, s.Tick(0))
	assert.False(t, s.Tick(-0.01))
	assert.False(t, s.Tick(0.1))
	assert.False(t, s.Tick(0.5))
	assert.False(t, s.Tick(math.NaN()))
	assert.False(t, s.Tick(math.Inf(1)))
	assert.Zero(t, s.Elapsed())
	assert.Zero(t, s.Player().Position)

	assert.True(t, s.Tick(0.05))
	assert.Equal(t, 0.05, s.Elapsed())
	assert.Less(t, s.Player().Position, 0.0)
}

func TestThrottleAndBrake(t *testing.T) {
	s := emptyRoad(1, Hooks{})

	s.KeyDown("w")
	tickAlone(s, 1)
	assert.InDelta(t, 106, s.Player().Speed, 1e-9)

	tickAlone(s, 10)
	assert.Equal(t, 140.0, s.Player().Speed)
	assert.Equal(t, 140.0, s.Player().Stats.TopSpeedReached)

	s.KeyUp("w")
	s.KeyDown("s")
	tickAlone(s, 1)
	assert.InDelta(t, 134, s.Player().Speed, 1e-9)

	tickAlone(s, 10)
	assert.Equal(t, 100.0, s.Player().Speed)
}

func TestPlayerCollisionEndsGame(t *testing.T) {
	var reasons []string
	var scores []int
	s := emptyRoad(1, Hooks{OnGameOver: func(reason string, score int) {
		reasons = append(reasons, reason)
		scores = append(scores, score)
	}})
	s.cars.Add(s.cars.NewCar(1, -2, 100, traffic.Slow))

	require.True(t, s.Tick(1.0/60))

	over, reason := s.GameOver()
	assert.True(t, over)
	assert.Equal(t, CrashReason, reason)
	assert.Equal(t, []string{CrashReason}, reasons)
	assert.Equal(t, []int{1000}, scores)

	elapsed := s.Elapsed()
	assert.False(t, s.Tick(1.0/60))
	assert.Equal(t, elapsed, s.Elapsed())

	press(s, "q", "a")
	assert.False(t, s.Player().LeftSignal, "input is ignored after game over")
	assert.Equal(t, 1, s.Player().TargetLane)
	assert.Equal(t, 1000, s.Score())
}

func TestRestartKey(t *testing.T) {
	s := emptyRoad(1, Hooks{})
	press(s, "r")
	over, _ := s.GameOver()
	assert.False(t, over)
	assert.Empty(t, s.Traffic(), "restart is ignored while driving")

	s.cars.Add(s.cars.NewCar(1, -1, 100, traffic.Slow))
	s.Tick(dt)
	over, _ = s.GameOver()
	require.True(t, over)

	press(s, "R")
	over, reason := s.GameOver()
	assert.False(t, over)
	assert.Empty(t, reason)
	assert.Zero(t, s.Player().Position)
	assert.NotEmpty(t, s.Traffic())
	assert.True(t, s.Tick(dt))
}

func TestRestartMatchesFreshStart(t *testing.T) {
	const seed = 7
	fresh := newSim(seed, Hooks{})

	var s *Simulation
	s = newSim(seed, Hooks{BeforeRestart: func() { s.Reseed(seed) }})
	s.KeyDown("w")
	press(s, "a")
	for i := 0; i < 80; i++ {
		s.Tick(dt)
	}

	s.Restart()

	p := s.Player()
	assert.Equal(t, 100.0, p.Speed)
	assert.Equal(t, 1, p.Lane)
	assert.Equal(t, s.Road().LaneX(1), p.X)
	assert.Zero(t, p.Position)
	assert.False(t, p.LeftSignal || p.RightSignal)
	assert.Equal(t, fresh.Player(), p)

	assert.Equal(t, 1000, s.Score())
	assert.Equal(t, scoring.Halted, s.Mode())
	assert.False(t, s.Feedback().Visible())
	assert.Zero(t, s.Elapsed())
	assert.False(t, s.Held("w"))
	over, _ := s.GameOver()
	assert.False(t, over)

	require.Len(t, s.Traffic(), len(fresh.Traffic()))
	for i, car := range s.Traffic() {
		want := fresh.Traffic()[i]
		assert.Equal(t, want.Lane, car.Lane)
		assert.Equal(t, want.Position, car.Position)
		assert.Equal(t, want.Speed, car.Speed)
		assert.Equal(t, want.Driver, car.Driver)
	}
}

func TestLeftLaneScenario(t *testing.T) {
	var evs []scoring.Evaluation
	s := emptyRoad(1, Hooks{OnEvaluation: func(ev scoring.Evaluation) {
		evs = append(evs, ev)
	}})
	press(s, "q", "a")

	tickAlone(s, 1)
	require.Len(t, evs, 1)
	assert.Equal(t, scoring.LeftLane, evs[0].Reason)
	assert.Equal(t, 0, evs[0].Lane)
	assert.Equal(t, "Wrong Lane", s.Feedback().Text)

	tickAlone(s, 0.5)
	assert.Less(t, s.Score(), 1000)
	assert.Equal(t, scoring.Decreasing, s.Mode())
}

func TestEvaluationsEverySecond(t *testing.T) {
	var times []float64
	s := emptyRoad(1, Hooks{OnEvaluation: func(ev scoring.Evaluation) {
		times = append(times, ev.Time)
		assert.Equal(t, scoring.Driving, ev.Reason)
	}})

	tickAlone(s, 3)
	assert.Equal(t, []float64{1, 2, 3}, times)
	assert.Equal(t, 1008, s.Score())
}

func TestTrafficCrashHooks(t *testing.T) {
	crashed := map[int64]bool{}
	removed := map[int64]bool{}
	s := emptyRoad(3, Hooks{
		OnCrash:   func(car *traffic.Car) { crashed[car.ID] = true },
		OnRemoved: func(car *traffic.Car) { removed[car.ID] = true },
	})
	a := s.cars.NewCar(1, -100, 100, traffic.Slow)
	b := s.cars.NewCar(1, -102, 100, traffic.Slow)
	s.cars.Add(a)
	s.cars.Add(b)

	require.True(t, s.Tick(dt))
	assert.True(t, crashed[a.ID])
	assert.True(t, crashed[b.ID])
	assert.Equal(t, traffic.Shaking, a.Crash.Phase)

	for i := 0; i < 50; i++ {
		s.Tick(dt)
	}
	assert.True(t, removed[a.ID])
	assert.True(t, removed[b.ID])
	for _, car := range s.Traffic() {
		assert.NotEqual(t, a.ID, car.ID)
		assert.NotEqual(t, b.ID, car.ID)
	}
}

func TestScoreNeverNegative(t *testing.T) {
	s := emptyRoad(1, Hooks{})
	for i := 0; i < 150; i++ {
		press(s, "a", "d")
		require.GreaterOrEqual(t, s.Score(), 0)
	}
	assert.Zero(t, s.Score())
	assert.Equal(t, 300, s.Player().Stats.UnsignalledChanges)
}
