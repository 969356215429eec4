package traffic

import (
	"math/rand"

	"github.com/golangdaddy/highway/config"
	"github.com/golangdaddy/highway/models"
	"github.com/golangdaddy/highway/road"
)

// scriptedRand replays fixed values, then falls back to constants.
type scriptedRand struct {
	floats   []float64
	ints     []int
	fallback float64
	calls    int
}

func (s *scriptedRand) Float64() float64 {
	s.calls++
	if len(s.floats) == 0 {
		return s.fallback
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRand) Intn(n int) int {
	s.calls++
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func newTestController(rng Rand) (*Controller, *config.Config) {
	cfg := config.Default()
	r := road.NewRoad(cfg.Road.NumLanes, cfg.Road.LaneWidth)
	return NewController(cfg, r, rng, nil), cfg
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func playerAt(lane int, position, speed float64) models.Player {
	return models.Player{Lane: lane, TargetLane: lane, Position: position, Speed: speed}
}

func (tc *Controller) place(lane int, position, speed float64, driver DriverType) *Car {
	car := tc.NewCar(lane, position, speed, driver)
	tc.Add(car)
	return car
}
