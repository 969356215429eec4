// Package traffic simulates the non-player vehicles on the highway: spawning,
// per-tick driving behaviour, collisions, crash animation, and keeping the
// traffic population spread around the player.
package traffic

import (
	"github.com/golangdaddy/highway/config"
	"github.com/golangdaddy/highway/road"
)

// DriverType is the behavioural profile of a traffic car.
type DriverType int

const (
	// Slow drivers keep to the outer lane.
	Slow DriverType = iota
	// Medium drivers drift between lanes at random.
	Medium
	// Fast drivers keep to the inner (overtaking) lane.
	Fast
)

func (d DriverType) String() string {
	switch d {
	case Slow:
		return "slow"
	case Medium:
		return "medium"
	case Fast:
		return "fast"
	}
	return "unknown"
}

// PreferredLane returns the lane the driver steers back to. Medium drivers have
// no preference and report false.
func (d DriverType) PreferredLane(r *road.Road) (int, bool) {
	switch d {
	case Slow:
		return r.OuterLane(), true
	case Fast:
		return r.InnerLane(), true
	}
	return 0, false
}

// SpeedBand returns the speed range new drivers of this type are given.
func (d DriverType) SpeedBand(cfg config.SpawnConfig) config.Range {
	switch d {
	case Slow:
		return cfg.SlowSpeed
	case Fast:
		return cfg.FastSpeed
	}
	return cfg.MediumSpeed
}

// DriverForSpeed classifies a speed as a driver type.
func DriverForSpeed(speed float64, cfg config.PopulationConfig) DriverType {
	switch {
	case speed < cfg.SlowBelow:
		return Slow
	case speed < cfg.MediumBelow:
		return Medium
	}
	return Fast
}

// Car represents a traffic vehicle
type Car struct {
	ID             int64      // Unique identifier, increasing in spawn order
	Lane           int        // Lane the car occupies
	TargetLane     int        // Lane being moved into
	X              float64    // Lateral world position
	Position       float64    // Longitudinal world position, decreasing = forward
	Speed          float64    // Current speed in km/h
	PreferredSpeed float64    // Cruising speed the car returns to
	Driver         DriverType // Behavioural profile
	BlockedTime    float64    // Seconds spent held up behind the player
	Crash          Crash      // Crash animation state, zero until crashed
}

// Crashed reports whether the car has been in a collision.
func (c *Car) Crashed() bool {
	return c.Crash.Phase != Driving
}

// ChangingLane reports whether a lane transition is in progress.
func (c *Car) ChangingLane() bool {
	return c.Lane != c.TargetLane
}

// newCar creates a car centred in lane.
func newCar(id int64, r *road.Road, lane int, position, speed float64, driver DriverType) *Car {
	return &Car{
		ID:             id,
		Lane:           lane,
		TargetLane:     lane,
		X:              r.LaneX(lane),
		Position:       position,
		Speed:          speed,
		PreferredSpeed: speed,
		Driver:         driver,
	}
}
