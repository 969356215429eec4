package traffic

import (
	"math"

	"github.com/golangdaddy/highway/config"
)

// CrashPhase is a step of the crash animation.
type CrashPhase int

const (
	// Driving is the normal, uncrashed state.
	Driving CrashPhase = iota
	// Shaking jolts the car in place right after impact.
	Shaking
	// Flying spins the car off the road while it slows down.
	Flying
	// Removed is terminal; the car leaves the active set.
	Removed
)

func (p CrashPhase) String() string {
	switch p {
	case Driving:
		return "driving"
	case Shaking:
		return "shaking"
	case Flying:
		return "flying"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Pose is the visual offset of a crashed car relative to its world position.
// Rotations are in radians.
type Pose struct {
	RotX, RotY, RotZ float64
	Lift             float64 // Height above the road
}

// Crash holds the animation state of a crashed car.
type Crash struct {
	Phase     CrashPhase
	Elapsed   float64 // Seconds since impact
	Direction float64 // Lateral fling direction, -1 or +1
	Pose      Pose
}

// initiateCrash starts the crash animation. A car that is already crashed is
// left alone.
func initiateCrash(car *Car, rng Rand) {
	if car.Crashed() {
		return
	}
	dir := 1.0
	if rng.Float64() < 0.5 {
		dir = -1
	}
	car.Crash = Crash{Phase: Shaking, Direction: dir}
	car.BlockedTime = 0
}

// advanceCrash steps the crash state machine by dt and reports whether the car
// has reached Removed.
func advanceCrash(car *Car, dt float64, cfg config.CrashConfig) bool {
	c := &car.Crash
	c.Elapsed += dt

	switch {
	case c.Elapsed >= cfg.Duration:
		c.Phase = Removed
		return true
	case c.Elapsed < cfg.ShakeDuration:
		c.Phase = Shaking
		t := c.Elapsed
		c.Pose.RotY = math.Sin(t*50) * 0.3
		c.Pose.RotX = math.Sin(t*40) * 0.2
		c.Pose.RotZ = math.Sin(t*60) * 0.2
		c.Pose.Lift = math.Abs(math.Sin(t*15)) * 2
	default:
		c.Phase = Flying
		f := c.Elapsed - cfg.ShakeDuration
		c.Pose.Lift = math.Abs(math.Sin(f*8)) * math.Max(0, 2-f*0.8)
		c.Pose.RotY += dt * 5 * c.Direction
		c.Pose.RotX += dt * 3
		car.X += c.Direction * dt * cfg.FlingRate
		car.Speed *= cfg.SpeedDecay
		car.Position -= car.Speed / 3.6 * dt
	}
	return false
}
