package traffic

import "math"

// Side is where a car is spawned relative to the player.
type Side int

const (
	Ahead Side = iota
	Behind
)

func (s Side) String() string {
	if s == Ahead {
		return "ahead"
	}
	return "behind"
}

// IsSpawnPositionSafe reports whether no uncrashed car in lane is within the
// configured safe distance of position.
func (tc *Controller) IsSpawnPositionSafe(lane int, position float64) bool {
	minDistance := tc.cfg.Spawn.SafeDistance
	for _, car := range tc.cars {
		if car.Crashed() {
			continue
		}
		if car.Lane == lane && math.Abs(car.Position-position) < minDistance {
			return false
		}
	}
	return true
}

// PickArchetype draws a driver type with its lane and speed.
func (tc *Controller) PickArchetype() (DriverType, int, float64) {
	cfg := tc.cfg.Spawn
	r := tc.rng.Float64()

	var driver DriverType
	switch {
	case r < cfg.SlowBucket:
		driver = Slow
	case r < cfg.FastBucket:
		driver = Fast
	default:
		driver = Medium
	}

	lane, ok := driver.PreferredLane(tc.road)
	if !ok {
		lane = tc.rng.Intn(tc.road.NumLanes)
	}
	band := driver.SpeedBand(cfg)
	speed := band.Min + tc.rng.Float64()*band.Span()
	return driver, lane, speed
}

// laneForDriver picks the lane a speed-derived car starts in.
func (tc *Controller) laneForDriver(driver DriverType) int {
	if lane, ok := driver.PreferredLane(tc.road); ok {
		return lane
	}
	return tc.rng.Intn(tc.road.NumLanes)
}

// spawn tries up to the configured attempt count to place a car produced by
// candidate. A candidate returns the car's lane, position, speed and driver.
// The request is dropped if no attempt finds a safe position.
func (tc *Controller) spawn(reason string, candidate func() (int, float64, float64, DriverType)) (*Car, bool) {
	for attempt := 0; attempt < tc.cfg.Spawn.MaxAttempts; attempt++ {
		lane, position, speed, driver := candidate()
		if tc.IsSpawnPositionSafe(lane, position) {
			car := tc.NewCar(lane, position, speed, driver)
			tc.cars = append(tc.cars, car)
			return car, true
		}
	}
	tc.log.Debug("spawn dropped", "reason", reason, "attempts", tc.cfg.Spawn.MaxAttempts)
	return nil, false
}

// SpawnInWindow spawns an archetype car uniformly within window units of
// center, in either direction.
func (tc *Controller) SpawnInWindow(center, window float64) (*Car, bool) {
	return tc.spawn("window", func() (int, float64, float64, DriverType) {
		position := center - window + tc.rng.Float64()*2*window
		driver, lane, speed := tc.PickArchetype()
		return lane, position, speed, driver
	})
}

// Populate fills an empty road with the initial traffic around center.
// It returns the number of cars placed.
func (tc *Controller) Populate(center float64) int {
	placed := 0
	for i := 0; i < tc.cfg.Traffic.InitialCount; i++ {
		if _, ok := tc.SpawnInWindow(center, tc.cfg.Spawn.InitialWindow); ok {
			placed++
		}
	}
	return placed
}

// SpeedRelativeTo returns a speed that makes a car on side close in on (Ahead:
// slower) or catch up with (Behind: faster) a player driving at playerSpeed.
func (tc *Controller) SpeedRelativeTo(side Side, playerSpeed float64) float64 {
	cfg := tc.cfg.Population
	var lo, hi float64
	if side == Ahead {
		hi = playerSpeed - cfg.SpeedGap
		lo = math.Max(cfg.MinSpeedFloor, hi-cfg.SpeedSpread)
	} else {
		lo = playerSpeed + cfg.SpeedGap
		hi = math.Min(cfg.MaxSpeedCeiling, lo+cfg.SpeedSpread)
	}
	if hi < lo {
		hi = lo
	}
	return lo + tc.rng.Float64()*(hi-lo)
}

// SpawnRelative spawns a car on side of a player at playerPosition driving at
// playerSpeed, with a speed that guarantees the gap closes.
func (tc *Controller) SpawnRelative(side Side, playerPosition, playerSpeed float64) (*Car, bool) {
	cfg := tc.cfg.Population
	return tc.spawn("minimum "+side.String(), func() (int, float64, float64, DriverType) {
		var position float64
		if side == Ahead {
			position = playerPosition - cfg.TopUpAheadOffset - tc.rng.Float64()*cfg.TopUpAheadSpread
		} else {
			position = playerPosition + cfg.TopUpBehindOffset + tc.rng.Float64()*cfg.TopUpBehindSpread
		}
		speed := tc.SpeedRelativeTo(side, playerSpeed)
		driver := DriverForSpeed(speed, cfg)
		return tc.laneForDriver(driver), position, speed, driver
	})
}
