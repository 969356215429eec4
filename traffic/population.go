package traffic

import "github.com/golangdaddy/highway/models"

// reposition moves cars that drifted too far from the player back into
// view instead of removing them. A car left behind reappears ahead, slower
// than the player; a car that ran away ahead reappears behind, faster.
func (tc *Controller) reposition(player models.Player) {
	cfg := tc.cfg.Population
	for _, car := range tc.cars {
		if car.Crashed() {
			continue
		}

		var side Side
		switch {
		case car.Position > player.Position+cfg.RepositionBehind:
			side = Ahead
			car.Position = player.Position - cfg.RepositionAheadOffset - tc.rng.Float64()*cfg.RepositionSpread
		case car.Position < player.Position-cfg.RepositionAhead:
			side = Behind
			car.Position = player.Position + cfg.RepositionBehindOffset + tc.rng.Float64()*cfg.RepositionSpread
		default:
			continue
		}

		car.Speed = tc.SpeedRelativeTo(side, player.Speed)
		car.PreferredSpeed = car.Speed
		car.Driver = DriverForSpeed(car.Speed, cfg)
		car.BlockedTime = 0
	}
}

// Distribution counts uncrashed cars strictly ahead of and behind position.
func (tc *Controller) Distribution(position float64) (ahead, behind int) {
	for _, car := range tc.cars {
		if car.Crashed() {
			continue
		}
		switch {
		case car.Position < position:
			ahead++
		case car.Position > position:
			behind++
		}
	}
	return ahead, behind
}

// MinimumDistribution returns how many cars must be ahead and behind a player
// driving at speed. Near the minimum speed nothing ahead would ever be caught,
// so traffic is all placed behind.
func (tc *Controller) MinimumDistribution(speed float64) (ahead, behind int) {
	if speed <= tc.cfg.Player.MinSpeed+tc.cfg.Population.SlowPlayerMargin {
		return 0, 2
	}
	return 1, 1
}

// ensureMinimum spawns at most one car per side when the distribution around
// the player is below its minimum.
func (tc *Controller) ensureMinimum(player models.Player) []*Car {
	var spawned []*Car
	ahead, behind := tc.Distribution(player.Position)
	minAhead, minBehind := tc.MinimumDistribution(player.Speed)

	if ahead < minAhead {
		if car, ok := tc.SpawnRelative(Ahead, player.Position, player.Speed); ok {
			spawned = append(spawned, car)
		}
	}
	if behind < minBehind {
		if car, ok := tc.SpawnRelative(Behind, player.Position, player.Speed); ok {
			spawned = append(spawned, car)
		}
	}
	return spawned
}

// spawnDensity occasionally adds an archetype car while below the cap, mostly
// ahead of the player.
func (tc *Controller) spawnDensity(player models.Player) (*Car, bool) {
	cfg := tc.cfg.Population
	if len(tc.cars) >= cfg.MaxTraffic {
		return nil, false
	}
	if tc.rng.Float64() >= cfg.SpawnChance {
		return nil, false
	}

	position := player.Position + cfg.DensityBehindOffset
	if tc.rng.Float64() < cfg.AheadBias {
		position = player.Position - cfg.DensityAheadOffset
	}
	return tc.spawn("density", func() (int, float64, float64, DriverType) {
		driver, lane, speed := tc.PickArchetype()
		return lane, position, speed, driver
	})
}
