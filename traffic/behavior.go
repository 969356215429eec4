package traffic

import (
	"math"

	"github.com/golangdaddy/highway/models"
	"github.com/golangdaddy/highway/road"
)

// drive runs one tick of driving behaviour for an uncrashed car.
func (tc *Controller) drive(car *Car, dt float64, player models.Player, snap []snapshot) {
	cfg := tc.cfg.Traffic

	distanceToPlayer := car.Position - player.Position
	sameLaneAsPlayer := car.Lane == player.Lane
	behindPlayer := distanceToPlayer > 0
	closeToPlayer := math.Abs(distanceToPlayer) < cfg.AvoidWindow

	targetSpeed := car.PreferredSpeed
	if sameLaneAsPlayer && behindPlayer && closeToPlayer {
		if distanceToPlayer < cfg.AvoidHard {
			targetSpeed = math.Min(car.PreferredSpeed, player.Speed-cfg.FollowGap)
		} else if distanceToPlayer < cfg.AvoidSoft {
			targetSpeed = math.Min(car.PreferredSpeed, player.Speed)
		}

		// A fast car stuck behind the player in the overtaking lane loses
		// patience and goes back to its own speed.
		if car.Lane == tc.road.InnerLane() && car.PreferredSpeed > player.Speed+cfg.AggressionMargin {
			car.BlockedTime += dt
			if car.BlockedTime > cfg.AggressionDelay {
				targetSpeed = car.PreferredSpeed
			}
		} else {
			car.BlockedTime = 0
		}

		if car.Lane == car.TargetLane && distanceToPlayer < cfg.PassDistance && car.Speed > player.Speed {
			other := tc.road.Other(car.Lane)
			if laneClear(snap, car.ID, other, car.Position, cfg.LaneClearDistance) {
				car.TargetLane = other
			}
		}
	} else {
		car.BlockedTime = 0
	}

	if math.Abs(car.Speed-targetSpeed) > 0.1 {
		car.Speed += (targetSpeed - car.Speed) * dt * cfg.SpeedEaseRate
	}

	car.Position -= car.Speed / 3.6 * dt

	if !car.ChangingLane() {
		tc.chooseLane(car)
	}

	if car.ChangingLane() {
		var arrived bool
		car.X, arrived = road.Ease(car.X, tc.road.LaneX(car.TargetLane), cfg.LateralRate, dt, cfg.LaneEpsilon)
		if arrived {
			car.Lane = car.TargetLane
		}
	}
}

// chooseLane applies the driver's lane preference.
func (tc *Controller) chooseLane(car *Car) {
	if lane, ok := car.Driver.PreferredLane(tc.road); ok {
		if car.Lane != lane {
			car.TargetLane = lane
		}
		return
	}
	if tc.rng.Float64() < tc.cfg.Traffic.MediumLaneChangeChance {
		if lane := tc.rng.Intn(tc.road.NumLanes); lane != car.Lane {
			car.TargetLane = lane
		}
	}
}

// laneClear reports whether no other uncrashed car in lane is within distance
// of position.
func laneClear(snap []snapshot, self int64, lane int, position, distance float64) bool {
	for _, s := range snap {
		if s.id == self || s.crashed || s.lane != lane {
			continue
		}
		if math.Abs(s.position-position) < distance {
			return false
		}
	}
	return true
}
