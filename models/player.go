package models

import (
	"github.com/golangdaddy/highway/config"
	"github.com/golangdaddy/highway/road"
)

// DrivingStats accumulates per-session statistics about the player's driving.
// They are reset on restart and never persisted.
type DrivingStats struct {
	TotalDistance      float64 // World units driven
	TimeDriven         float64 // Seconds of simulated driving
	TopSpeedReached    float64 // Highest speed in km/h
	LaneChanges        int     // Lane changes started
	UnsignalledChanges int     // Lane changes started without the matching signal
}

// Player represents the player's car.
type Player struct {
	Speed        float64 // km/h, bounded by the configured min and max speed
	Lane         int     // Lane the car occupies
	TargetLane   int     // Lane being moved into; equals Lane outside a transition
	X            float64 // Lateral world position
	Position     float64 // Longitudinal world position, decreasing = forward
	LeftSignal   bool
	RightSignal  bool
	SignalCancel float64 // Seconds until the signals switch off, 0 = not armed

	// SignalUsedForLaneChange is cleared when a lane change starts and set
	// if that change was signalled.
	SignalUsedForLaneChange bool

	Stats DrivingStats
}

// NewPlayer creates a player centred in the configured start lane.
func NewPlayer(r *road.Road, cfg config.PlayerConfig) *Player {
	return &Player{
		Speed:      cfg.StartSpeed,
		Lane:       cfg.StartLane,
		TargetLane: cfg.StartLane,
		X:          r.LaneX(cfg.StartLane),
		Position:   0,
	}
}

// ChangingLane reports whether a lane transition is in progress.
func (p *Player) ChangingLane() bool {
	return p.Lane != p.TargetLane
}

// ToggleLeftSignal switches the left signal and cancels the right one.
func (p *Player) ToggleLeftSignal() {
	p.LeftSignal = !p.LeftSignal
	p.RightSignal = false
}

// ToggleRightSignal switches the right signal and cancels the left one.
func (p *Player) ToggleRightSignal() {
	p.RightSignal = !p.RightSignal
	p.LeftSignal = false
}

// CancelSignals switches both signals off.
func (p *Player) CancelSignals() {
	p.LeftSignal = false
	p.RightSignal = false
	p.SignalCancel = 0
}

// Signalled reports whether the active signal matches a move of direction
// (-1 toward lane 0, +1 toward the outer lane).
func (p *Player) Signalled(direction int) bool {
	return (direction < 0 && p.LeftSignal) || (direction > 0 && p.RightSignal)
}

// UpdateTopSpeed updates the top speed if a new record is set
func (p *Player) UpdateTopSpeed(speed float64) {
	if speed > p.Stats.TopSpeedReached {
		p.Stats.TopSpeedReached = speed
	}
}

// SignalRatio returns the fraction of lane changes that were signalled.
func (s DrivingStats) SignalRatio() float64 {
	if s.LaneChanges == 0 {
		return 1
	}
	return float64(s.LaneChanges-s.UnsignalledChanges) / float64(s.LaneChanges)
}
