package models

import (
	"testing"

	"github.com/golangdaddy/highway/config"
	"github.com/golangdaddy/highway/road"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayer(t *testing.T) {
	cfg := config.Default()
	p := NewPlayer(road.NewRoad(2, 4), cfg.Player)

	assert.Equal(t, 100.0, p.Speed)
	assert.Equal(t, 1, p.Lane)
	assert.Equal(t, 1, p.TargetLane)
	assert.Equal(t, 2.0, p.X)
	assert.Equal(t, 0.0, p.Position)
	assert.False(t, p.ChangingLane())
}

func TestSignalsAreMutuallyExclusive(t *testing.T) {
	p := &Player{}

	p.ToggleLeftSignal()
	assert.True(t, p.LeftSignal)
	assert.False(t, p.RightSignal)
	assert.True(t, p.Signalled(-1))
	assert.False(t, p.Signalled(1))

	p.ToggleRightSignal()
	assert.False(t, p.LeftSignal)
	assert.True(t, p.RightSignal)

	p.ToggleRightSignal()
	assert.False(t, p.RightSignal)

	p.ToggleLeftSignal()
	p.SignalCancel = 0.3
	p.CancelSignals()
	assert.False(t, p.LeftSignal)
	assert.Zero(t, p.SignalCancel)
}

func TestParseKey(t *testing.T) {
	for name, want := range map[string]Key{
		"w": KeyThrottle, "S": KeyBrake, "q": KeySignalLeft, "E": KeySignalRight,
		"a": KeyLaneLeft, "d": KeyLaneRight, "r": KeyRestart,
	} {
		got, ok := ParseKey(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	for _, name := range []string{"x", "", "ArrowLeft", "ww"} {
		_, ok := ParseKey(name)
		assert.False(t, ok, name)
	}
}

func TestKeyStateEdges(t *testing.T) {
	var ks KeyState
	assert.False(t, ks.Held(KeyThrottle))

	assert.True(t, ks.Press(KeyThrottle))
	assert.False(t, ks.Press(KeyThrottle), "repeat press is not an edge")
	assert.True(t, ks.Held(KeyThrottle))

	ks.Release(KeyThrottle)
	assert.False(t, ks.Held(KeyThrottle))
	assert.True(t, ks.Press(KeyThrottle))

	ks.Clear()
	assert.False(t, ks.Held(KeyThrottle))
}

func TestStats(t *testing.T) {
	p := &Player{}
	p.UpdateTopSpeed(120)
	p.UpdateTopSpeed(110)
	assert.Equal(t, 120.0, p.Stats.TopSpeedReached)

	assert.Equal(t, 1.0, p.Stats.SignalRatio())
	p.Stats.LaneChanges = 4
	p.Stats.UnsignalledChanges = 1
	assert.Equal(t, 0.75, p.Stats.SignalRatio())
}
