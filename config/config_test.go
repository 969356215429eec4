package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Road.NumLanes)
	assert.Equal(t, 4.0, cfg.Road.LaneWidth)
	assert.Equal(t, 1, cfg.Player.StartLane)
	assert.Equal(t, 100.0, cfg.Player.StartSpeed)
	assert.Equal(t, 5.0, cfg.Crash.PlayerDistance)
	assert.Equal(t, 1000, cfg.Scoring.InitialScore)
	assert.Equal(t, 10, cfg.Scoring.LaneChangePenalty)
	assert.Equal(t, Range{Min: 120, Max: 150}, cfg.Spawn.FastSpeed)
	assert.Equal(t, 12, cfg.Population.MaxTraffic)
	assert.Equal(t, "", cfg.Telemetry.Path)
}

func TestLoadOverlaysUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highway.yaml")
	data := []byte("scoring:\n  initial_score: 250\ntraffic:\n  initial_count: 3\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Scoring.InitialScore)
	assert.Equal(t, 3, cfg.Traffic.InitialCount)
	// untouched keys keep their defaults
	assert.Equal(t, 15.0, cfg.Scoring.TailgateDistance)
	assert.Equal(t, 0.25, cfg.Scoring.IncreaseStep)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateCollectsEveryError(t *testing.T) {
	cfg := Default()
	cfg.Road.NumLanes = 1
	cfg.Scoring.Interval = 0
	cfg.Spawn.SlowSpeed = Range{Min: 120, Max: 100}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "road.num_lanes")
	assert.Contains(t, err.Error(), "scoring.interval")
	assert.Contains(t, err.Error(), "spawn.slow_speed")
}

func TestValidateOrdersSpeedBandErrors(t *testing.T) {
	cfg := Default()
	cfg.Spawn.SlowSpeed = Range{Min: 120, Max: 100}
	cfg.Spawn.FastSpeed = Range{Min: 150, Max: 120}
	cfg.Spawn.MediumSpeed = Range{Min: 125, Max: 110}

	first := cfg.Validate()
	require.Error(t, first)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Error(), cfg.Validate().Error())
	}

	msg := first.Error()
	slow := strings.Index(msg, "spawn.slow_speed")
	fast := strings.Index(msg, "spawn.fast_speed")
	medium := strings.Index(msg, "spawn.medium_speed")
	assert.True(t, slow >= 0 && slow < fast && fast < medium, msg)
}

func TestMergeRejectsBadYAML(t *testing.T) {
	cfg := Default()
	err := Merge(cfg, []byte("road: [unclosed"))
	require.Error(t, err)
}
