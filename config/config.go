// Package config provides configuration loading for the highway simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the simulation core and the front-ends.
type Config struct {
	Road       RoadConfig       `yaml:"road"`
	Player     PlayerConfig     `yaml:"player"`
	Traffic    TrafficConfig    `yaml:"traffic"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Population PopulationConfig `yaml:"population"`
	Crash      CrashConfig      `yaml:"crash"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Feedback   FeedbackConfig   `yaml:"feedback"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// RoadConfig holds lane geometry.
type RoadConfig struct {
	NumLanes  int     `yaml:"num_lanes"`
	LaneWidth float64 `yaml:"lane_width"`
}

// PlayerConfig holds player kinematics.
type PlayerConfig struct {
	StartLane         int     `yaml:"start_lane"`
	StartSpeed        float64 `yaml:"start_speed"`
	MinSpeed          float64 `yaml:"min_speed"`
	MaxSpeed          float64 `yaml:"max_speed"`
	ThrottleRate      float64 `yaml:"throttle_rate"` // km/h per second held
	LateralRate       float64 `yaml:"lateral_rate"`  // units per second
	LaneEpsilon       float64 `yaml:"lane_epsilon"`
	SignalCancelDelay float64 `yaml:"signal_cancel_delay"`
}

// TrafficConfig holds per-entity behaviour parameters.
type TrafficConfig struct {
	InitialCount           int     `yaml:"initial_count"`
	LateralRate            float64 `yaml:"lateral_rate"`
	LaneEpsilon            float64 `yaml:"lane_epsilon"`
	SpeedEaseRate          float64 `yaml:"speed_ease_rate"`
	AvoidWindow            float64 `yaml:"avoid_window"` // interaction range behind the player
	AvoidHard              float64 `yaml:"avoid_hard"`   // below this: player speed - follow_gap
	AvoidSoft              float64 `yaml:"avoid_soft"`   // below this: player speed
	FollowGap              float64 `yaml:"follow_gap"`
	PassDistance           float64 `yaml:"pass_distance"`
	LaneClearDistance      float64 `yaml:"lane_clear_distance"`
	AggressionMargin       float64 `yaml:"aggression_margin"`
	AggressionDelay        float64 `yaml:"aggression_delay"`
	MediumLaneChangeChance float64 `yaml:"medium_lane_change_chance"`
}

// Range is a half-open [Min, Max) interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// SpawnConfig holds spawn policy parameters.
type SpawnConfig struct {
	SafeDistance  float64 `yaml:"safe_distance"`
	MaxAttempts   int     `yaml:"max_attempts"`
	InitialWindow float64 `yaml:"initial_window"`
	SlowBucket    float64 `yaml:"slow_bucket"`
	FastBucket    float64 `yaml:"fast_bucket"`
	SlowSpeed     Range   `yaml:"slow_speed"`
	FastSpeed     Range   `yaml:"fast_speed"`
	MediumSpeed   Range   `yaml:"medium_speed"`
}

// PopulationConfig holds traffic density and distribution parameters.
type PopulationConfig struct {
	MaxTraffic             int     `yaml:"max_traffic"`
	SpawnChance            float64 `yaml:"spawn_chance"`
	AheadBias              float64 `yaml:"ahead_bias"`
	DensityAheadOffset     float64 `yaml:"density_ahead_offset"`
	DensityBehindOffset    float64 `yaml:"density_behind_offset"`
	RepositionBehind       float64 `yaml:"reposition_behind"`
	RepositionAhead        float64 `yaml:"reposition_ahead"`
	RepositionAheadOffset  float64 `yaml:"reposition_ahead_offset"`
	RepositionBehindOffset float64 `yaml:"reposition_behind_offset"`
	RepositionSpread       float64 `yaml:"reposition_spread"`
	TopUpAheadOffset       float64 `yaml:"topup_ahead_offset"`
	TopUpAheadSpread       float64 `yaml:"topup_ahead_spread"`
	TopUpBehindOffset      float64 `yaml:"topup_behind_offset"`
	TopUpBehindSpread      float64 `yaml:"topup_behind_spread"`
	SlowPlayerMargin       float64 `yaml:"slow_player_margin"`
	MinSpeedFloor          float64 `yaml:"min_speed_floor"`
	MaxSpeedCeiling        float64 `yaml:"max_speed_ceiling"`
	SpeedGap               float64 `yaml:"speed_gap"`
	SpeedSpread            float64 `yaml:"speed_spread"`
	SlowBelow              float64 `yaml:"slow_below"`
	MediumBelow            float64 `yaml:"medium_below"`
}

// CrashConfig holds collision thresholds and crash animation timing.
type CrashConfig struct {
	PlayerDistance  float64 `yaml:"player_distance"`
	TrafficDistance float64 `yaml:"traffic_distance"`
	Duration        float64 `yaml:"duration"`
	ShakeDuration   float64 `yaml:"shake_duration"`
	FlingRate       float64 `yaml:"fling_rate"`
	SpeedDecay      float64 `yaml:"speed_decay"`
}

// ScoringConfig holds scoring rules.
type ScoringConfig struct {
	InitialScore      int     `yaml:"initial_score"`
	Interval          float64 `yaml:"interval"`
	DrivingMinSpeed   float64 `yaml:"driving_min_speed"`
	TailgateDistance  float64 `yaml:"tailgate_distance"`
	BlockingDistance  float64 `yaml:"blocking_distance"`
	LaneChangePenalty int     `yaml:"lane_change_penalty"`
	IncreaseStep      float64 `yaml:"increase_step"` // seconds per +1
	DecreaseStep      float64 `yaml:"decrease_step"` // seconds per -1
}

// FeedbackConfig holds feedback message timing.
type FeedbackConfig struct {
	Debounce     float64 `yaml:"debounce"`
	ShowDuration float64 `yaml:"show_duration"`
	FadeDuration float64 `yaml:"fade_duration"`
}

// SimulationConfig holds frame handling parameters.
type SimulationConfig struct {
	MaxDelta float64 `yaml:"max_delta"`
	Seed     int64   `yaml:"seed"` // 0 = seed from the clock
}

// TelemetryConfig holds evaluation log output parameters.
type TelemetryConfig struct {
	Path       string `yaml:"path"` // empty disables telemetry
	FlushEvery int    `yaml:"flush_every"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Merge(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays YAML data onto cfg. Only keys present in data are changed.
func Merge(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate reports every out-of-range field.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Road.NumLanes >= 2, "road.num_lanes must be at least 2, got %d", c.Road.NumLanes)
	check(c.Road.LaneWidth > 0, "road.lane_width must be positive, got %v", c.Road.LaneWidth)

	check(c.Player.StartLane >= 0 && c.Player.StartLane < c.Road.NumLanes,
		"player.start_lane %d is not a lane", c.Player.StartLane)
	check(c.Player.MinSpeed > 0 && c.Player.MinSpeed <= c.Player.MaxSpeed,
		"player.min_speed %v must be in (0, max_speed %v]", c.Player.MinSpeed, c.Player.MaxSpeed)
	check(c.Player.StartSpeed >= c.Player.MinSpeed && c.Player.StartSpeed <= c.Player.MaxSpeed,
		"player.start_speed %v outside [%v, %v]", c.Player.StartSpeed, c.Player.MinSpeed, c.Player.MaxSpeed)
	check(c.Player.LateralRate > 0, "player.lateral_rate must be positive")
	check(c.Player.LaneEpsilon > 0, "player.lane_epsilon must be positive")

	check(c.Traffic.InitialCount >= 0, "traffic.initial_count must not be negative")
	check(c.Traffic.LateralRate > 0, "traffic.lateral_rate must be positive")
	check(c.Traffic.LaneEpsilon > 0, "traffic.lane_epsilon must be positive")
	check(c.Traffic.AvoidHard <= c.Traffic.AvoidSoft && c.Traffic.AvoidSoft <= c.Traffic.AvoidWindow,
		"traffic avoid distances must satisfy hard <= soft <= window")

	check(c.Spawn.MaxAttempts > 0, "spawn.max_attempts must be positive")
	check(c.Spawn.SlowBucket <= c.Spawn.FastBucket, "spawn.slow_bucket must not exceed spawn.fast_bucket")
	for _, band := range []struct {
		name string
		r    Range
	}{
		{"slow_speed", c.Spawn.SlowSpeed},
		{"fast_speed", c.Spawn.FastSpeed},
		{"medium_speed", c.Spawn.MediumSpeed},
	} {
		check(band.r.Min < band.r.Max, "spawn.%s min %v must be below max %v", band.name, band.r.Min, band.r.Max)
	}

	check(c.Population.MaxTraffic >= 0, "population.max_traffic must not be negative")
	check(c.Population.AheadBias >= 0 && c.Population.AheadBias <= 1, "population.ahead_bias must be in [0, 1]")

	check(c.Crash.ShakeDuration < c.Crash.Duration, "crash.shake_duration must be below crash.duration")
	check(c.Crash.SpeedDecay > 0 && c.Crash.SpeedDecay <= 1, "crash.speed_decay must be in (0, 1]")

	check(c.Scoring.Interval > 0, "scoring.interval must be positive")
	check(c.Scoring.IncreaseStep > 0, "scoring.increase_step must be positive")
	check(c.Scoring.DecreaseStep > 0, "scoring.decrease_step must be positive")
	check(c.Scoring.InitialScore >= 0, "scoring.initial_score must not be negative")

	check(c.Simulation.MaxDelta > 0, "simulation.max_delta must be positive")

	return errors.Join(errs...)
}
