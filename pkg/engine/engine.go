package engine

import (
	"fmt"

	"github.com/skylane/uav-simulations/pkg/geo"
	"github.com/skylane/uav-simulations/pkg/models"
)

// Config holds the tuning constants for one zone engine. The defaults
// reproduce the reference behavior; overrides come from the airspace
// config file.
type Config struct {
	// Collision detection
	CollisionThreshold float64 `yaml:"collision_threshold"` // planar units, 2D reporting
	NearFactor         float64 `yaml:"near_factor"`         // near-collision radius multiplier

	// Predictive strategy
	PredictThreshold float64 `yaml:"predict_threshold"` // planar units, on projected positions
	PredictDeltaT    float64 `yaml:"predict_delta_t"`   // projection horizon, seconds
	VelocityScale    float64 `yaml:"velocity_scale"`    // speed -> synthesized velocity
	AltitudeOffset   float64 `yaml:"altitude_offset"`   // applied +/- per predicted pair

	// Reactive steering strategy
	SpeedDamping   float64 `yaml:"speed_damping"`   // multiplicative, per qualifying pair
	AvoidanceNudge float64 `yaml:"avoidance_nudge"` // step along the diverted heading

	// Movement
	StepScale float64 `yaml:"step_scale"` // speed -> per-tick coordinate delta

	// Transfer interpolation (discrete parameterization: +increment out of max)
	ProgressIncrement int     `yaml:"progress_increment"`
	ProgressMax       int     `yaml:"progress_max"`
	ArrivalSpread     float64 `yaml:"arrival_spread"` // uniform +/- jitter on arrival

	BBox geo.BBox `yaml:"bounding_box"`
}

// DefaultConfig returns the reference tuning constants.
func DefaultConfig() Config {
	return Config{
		CollisionThreshold: 5.0,
		NearFactor:         2.0,
		PredictThreshold:   0.05,
		PredictDeltaT:      5.0,
		VelocityScale:      0.01,
		AltitudeOffset:     10.0,
		SpeedDamping:       0.85,
		AvoidanceNudge:     0.02,
		StepScale:          0.01,
		ProgressIncrement:  10,
		ProgressMax:        100,
		ArrivalSpread:      0.4,
		BBox:               geo.BBox{MinX: -100, MaxX: 100, MinY: -100, MaxY: 100},
	}
}

// Validate checks that the config describes a runnable engine.
func (c Config) Validate() error {
	if c.CollisionThreshold <= 0 {
		return fmt.Errorf("collision_threshold must be positive, got %g", c.CollisionThreshold)
	}
	if c.NearFactor < 1 {
		return fmt.Errorf("near_factor must be >= 1, got %g", c.NearFactor)
	}
	if c.PredictThreshold <= 0 {
		return fmt.Errorf("predict_threshold must be positive, got %g", c.PredictThreshold)
	}
	if c.PredictDeltaT <= 0 {
		return fmt.Errorf("predict_delta_t must be positive, got %g", c.PredictDeltaT)
	}
	if c.SpeedDamping <= 0 || c.SpeedDamping > 1 {
		return fmt.Errorf("speed_damping must be in (0, 1], got %g", c.SpeedDamping)
	}
	if c.StepScale <= 0 {
		return fmt.Errorf("step_scale must be positive, got %g", c.StepScale)
	}
	if c.ProgressIncrement <= 0 || c.ProgressMax <= 0 {
		return fmt.Errorf("progress increment/max must be positive, got %d/%d", c.ProgressIncrement, c.ProgressMax)
	}
	if c.ProgressIncrement > c.ProgressMax {
		return fmt.Errorf("progress_increment %d exceeds progress_max %d", c.ProgressIncrement, c.ProgressMax)
	}
	if c.BBox.MinX >= c.BBox.MaxX || c.BBox.MinY >= c.BBox.MaxY {
		return fmt.Errorf("bounding box is empty: %+v", c.BBox)
	}
	return nil
}

// Engine runs per-tick simulation steps for the configured zone set.
// One ProcessZone call is a pure, bounded computation: the engine keeps
// no state between ticks and never aliases the caller's slices.
type Engine struct {
	cfg      Config
	zones    map[string]models.Zone
	strategy CollisionStrategy
}

// New creates an engine for a fixed zone set and collision strategy.
func New(cfg Config, zones []models.Zone, strategy CollisionStrategy) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("engine requires at least one zone")
	}
	if strategy == nil {
		return nil, fmt.Errorf("engine requires a collision strategy")
	}
	return &Engine{
		cfg:      cfg,
		zones:    models.ZoneMap(zones),
		strategy: strategy,
	}, nil
}

// Zones returns the configured zone names.
func (e *Engine) Zones() []string {
	names := make([]string, 0, len(e.zones))
	for name := range e.zones {
		names = append(names, name)
	}
	return names
}

// HasZone reports whether a zone belongs to the configured set.
func (e *Engine) HasZone(name string) bool {
	_, ok := e.zones[name]
	return ok
}
