package config

import (
	"fmt"

	"github.com/skylane/uav-simulations/pkg/engine"
	"github.com/skylane/uav-simulations/pkg/models"
)

// ZoneConfig is one named zone with its fixed anchor coordinate.
type ZoneConfig struct {
	Name    string  `yaml:"name"`
	AnchorX float64 `yaml:"anchor_x"`
	AnchorY float64 `yaml:"anchor_y"`
}

// AirspaceConfig is the complete configuration for a simulation run:
// the static zone set, the engine tuning constants, the collision
// strategy, and optional persistence.
type AirspaceConfig struct {
	Zones    []ZoneConfig  `yaml:"zones"`
	Engine   engine.Config `yaml:"engine"`
	Strategy string        `yaml:"strategy"` // "steering" or "predictive"

	// DatabasePath enables the SQLite-backed store when set; empty
	// keeps everything in memory.
	DatabasePath string `yaml:"database_path,omitempty"`

	// Seed makes a run reproducible; 0 seeds from the clock.
	Seed int64 `yaml:"seed,omitempty"`
}

// GetDefaultConfig returns the reference airspace: three zones with
// fixed anchors, default engine constants, reactive steering.
func GetDefaultConfig() *AirspaceConfig {
	return &AirspaceConfig{
		Zones: []ZoneConfig{
			{Name: "Baghdad", AnchorX: 33.3, AnchorY: 44.4},
			{Name: "Basra", AnchorX: 30.5, AnchorY: 47.8},
			{Name: "Najaf", AnchorX: 32.0, AnchorY: 44.3},
		},
		Engine:   engine.DefaultConfig(),
		Strategy: engine.StrategySteering,
	}
}

// Validate checks the configuration for a runnable airspace.
func (c *AirspaceConfig) Validate() error {
	if len(c.Zones) == 0 {
		return fmt.Errorf("at least one zone is required")
	}
	seen := make(map[string]bool, len(c.Zones))
	for _, z := range c.Zones {
		if z.Name == "" {
			return fmt.Errorf("zone with empty name")
		}
		if seen[z.Name] {
			return fmt.Errorf("duplicate zone %q", z.Name)
		}
		seen[z.Name] = true
		if !c.Engine.BBox.Contains(z.AnchorX, z.AnchorY) {
			return fmt.Errorf("zone %q anchor (%g, %g) outside bounding box", z.Name, z.AnchorX, z.AnchorY)
		}
	}
	if c.Strategy != engine.StrategySteering && c.Strategy != engine.StrategyPredictive {
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

// ZoneList converts the configured zones into model records.
func (c *AirspaceConfig) ZoneList() []models.Zone {
	zones := make([]models.Zone, len(c.Zones))
	for i, z := range c.Zones {
		zones[i] = models.Zone{Name: z.Name, AnchorX: z.AnchorX, AnchorY: z.AnchorY}
	}
	return zones
}

// NewEngine builds the simulation engine this config describes.
func (c *AirspaceConfig) NewEngine() (*engine.Engine, error) {
	strategy, err := engine.NewStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	return engine.New(c.Engine, c.ZoneList(), strategy)
}
