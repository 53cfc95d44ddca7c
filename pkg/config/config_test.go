package config

import (
	"path/filepath"
	"testing"

	"github.com/skylane/uav-simulations/pkg/engine"
)

func TestDefaultConfig(t *testing.T) {
	config := GetDefaultConfig()

	if err := config.Validate(); err != nil {
		t.Fatalf("default config validation failed: %v", err)
	}

	if len(config.Zones) != 3 {
		t.Errorf("expected 3 default zones, got %d", len(config.Zones))
	}
	if config.Zones[0].Name != "Baghdad" || config.Zones[0].AnchorX != 33.3 {
		t.Errorf("unexpected first zone: %+v", config.Zones[0])
	}
	if config.Strategy != engine.StrategySteering {
		t.Errorf("default strategy = %q, want steering", config.Strategy)
	}
	if config.Engine.CollisionThreshold != 5.0 {
		t.Errorf("default collision threshold = %g, want 5", config.Engine.CollisionThreshold)
	}
	if config.DatabasePath != "" {
		t.Errorf("default database path should be empty, got %q", config.DatabasePath)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AirspaceConfig)
		hasErr bool
	}{
		{
			name:   "valid default",
			mutate: func(c *AirspaceConfig) {},
		},
		{
			name:   "no zones",
			mutate: func(c *AirspaceConfig) { c.Zones = nil },
			hasErr: true,
		},
		{
			name:   "empty zone name",
			mutate: func(c *AirspaceConfig) { c.Zones[0].Name = "" },
			hasErr: true,
		},
		{
			name:   "duplicate zone",
			mutate: func(c *AirspaceConfig) { c.Zones[1].Name = c.Zones[0].Name },
			hasErr: true,
		},
		{
			name:   "anchor outside bounding box",
			mutate: func(c *AirspaceConfig) { c.Zones[0].AnchorX = 500 },
			hasErr: true,
		},
		{
			name:   "unknown strategy",
			mutate: func(c *AirspaceConfig) { c.Strategy = "teleport" },
			hasErr: true,
		},
		{
			name:   "bad engine tuning",
			mutate: func(c *AirspaceConfig) { c.Engine.CollisionThreshold = -1 },
			hasErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := GetDefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.hasErr && err == nil {
				t.Errorf("expected validation error")
			}
			if !tt.hasErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airspace.yaml")

	original := GetDefaultConfig()
	original.Strategy = engine.StrategyPredictive
	original.Seed = 42
	original.Engine.NearFactor = 3

	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Strategy != engine.StrategyPredictive {
		t.Errorf("strategy = %q, want predictive", loaded.Strategy)
	}
	if loaded.Seed != 42 {
		t.Errorf("seed = %d, want 42", loaded.Seed)
	}
	if loaded.Engine.NearFactor != 3 {
		t.Errorf("near factor = %g, want 3", loaded.Engine.NearFactor)
	}
	if len(loaded.Zones) != 3 {
		t.Errorf("got %d zones, want 3", len(loaded.Zones))
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadConfigOrDefaultFallsBack(t *testing.T) {
	config, err := LoadConfigOrDefault("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(config.Zones) != 3 {
		t.Errorf("fallback config has %d zones, want 3", len(config.Zones))
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("UAVSIM_DATABASE_PATH", "/tmp/uavs.db")
	t.Setenv("UAVSIM_STRATEGY", "PREDICTIVE")
	t.Setenv("UAVSIM_SEED", "1234")
	t.Setenv("UAVSIM_COLLISION_THRESHOLD", "7.5")
	t.Setenv("UAVSIM_NEAR_FACTOR", "2.5")

	config := GetDefaultConfig()
	MergeWithEnvironment(config)

	if config.DatabasePath != "/tmp/uavs.db" {
		t.Errorf("database path = %q", config.DatabasePath)
	}
	if config.Strategy != engine.StrategyPredictive {
		t.Errorf("strategy = %q, want predictive", config.Strategy)
	}
	if config.Seed != 1234 {
		t.Errorf("seed = %d, want 1234", config.Seed)
	}
	if config.Engine.CollisionThreshold != 7.5 {
		t.Errorf("collision threshold = %g, want 7.5", config.Engine.CollisionThreshold)
	}
	if config.Engine.NearFactor != 2.5 {
		t.Errorf("near factor = %g, want 2.5", config.Engine.NearFactor)
	}
}

func TestEnvironmentOverridesIgnoreInvalid(t *testing.T) {
	t.Setenv("UAVSIM_STRATEGY", "teleport")
	t.Setenv("UAVSIM_COLLISION_THRESHOLD", "-4")

	config := GetDefaultConfig()
	MergeWithEnvironment(config)

	if config.Strategy != engine.StrategySteering {
		t.Errorf("invalid strategy override applied: %q", config.Strategy)
	}
	if config.Engine.CollisionThreshold != 5.0 {
		t.Errorf("invalid threshold override applied: %g", config.Engine.CollisionThreshold)
	}
}

func TestNewEngine(t *testing.T) {
	config := GetDefaultConfig()
	eng, err := config.NewEngine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eng.HasZone("Baghdad") || !eng.HasZone("Najaf") {
		t.Errorf("engine is missing configured zones")
	}
	if eng.HasZone("Atlantis") {
		t.Errorf("engine reports an unconfigured zone")
	}
}
