package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads an airspace configuration from a YAML file.
func LoadConfig(path string) (*AirspaceConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := GetDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// LoadConfigOrDefault loads config from a file or falls back to the
// default airspace, then applies environment variable overrides.
func LoadConfigOrDefault(path string) (*AirspaceConfig, error) {
	var config *AirspaceConfig

	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	} else {
		config = GetDefaultConfig()
	}

	MergeWithEnvironment(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration invalid after overrides: %w", err)
	}
	return config, nil
}

// SaveConfig writes a configuration to a YAML file.
func SaveConfig(config *AirspaceConfig, path string) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// MergeWithEnvironment applies environment variable overrides.
func MergeWithEnvironment(config *AirspaceConfig) {
	if dbPath := os.Getenv("UAVSIM_DATABASE_PATH"); dbPath != "" {
		config.DatabasePath = dbPath
	}

	if strategy := os.Getenv("UAVSIM_STRATEGY"); strategy != "" {
		valid := []string{"steering", "predictive"}
		for _, v := range valid {
			if strings.ToLower(strategy) == v {
				config.Strategy = v
				break
			}
		}
	}

	if seed := os.Getenv("UAVSIM_SEED"); seed != "" {
		if v, err := strconv.ParseInt(seed, 10, 64); err == nil {
			config.Seed = v
		}
	}

	if threshold := os.Getenv("UAVSIM_COLLISION_THRESHOLD"); threshold != "" {
		if v, err := strconv.ParseFloat(threshold, 64); err == nil && v > 0 {
			config.Engine.CollisionThreshold = v
		}
	}

	if factor := os.Getenv("UAVSIM_NEAR_FACTOR"); factor != "" {
		if v, err := strconv.ParseFloat(factor, 64); err == nil && v >= 1 {
			config.Engine.NearFactor = v
		}
	}
}
