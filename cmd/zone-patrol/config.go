package zonepatrol

import (
	"fmt"
	"time"

	"github.com/skylane/uav-simulations/pkg/engine"
)

// Config holds the configuration for the zone patrol simulation
type Config struct {
	NumUAVs             int           // per zone
	TickInterval        time.Duration
	Duration            time.Duration
	Strategy            string // overrides the airspace config when set
	TransferProbability float64
	Seed                int
	AirspaceConfig      string // path to airspace YAML, empty for defaults
}

// ValidateAndParse validates and parses the raw parameters into a Config
func ValidateAndParse(params map[string]interface{}) (*Config, error) {
	config := &Config{}

	// Parse num_uavs
	if v, ok := params["num_uavs"]; ok {
		switch val := v.(type) {
		case int:
			config.NumUAVs = val
		case float64:
			config.NumUAVs = int(val)
		default:
			return nil, fmt.Errorf("num_uavs must be an integer")
		}
	}
	if config.NumUAVs < 1 || config.NumUAVs > 500 {
		return nil, fmt.Errorf("num_uavs must be between 1 and 500")
	}

	// Parse tick_interval
	if v, ok := params["tick_interval"]; ok {
		switch val := v.(type) {
		case time.Duration:
			config.TickInterval = val
		case float64:
			config.TickInterval = time.Duration(val * float64(time.Second))
		case int:
			config.TickInterval = time.Duration(val) * time.Second
		case string:
			d, err := time.ParseDuration(val)
			if err != nil {
				return nil, fmt.Errorf("invalid tick_interval: %w", err)
			}
			config.TickInterval = d
		default:
			return nil, fmt.Errorf("tick_interval must be a duration")
		}
	}
	if config.TickInterval < 100*time.Millisecond || config.TickInterval > 60*time.Second {
		return nil, fmt.Errorf("tick_interval must be between 100ms and 60s")
	}

	// Parse duration
	if v, ok := params["duration"]; ok {
		durationStr := fmt.Sprintf("%v", v)
		duration, err := time.ParseDuration(durationStr)
		if err != nil {
			return nil, fmt.Errorf("invalid duration format: %w", err)
		}
		config.Duration = duration
	}
	if config.Duration <= 0 {
		return nil, fmt.Errorf("duration is required and must be positive")
	}

	// Parse strategy
	if v, ok := params["strategy"]; ok {
		config.Strategy = fmt.Sprintf("%v", v)
	}
	if config.Strategy != "" &&
		config.Strategy != engine.StrategySteering &&
		config.Strategy != engine.StrategyPredictive {
		return nil, fmt.Errorf("strategy must be one of: %s, %s", engine.StrategySteering, engine.StrategyPredictive)
	}

	// Parse transfer_probability
	if v, ok := params["transfer_probability"]; ok {
		switch val := v.(type) {
		case float64:
			config.TransferProbability = val
		case int:
			config.TransferProbability = float64(val)
		default:
			return nil, fmt.Errorf("transfer_probability must be a number")
		}
	}
	if config.TransferProbability < 0 || config.TransferProbability > 1 {
		return nil, fmt.Errorf("transfer_probability must be between 0 and 1")
	}

	// Parse seed
	if v, ok := params["seed"]; ok {
		switch val := v.(type) {
		case int:
			config.Seed = val
		case float64:
			config.Seed = int(val)
		default:
			return nil, fmt.Errorf("seed must be an integer")
		}
	}

	// Parse airspace_config
	if v, ok := params["airspace_config"]; ok {
		config.AirspaceConfig = fmt.Sprintf("%v", v)
	}

	return config, nil
}
