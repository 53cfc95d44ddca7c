package zonepatrol

import (
	"testing"
	"time"
)

func validParams() map[string]interface{} {
	return map[string]interface{}{
		"num_uavs":             10,
		"tick_interval":        "1s",
		"duration":             "2m",
		"strategy":             "steering",
		"transfer_probability": 0.05,
		"seed":                 42,
	}
}

func TestValidateAndParse(t *testing.T) {
	config, err := ValidateAndParse(validParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.NumUAVs != 10 {
		t.Errorf("NumUAVs = %d, want 10", config.NumUAVs)
	}
	if config.TickInterval != time.Second {
		t.Errorf("TickInterval = %v, want 1s", config.TickInterval)
	}
	if config.Duration != 2*time.Minute {
		t.Errorf("Duration = %v, want 2m", config.Duration)
	}
	if config.Strategy != "steering" {
		t.Errorf("Strategy = %q, want steering", config.Strategy)
	}
	if config.TransferProbability != 0.05 {
		t.Errorf("TransferProbability = %g, want 0.05", config.TransferProbability)
	}
	if config.Seed != 42 {
		t.Errorf("Seed = %d, want 42", config.Seed)
	}
}

func TestValidateAndParseNumericConversions(t *testing.T) {
	params := validParams()
	params["num_uavs"] = float64(25) // survey delivers numbers as float64
	params["seed"] = float64(7)
	params["transfer_probability"] = 1 // int is accepted

	config, err := ValidateAndParse(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.NumUAVs != 25 || config.Seed != 7 || config.TransferProbability != 1 {
		t.Errorf("conversions failed: %+v", config)
	}
}

func TestValidateAndParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"zero uavs", func(p map[string]interface{}) { p["num_uavs"] = 0 }},
		{"too many uavs", func(p map[string]interface{}) { p["num_uavs"] = 1000 }},
		{"tick interval too short", func(p map[string]interface{}) { p["tick_interval"] = "10ms" }},
		{"tick interval garbage", func(p map[string]interface{}) { p["tick_interval"] = "soon" }},
		{"missing duration", func(p map[string]interface{}) { delete(p, "duration") }},
		{"bad duration", func(p map[string]interface{}) { p["duration"] = "whenever" }},
		{"unknown strategy", func(p map[string]interface{}) { p["strategy"] = "teleport" }},
		{"probability above one", func(p map[string]interface{}) { p["transfer_probability"] = 1.5 }},
		{"negative probability", func(p map[string]interface{}) { p["transfer_probability"] = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(params)
			if _, err := ValidateAndParse(params); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestValidateAndParseEmptyStrategyAllowed(t *testing.T) {
	params := validParams()
	params["strategy"] = ""

	config, err := ValidateAndParse(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Strategy != "" {
		t.Errorf("Strategy = %q, want empty (defer to airspace config)", config.Strategy)
	}
}
