package models

import (
	"errors"
	"testing"
)

func TestUAVValidate(t *testing.T) {
	tests := []struct {
		name   string
		uav    UAV
		hasErr bool
	}{
		{
			name: "valid normal",
			uav:  UAV{ID: 1, Zone: "Baghdad", Speed: 10, State: StateNormal},
		},
		{
			name: "valid avoidance",
			uav:  UAV{ID: 2, Zone: "Basra", Speed: 5, State: StateAvoidance},
		},
		{
			name: "valid transfer",
			uav: UAV{ID: 3, Zone: "Baghdad", Speed: 5, State: StateTransfer,
				Transfer: &Transfer{TargetZone: "Basra", Progress: 40}},
		},
		{
			name:   "zero id",
			uav:    UAV{ID: 0, Zone: "Baghdad", State: StateNormal},
			hasErr: true,
		},
		{
			name:   "negative id",
			uav:    UAV{ID: -4, Zone: "Baghdad", State: StateNormal},
			hasErr: true,
		},
		{
			name:   "empty zone",
			uav:    UAV{ID: 1, Zone: "", State: StateNormal},
			hasErr: true,
		},
		{
			name:   "negative speed",
			uav:    UAV{ID: 1, Zone: "Baghdad", Speed: -1, State: StateNormal},
			hasErr: true,
		},
		{
			name:   "unknown state",
			uav:    UAV{ID: 1, Zone: "Baghdad", State: State("hovering")},
			hasErr: true,
		},
		{
			name: "normal with transfer record",
			uav: UAV{ID: 1, Zone: "Baghdad", State: StateNormal,
				Transfer: &Transfer{TargetZone: "Basra"}},
			hasErr: true,
		},
		{
			name:   "transfer without record",
			uav:    UAV{ID: 1, Zone: "Baghdad", State: StateTransfer},
			hasErr: true,
		},
		{
			name: "transfer with empty target",
			uav: UAV{ID: 1, Zone: "Baghdad", State: StateTransfer,
				Transfer: &Transfer{TargetZone: ""}},
			hasErr: true,
		},
		{
			name: "transfer with negative progress",
			uav: UAV{ID: 1, Zone: "Baghdad", State: StateTransfer,
				Transfer: &Transfer{TargetZone: "Basra", Progress: -10}},
			hasErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.uav.Validate()
			if tt.hasErr {
				if err == nil {
					t.Fatalf("expected validation error")
				}
				if !errors.Is(err, ErrMalformedUAV) {
					t.Errorf("error %v should wrap ErrMalformedUAV", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestUAVClone(t *testing.T) {
	original := UAV{
		ID: 7, Zone: "Baghdad", X: 1, Y: 2, Altitude: 100, Speed: 12,
		State:    StateTransfer,
		Transfer: &Transfer{TargetZone: "Basra", Progress: 30},
	}

	clone := original.Clone()
	clone.Transfer.Progress = 90
	clone.X = 50

	if original.Transfer.Progress != 30 {
		t.Errorf("clone shares the transfer record with the original")
	}
	if original.X != 1 {
		t.Errorf("clone mutation leaked into the original")
	}
}

func TestCloneAll(t *testing.T) {
	in := []UAV{
		{ID: 1, Zone: "Baghdad", State: StateNormal},
		{ID: 2, Zone: "Baghdad", State: StateTransfer,
			Transfer: &Transfer{TargetZone: "Basra", Progress: 10}},
	}

	out := CloneAll(in)
	if len(out) != len(in) {
		t.Fatalf("got %d records, want %d", len(out), len(in))
	}

	out[1].Transfer.TargetZone = "Najaf"
	if in[1].Transfer.TargetZone != "Basra" {
		t.Errorf("CloneAll did not deep-copy transfer records")
	}
}

func TestZoneMap(t *testing.T) {
	zones := []Zone{
		{Name: "Baghdad", AnchorX: 33.3, AnchorY: 44.4},
		{Name: "Basra", AnchorX: 30.5, AnchorY: 47.8},
	}

	m := ZoneMap(zones)
	if len(m) != 2 {
		t.Fatalf("got %d zones, want 2", len(m))
	}
	if m["Baghdad"].AnchorX != 33.3 {
		t.Errorf("Baghdad anchor X = %g, want 33.3", m["Baghdad"].AnchorX)
	}
	if _, ok := m["Najaf"]; ok {
		t.Errorf("unexpected zone in map")
	}
}
