package engine

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/skylane/uav-simulations/pkg/models"
)

func TestAdvanceTransferInterpolates(t *testing.T) {
	e := testEngine(t, DefaultConfig(), StrategySteering)
	rng := rand.New(rand.NewSource(1))

	u := &models.UAV{
		ID: 1, Zone: "Baghdad", X: 33.3, Y: 44.4, Speed: 10,
		State:    models.StateTransfer,
		Transfer: &models.Transfer{TargetZone: "Basra", Progress: 40},
	}

	arrived, err := e.advanceTransfer(u, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if arrived {
		t.Fatalf("arrived at progress 50, want in flight")
	}

	if u.Transfer == nil || u.Transfer.Progress != 50 {
		t.Fatalf("progress = %+v, want 50", u.Transfer)
	}

	// Halfway between the Baghdad and Basra anchors.
	wantX := 33.3 + (30.5-33.3)*0.5
	wantY := 44.4 + (47.8-44.4)*0.5
	if math.Abs(u.X-wantX) > 1e-12 || math.Abs(u.Y-wantY) > 1e-12 {
		t.Errorf("position = (%g, %g), want (%g, %g)", u.X, u.Y, wantX, wantY)
	}
	if u.Zone != "Baghdad" || u.State != models.StateTransfer {
		t.Errorf("zone/state = %q/%q, want Baghdad/transfer while in flight", u.Zone, u.State)
	}
}

func TestAdvanceTransferArrival(t *testing.T) {
	e := testEngine(t, DefaultConfig(), StrategySteering)
	rng := rand.New(rand.NewSource(1))

	u := &models.UAV{
		ID: 1, Zone: "Baghdad", Speed: 10,
		State:    models.StateTransfer,
		Transfer: &models.Transfer{TargetZone: "Basra", Progress: 93},
	}

	arrived, err := e.advanceTransfer(u, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !arrived {
		t.Fatalf("progress 93 + 10 should arrive")
	}

	if u.Zone != "Basra" {
		t.Errorf("zone = %q, want Basra", u.Zone)
	}
	if u.State != models.StateNormal {
		t.Errorf("state = %q, want normal", u.State)
	}
	if u.Transfer != nil {
		t.Errorf("transfer record not cleared: %+v", u.Transfer)
	}

	spread := DefaultConfig().ArrivalSpread
	if math.Abs(u.X-30.5) > spread || math.Abs(u.Y-47.8) > spread {
		t.Errorf("arrival position (%g, %g) outside anchor +/- %g", u.X, u.Y, spread)
	}
}

func TestAdvanceTransferArrivalSpreadVaries(t *testing.T) {
	e := testEngine(t, DefaultConfig(), StrategySteering)
	rng := rand.New(rand.NewSource(5))

	positions := make(map[[2]float64]bool)
	for i := 0; i < 20; i++ {
		u := &models.UAV{
			ID: i + 1, Zone: "Baghdad", Speed: 10,
			State:    models.StateTransfer,
			Transfer: &models.Transfer{TargetZone: "Najaf", Progress: 90},
		}
		if _, err := e.advanceTransfer(u, rng); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		positions[[2]float64{u.X, u.Y}] = true
	}

	if len(positions) < 2 {
		t.Errorf("all arrivals landed on one point, spread is not applied")
	}
}

func TestAdvanceTransferUnknownZones(t *testing.T) {
	e := testEngine(t, DefaultConfig(), StrategySteering)
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name string
		uav  models.UAV
	}{
		{
			name: "unknown target",
			uav: models.UAV{ID: 1, Zone: "Baghdad", State: models.StateTransfer,
				Transfer: &models.Transfer{TargetZone: "Atlantis", Progress: 10}},
		},
		{
			name: "unknown source",
			uav: models.UAV{ID: 1, Zone: "Atlantis", State: models.StateTransfer,
				Transfer: &models.Transfer{TargetZone: "Basra", Progress: 10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.uav
			if _, err := e.advanceTransfer(&u, rng); !errors.Is(err, models.ErrUnknownZone) {
				t.Errorf("error = %v, want ErrUnknownZone", err)
			}
		})
	}
}
