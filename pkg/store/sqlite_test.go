package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/skylane/uav-simulations/pkg/models"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uavs.db")
	s, err := OpenSQLite(path, storeZones())
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	in := []models.UAV{
		{ID: 2, Zone: "Baghdad", X: 1.5, Y: -2.5, Altitude: 120, Speed: 12.5, Heading: 0.7, State: models.StateNormal},
		{ID: 1, Zone: "Baghdad", X: 3, Y: 4, Altitude: 90, Speed: 8, Heading: -1.1, State: models.StateTransfer,
			Transfer: &models.Transfer{TargetZone: "Basra", Progress: 40}},
	}
	if err := s.SaveZone(ctx, in); err != nil {
		t.Fatalf("save zone: %v", err)
	}

	got, err := s.ListUAVs(ctx, "Baghdad", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("list = %+v, want IDs [1 2] in order", got)
	}

	// Transfer record survives the round trip.
	if got[0].Transfer == nil || got[0].Transfer.TargetZone != "Basra" || got[0].Transfer.Progress != 40 {
		t.Errorf("transfer record = %+v, want Basra at progress 40", got[0].Transfer)
	}
	if got[1].Transfer != nil {
		t.Errorf("normal UAV grew a transfer record: %+v", got[1].Transfer)
	}
	if got[1].X != 1.5 || got[1].Heading != 0.7 {
		t.Errorf("fields lost in round trip: %+v", got[1])
	}
}

func TestSQLiteStoreUpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	if err := s.UpsertUAV(ctx, models.UAV{ID: 1, Zone: "Baghdad", X: 1, Speed: 10, State: models.StateNormal}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpsertUAV(ctx, models.UAV{ID: 1, Zone: "Basra", X: 7, Speed: 4, State: models.StateAvoidance}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if n, _ := s.CountUAVs(ctx, "Baghdad"); n != 0 {
		t.Errorf("Baghdad count = %d, want 0 after overwrite", n)
	}
	got, err := s.ListUAVs(ctx, "Basra", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].X != 7 || got[0].State != models.StateAvoidance {
		t.Errorf("overwritten record = %+v", got)
	}
}

func TestSQLiteStoreStateFilter(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	if err := s.SaveZone(ctx, []models.UAV{
		{ID: 1, Zone: "Baghdad", Speed: 10, State: models.StateNormal},
		{ID: 2, Zone: "Baghdad", Speed: 10, State: models.StateAvoidance},
		{ID: 3, Zone: "Baghdad", Speed: 10, State: models.StateNormal},
	}); err != nil {
		t.Fatalf("save zone: %v", err)
	}

	got, err := s.ListUAVs(ctx, "Baghdad", models.StateNormal)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d normal UAVs, want 2", len(got))
	}
}

func TestSQLiteStoreRequestTransfer(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	if err := s.UpsertUAV(ctx, models.UAV{ID: 1, Zone: "Baghdad", Speed: 10, State: models.StateNormal}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := s.RequestTransfer(ctx, 1, "Baghdad", "Basra"); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	got, err := s.ListUAVs(ctx, "Baghdad", models.StateTransfer)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Transfer == nil || got[0].Transfer.TargetZone != "Basra" {
		t.Fatalf("transfer record = %+v", got)
	}

	if err := s.RequestTransfer(ctx, 42, "Baghdad", "Basra"); !errors.Is(err, models.ErrUAVNotFound) {
		t.Errorf("absent UAV error = %v, want ErrUAVNotFound", err)
	}
	if err := s.RequestTransfer(ctx, 1, "Basra", "Baghdad"); !errors.Is(err, models.ErrUAVNotFound) {
		t.Errorf("wrong zone error = %v, want ErrUAVNotFound", err)
	}
	if err := s.RequestTransfer(ctx, 1, "Baghdad", "Atlantis"); !errors.Is(err, models.ErrUnknownZone) {
		t.Errorf("unknown target error = %v, want ErrUnknownZone", err)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "uavs.db")

	s, err := OpenSQLite(path, storeZones())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.UpsertUAV(ctx, models.UAV{ID: 9, Zone: "Basra", X: 2, Speed: 6, State: models.StateNormal}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = OpenSQLite(path, storeZones())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()

	got, err := s.ListUAVs(ctx, "Basra", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != 9 || got[0].X != 2 {
		t.Errorf("record did not survive reopen: %+v", got)
	}
}

func TestOpenSQLiteEmptyPath(t *testing.T) {
	if _, err := OpenSQLite("", storeZones()); err == nil {
		t.Errorf("expected error for empty path")
	}
}
