package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/skylane/uav-simulations/pkg/models"
)

// MemoryStore is the in-process Store used by tests and by runs that
// do not configure a database path.
type MemoryStore struct {
	mu    sync.RWMutex
	zones map[string]struct{}
	uavs  map[int]models.UAV
}

// NewMemoryStore creates an empty store over a fixed zone set.
func NewMemoryStore(zones []models.Zone) *MemoryStore {
	names := make(map[string]struct{}, len(zones))
	for _, z := range zones {
		names[z.Name] = struct{}{}
	}
	return &MemoryStore{
		zones: names,
		uavs:  make(map[int]models.UAV),
	}
}

// UpsertUAV creates or fully overwrites one UAV record.
func (s *MemoryStore) UpsertUAV(_ context.Context, u models.UAV) error {
	if err := u.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[u.Zone]; !ok {
		return fmt.Errorf("upsert uav %d: zone %q: %w", u.ID, u.Zone, models.ErrUnknownZone)
	}
	s.uavs[u.ID] = u.Clone()
	return nil
}

// SaveZone upserts an updated entity set after a tick.
func (s *MemoryStore) SaveZone(ctx context.Context, uavs []models.UAV) error {
	for _, u := range uavs {
		if err := s.UpsertUAV(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

// ListUAVs returns a zone's UAVs ordered by ID.
func (s *MemoryStore) ListUAVs(_ context.Context, zone string, state models.State) ([]models.UAV, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.zones[zone]; !ok {
		return nil, fmt.Errorf("list zone %q: %w", zone, models.ErrUnknownZone)
	}
	var out []models.UAV
	for _, u := range s.uavs {
		if u.Zone != zone {
			continue
		}
		if state != "" && u.State != state {
			continue
		}
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CountUAVs returns the number of UAVs currently in a zone.
func (s *MemoryStore) CountUAVs(ctx context.Context, zone string) (int, error) {
	uavs, err := s.ListUAVs(ctx, zone, "")
	if err != nil {
		return 0, err
	}
	return len(uavs), nil
}

// RequestTransfer flips a UAV into transfer state with progress zero.
func (s *MemoryStore) RequestTransfer(_ context.Context, id int, fromZone, toZone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[fromZone]; !ok {
		return fmt.Errorf("transfer from %q: %w", fromZone, models.ErrUnknownZone)
	}
	if _, ok := s.zones[toZone]; !ok {
		return fmt.Errorf("transfer to %q: %w", toZone, models.ErrUnknownZone)
	}
	u, ok := s.uavs[id]
	if !ok || u.Zone != fromZone {
		return fmt.Errorf("transfer uav %d from %q: %w", id, fromZone, models.ErrUAVNotFound)
	}
	u.State = models.StateTransfer
	u.Transfer = &models.Transfer{TargetZone: toZone, Progress: 0}
	s.uavs[id] = u
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
