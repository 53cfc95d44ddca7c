// Package store holds the entity source/sink collaborators that feed
// the simulation engine and persist its output. The engine itself
// never touches a store; the simulation runner is the caller that
// loads a zone, ticks it, and saves the result.
package store

import (
	"context"

	"github.com/skylane/uav-simulations/pkg/models"
)

// Store supplies entity snapshots before each tick and accepts the
// updated set afterwards. Writes are upserts keyed by UAV ID: an
// existing record is overwritten in full, never merged.
type Store interface {
	// UpsertUAV creates or fully overwrites one UAV record.
	UpsertUAV(ctx context.Context, u models.UAV) error

	// SaveZone upserts an updated entity set after a tick. Arrivals
	// carry their new zone in the record, which moves them for the
	// next tick.
	SaveZone(ctx context.Context, uavs []models.UAV) error

	// ListUAVs returns a zone's UAVs ordered by ID. An empty state
	// filter returns all states.
	ListUAVs(ctx context.Context, zone string, state models.State) ([]models.UAV, error)

	// CountUAVs returns the number of UAVs currently in a zone.
	CountUAVs(ctx context.Context, zone string) (int, error)

	// RequestTransfer flips a UAV into transfer state with progress
	// zero. Fails with models.ErrUAVNotFound when the UAV is absent
	// from the stated source zone, and models.ErrUnknownZone when
	// either zone is not configured. No state changes on failure.
	RequestTransfer(ctx context.Context, id int, fromZone, toZone string) error

	// Close releases the store's resources.
	Close() error
}
