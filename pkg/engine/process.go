package engine

import (
	"fmt"
	"math/rand"

	"github.com/skylane/uav-simulations/pkg/models"
)

// Summary describes what one ProcessZone call did.
type Summary struct {
	Zone           string
	Strategy       string
	Processed      int // records received
	Rejected       int // malformed records carried through untouched
	Moved          int // non-transferring UAVs advanced by the movement model
	Transfers      int // transferring UAVs advanced by the interpolator
	Arrivals       int // transfers finalized into their target zone
	Collisions     int // 2D collision pairs reported
	NearCollisions int // pairs the collision strategy acted on
	CollisionPairs []Pair
	AdjustedPairs  []Pair
}

// ProcessZone drives one full simulation tick for a zone: advance
// transfers and finalize arrivals, move everything else, detect
// collisions, resolve with the configured strategy. The input slice is
// deep-copied; the caller keeps ownership of its data and is
// responsible for persisting the returned set. Malformed records abort
// only their own effect — they are returned unchanged and counted in
// the summary — never the whole tick.
//
// All randomness (headings, arrival spread, predictive projection)
// comes from rng, so a seeded generator makes a tick exactly
// reproducible.
func (e *Engine) ProcessZone(zone string, uavs []models.UAV, rng *rand.Rand) ([]models.UAV, *Summary, error) {
	if _, ok := e.zones[zone]; !ok {
		return nil, nil, fmt.Errorf("process zone %q: %w", zone, models.ErrUnknownZone)
	}

	out := models.CloneAll(uavs)
	summary := &Summary{
		Zone:      zone,
		Strategy:  e.strategy.Name(),
		Processed: len(out),
	}

	active := make([]bool, len(out))
	for i := range out {
		if err := out[i].Validate(); err != nil {
			summary.Rejected++
			continue
		}
		if out[i].Zone != zone {
			summary.Rejected++
			continue
		}
		active[i] = true
	}

	// Step 1: transfers advance and arrivals finalize. An arrival's zone
	// field flips to the target, which removes it from the rest of this
	// zone's tick; interpolation consumed its movement.
	for i := range out {
		if !active[i] || out[i].State != models.StateTransfer {
			continue
		}
		arrived, err := e.advanceTransfer(&out[i], rng)
		if err != nil {
			// Unknown target zone: treat like a malformed record.
			active[i] = false
			summary.Rejected++
			continue
		}
		summary.Transfers++
		if arrived {
			summary.Arrivals++
		}
	}

	// Step 2: movement model for everything not transferring.
	for i := range out {
		if !active[i] || out[i].Zone != zone || out[i].State == models.StateTransfer {
			continue
		}
		e.moveUAV(&out[i], rng)
		summary.Moved++
	}

	// Step 3: 2D collision reporting over the zone's updated set,
	// transferring UAVs included — they occupy airspace too.
	report := make([]models.UAV, 0, len(out))
	for i := range out {
		if active[i] && out[i].Zone == zone {
			report = append(report, out[i])
		}
	}
	summary.CollisionPairs = e.DetectCollisions(report)
	summary.Collisions = len(summary.CollisionPairs)

	// Step 4: avoidance resolution. The interpolator owns transferring
	// UAVs exclusively, so only the rest are eligible.
	eligible := make([]*models.UAV, 0, len(out))
	for i := range out {
		if active[i] && out[i].Zone == zone && out[i].State != models.StateTransfer {
			eligible = append(eligible, &out[i])
		}
	}
	summary.AdjustedPairs = e.strategy.Resolve(e.cfg, eligible, rng)
	summary.NearCollisions = len(summary.AdjustedPairs)

	return out, summary, nil
}
