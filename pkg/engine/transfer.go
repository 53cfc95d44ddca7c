package engine

import (
	"fmt"
	"math/rand"

	"github.com/skylane/uav-simulations/pkg/models"
)

// advanceTransfer moves one transferring UAV a step along the straight
// path between its source and target zone anchors. On reaching
// ProgressMax the transfer finalizes: the UAV lands at the target
// anchor plus a small uniform spread so arrivals do not stack on one
// point, flips to Normal, and drops its transfer record. Returns true
// on arrival.
func (e *Engine) advanceTransfer(u *models.UAV, rng *rand.Rand) (bool, error) {
	src, ok := e.zones[u.Zone]
	if !ok {
		return false, fmt.Errorf("transfer source %q: %w", u.Zone, models.ErrUnknownZone)
	}
	tgt, ok := e.zones[u.Transfer.TargetZone]
	if !ok {
		return false, fmt.Errorf("transfer target %q: %w", u.Transfer.TargetZone, models.ErrUnknownZone)
	}

	u.Transfer.Progress += e.cfg.ProgressIncrement
	if u.Transfer.Progress >= e.cfg.ProgressMax {
		u.Zone = tgt.Name
		u.State = models.StateNormal
		u.Transfer = nil
		u.X = tgt.AnchorX + (rng.Float64()*2-1)*e.cfg.ArrivalSpread
		u.Y = tgt.AnchorY + (rng.Float64()*2-1)*e.cfg.ArrivalSpread
		u.X, u.Y = e.cfg.BBox.Clamp(u.X, u.Y)
		return true, nil
	}

	t := float64(u.Transfer.Progress) / float64(e.cfg.ProgressMax)
	u.X = src.AnchorX + (tgt.AnchorX-src.AnchorX)*t
	u.Y = src.AnchorY + (tgt.AnchorY-src.AnchorY)*t
	u.X, u.Y = e.cfg.BBox.Clamp(u.X, u.Y)
	return false, nil
}
