package engine

import (
	"github.com/skylane/uav-simulations/pkg/geo"
	"github.com/skylane/uav-simulations/pkg/models"
)

// Pair identifies two UAVs in proximity. A is always the lower ID.
type Pair struct {
	A int
	B int
}

func newPair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// DetectCollisions runs the exhaustive pairwise scan over a zone's
// entity set using the plain 2D distance. Each unordered pair is
// considered exactly once, in scan order (i, then j > i), so repeated
// runs over the same set produce identical output. This is the
// time-of-check reporting form; avoidance uses the altitude-aware
// weighted distance instead (see the strategies).
func (e *Engine) DetectCollisions(uavs []models.UAV) []Pair {
	var pairs []Pair
	for i := 0; i < len(uavs); i++ {
		for j := i + 1; j < len(uavs); j++ {
			d := geo.PlanarDistance(uavs[i].X, uavs[i].Y, uavs[j].X, uavs[j].Y)
			if d < e.cfg.CollisionThreshold {
				pairs = append(pairs, newPair(uavs[i].ID, uavs[j].ID))
			}
		}
	}
	return pairs
}
