package engine

import (
	"math"
	"math/rand"

	"github.com/skylane/uav-simulations/pkg/models"
)

// moveUAV advances one non-transferring UAV by one tick. Normal UAVs
// draw a fresh heading uniformly from (-pi, pi] — loitering, not
// goal-directed flight. Avoidance UAVs keep the heading the resolver
// assigned; their speed has already been damped. Transferring UAVs are
// owned by the transfer interpolator and never reach this function.
func (e *Engine) moveUAV(u *models.UAV, rng *rand.Rand) {
	if u.State == models.StateNormal {
		u.Heading = math.Pi - rng.Float64()*2*math.Pi
	}
	step := u.Speed * e.cfg.StepScale
	u.X += step * math.Cos(u.Heading)
	u.Y += step * math.Sin(u.Heading)
	u.X, u.Y = e.cfg.BBox.Clamp(u.X, u.Y)
}
