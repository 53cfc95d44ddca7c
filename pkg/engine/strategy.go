package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/skylane/uav-simulations/pkg/geo"
	"github.com/skylane/uav-simulations/pkg/models"
)

// Strategy names accepted by NewStrategy and the airspace config.
const (
	StrategySteering   = "steering"
	StrategyPredictive = "predictive"
)

// CollisionStrategy is one collision-response policy for a zone tick.
// Resolve scans the eligible UAVs (validated, zone-owned, not
// transferring), applies its response in place, and returns the pairs
// it acted on in scan order, lower ID first.
type CollisionStrategy interface {
	Name() string
	Resolve(cfg Config, uavs []*models.UAV, rng *rand.Rand) []Pair
}

// NewStrategy returns the named strategy.
func NewStrategy(name string) (CollisionStrategy, error) {
	switch name {
	case StrategySteering:
		return &SteeringStrategy{}, nil
	case StrategyPredictive:
		return &PredictiveStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown collision strategy %q", name)
	}
}

// SteeringStrategy is the reactive resolver: when the altitude-weighted
// distance of a pair drops below threshold*nearFactor, the two UAVs are
// turned perpendicular to the line joining them in opposite rotational
// senses, damped, and nudged apart.
type SteeringStrategy struct{}

// Name returns the config name of the strategy.
func (s *SteeringStrategy) Name() string { return StrategySteering }

// Resolve processes each qualifying pair independently. A UAV in
// several near-collision pairs is adjusted once per pair and the last
// pair wins; repeated damping with no floor can drive speed toward
// zero over consecutive ticks. Both are reference behavior, kept as-is.
func (s *SteeringStrategy) Resolve(cfg Config, uavs []*models.UAV, _ *rand.Rand) []Pair {
	var pairs []Pair
	for i := 0; i < len(uavs); i++ {
		for j := i + 1; j < len(uavs); j++ {
			a, b := uavs[i], uavs[j]
			d := geo.WeightedDistance3D(a.X, a.Y, a.Altitude, b.X, b.Y, b.Altitude)
			if d >= cfg.CollisionThreshold*cfg.NearFactor {
				continue
			}
			pairs = append(pairs, newPair(a.ID, b.ID))

			// Steer apart: perpendicular to the pair bearing, opposite senses.
			ang := math.Atan2(b.Y-a.Y, b.X-a.X)
			a.Heading = ang - math.Pi/2
			b.Heading = ang + math.Pi/2
			a.Speed *= cfg.SpeedDamping
			b.Speed *= cfg.SpeedDamping

			a.X += cfg.AvoidanceNudge * math.Cos(a.Heading)
			a.Y += cfg.AvoidanceNudge * math.Sin(a.Heading)
			b.X += cfg.AvoidanceNudge * math.Cos(b.Heading)
			b.Y += cfg.AvoidanceNudge * math.Sin(b.Heading)
			a.X, a.Y = cfg.BBox.Clamp(a.X, a.Y)
			b.X, b.Y = cfg.BBox.Clamp(b.X, b.Y)

			a.State = models.StateAvoidance
			b.State = models.StateAvoidance
		}
	}
	return pairs
}

// PredictiveStrategy projects every UAV ahead by the configured horizon
// using a synthesized random-direction velocity, tests the projected
// positions against the plain threshold, and separates predicted pairs
// vertically with a permanent altitude offset instead of steering. The
// projected position is committed as the UAV's new position.
type PredictiveStrategy struct{}

// Name returns the config name of the strategy.
func (s *PredictiveStrategy) Name() string { return StrategyPredictive }

// Resolve flags every UAV appearing in at least one predicted pair as
// avoidance and resets the rest to normal.
func (s *PredictiveStrategy) Resolve(cfg Config, uavs []*models.UAV, rng *rand.Rand) []Pair {
	futureX := make([]float64, len(uavs))
	futureY := make([]float64, len(uavs))
	for i, u := range uavs {
		angle := rng.Float64() * 2 * math.Pi
		vx := u.Speed * math.Cos(angle) * cfg.VelocityScale
		vy := u.Speed * math.Sin(angle) * cfg.VelocityScale
		futureX[i] = u.X + vx*cfg.PredictDeltaT
		futureY[i] = u.Y + vy*cfg.PredictDeltaT
	}

	var pairs []Pair
	flagged := make([]bool, len(uavs))
	for i := 0; i < len(uavs); i++ {
		for j := i + 1; j < len(uavs); j++ {
			d := geo.PlanarDistance(futureX[i], futureY[i], futureX[j], futureY[j])
			if d >= cfg.PredictThreshold {
				continue
			}
			pairs = append(pairs, newPair(uavs[i].ID, uavs[j].ID))
			uavs[i].Altitude += cfg.AltitudeOffset
			uavs[j].Altitude -= cfg.AltitudeOffset
			flagged[i] = true
			flagged[j] = true
		}
	}

	for i, u := range uavs {
		u.X, u.Y = cfg.BBox.Clamp(futureX[i], futureY[i])
		if flagged[i] {
			u.State = models.StateAvoidance
		} else {
			u.State = models.StateNormal
		}
	}
	return pairs
}
