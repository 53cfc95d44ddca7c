package geo

import "math"

// AltitudeWeight is the divisor applied to altitude separation in the
// weighted 3D distance. Down-weighting altitude by 100 makes modest
// altitude offsets an effective separation lever for avoidance.
const AltitudeWeight = 100.0

// PlanarDistance returns the Euclidean distance on the (x, y) plane.
func PlanarDistance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// WeightedDistance3D returns the Euclidean distance on (x, y, alt/100).
func WeightedDistance3D(x1, y1, alt1, x2, y2, alt2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	dz := (alt1 - alt2) / AltitudeWeight
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// BBox is the simulation's planar bounding box.
type BBox struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// Clamp clips a coordinate pair into the box. Out-of-range inputs are
// silently clipped, never reported.
func (b BBox) Clamp(x, y float64) (float64, float64) {
	return math.Min(math.Max(x, b.MinX), b.MaxX), math.Min(math.Max(y, b.MinY), b.MaxY)
}

// Contains reports whether (x, y) lies inside the box.
func (b BBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}
