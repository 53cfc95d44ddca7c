package models

// Zone is a named region with a fixed anchor coordinate. Zones are a
// small, statically configured set; they are never created or destroyed
// at runtime. The anchor is the target point for inter-zone transfers.
type Zone struct {
	Name    string
	AnchorX float64
	AnchorY float64
}

// ZoneMap builds a lookup table from a zone list.
func ZoneMap(zones []Zone) map[string]Zone {
	m := make(map[string]Zone, len(zones))
	for _, z := range zones {
		m[z.Name] = z
	}
	return m
}
