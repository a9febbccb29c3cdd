package geo

// Bounds is the rectangular lat/lng region considered serviceable.
type Bounds struct {
	North float64
	South float64
	East  float64
	West  float64
}

// Contains reports whether the coordinate lies within the service area,
// boundary inclusive on every edge.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.South && lat <= b.North &&
		lng >= b.West && lng <= b.East
}
