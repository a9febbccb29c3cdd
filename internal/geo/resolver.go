package geo

import (
	"fmt"
	"strings"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/domain"
)

// Unassigned is returned when no ward polygon contains the point.
const Unassigned = "Unassigned"

// Resolver maps a coordinate to the responsible department by testing the
// point against each ward polygon in load order. When polygons overlap the
// first containing polygon wins; that iteration-order policy is deliberate
// and matches the order of the source feature collection.
type Resolver struct {
	wards *domain.WardTable
}

// NewResolver builds a resolver over an immutable ward table.
func NewResolver(wards *domain.WardTable) *Resolver {
	return &Resolver{wards: wards}
}

// Resolve returns the department name responsible for (lat, lng).
// A ward id missing from the department table yields a synthesized
// "Ward <id>" label; a point outside every polygon yields Unassigned.
func (r *Resolver) Resolve(lat, lng float64) string {
	for _, polygon := range r.wards.Polygons() {
		if !pointInRing(lng, lat, polygon.Ring) {
			continue
		}
		wardID := strings.TrimSpace(polygon.WardID)
		if name, ok := r.wards.DepartmentFor(wardID); ok {
			return name
		}
		return fmt.Sprintf("Ward %s", wardID)
	}
	return Unassigned
}

// pointInRing runs the ray-casting parity test of (lng, lat) against the
// outer ring. A horizontal ray is cast eastward from the point; an odd
// number of edge crossings means the point is inside.
func pointInRing(lng, lat float64, ring [][2]float64) bool {
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > lat) != (yj > lat) &&
			lng < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}
