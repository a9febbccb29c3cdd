package domain

import "sort"

// WardPolygon is the outer ring of one administrative ward, as loaded
// from the GeoJSON feature collection. Vertices are (longitude, latitude)
// pairs forming a closed ring. Holes are not modeled.
type WardPolygon struct {
	WardID string
	Ring   [][2]float64
}

// WardTable holds the ward polygons and the ward-number to department-name
// mapping. Both are loaded once at startup and never mutated afterwards,
// so the table is safe for unsynchronized concurrent reads.
type WardTable struct {
	polygons    []WardPolygon
	departments map[string]string
}

// NewWardTable builds an immutable ward table. The polygon slice keeps its
// given order; resolution iterates in that order and the first containing
// polygon wins.
func NewWardTable(polygons []WardPolygon, departments map[string]string) *WardTable {
	deptCopy := make(map[string]string, len(departments))
	for id, name := range departments {
		deptCopy[id] = name
	}
	return &WardTable{
		polygons:    append([]WardPolygon(nil), polygons...),
		departments: deptCopy,
	}
}

// Polygons returns the ward polygons in resolution order.
func (t *WardTable) Polygons() []WardPolygon {
	return t.polygons
}

// DepartmentFor looks up the department name mapped to a ward id.
func (t *WardTable) DepartmentFor(wardID string) (string, bool) {
	name, ok := t.departments[wardID]
	return name, ok
}

// DepartmentNames returns the sorted distinct department names.
func (t *WardTable) DepartmentNames() []string {
	seen := make(map[string]struct{}, len(t.departments))
	names := make([]string, 0, len(t.departments))
	for _, name := range t.departments {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
