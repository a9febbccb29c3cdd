package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	geojson "github.com/paulmach/go.geojson"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/domain"
)

// wardIDProperty is the feature property carrying the ward number in the
// division feature collection.
const wardIDProperty = "Name"

// LoadWardTable reads the ward division feature collection and the
// ward-number to department-name map from disk and builds the immutable
// table shared by all requests. Feature order is preserved because it
// determines overlap resolution.
func LoadWardTable(geojsonPath, zonesPath string) (*domain.WardTable, error) {
	raw, err := os.ReadFile(geojsonPath)
	if err != nil {
		return nil, fmt.Errorf("read ward geojson: %w", err)
	}
	collection, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse ward geojson: %w", err)
	}

	polygons := make([]domain.WardPolygon, 0, len(collection.Features))
	for i, feature := range collection.Features {
		ring, err := outerRing(feature.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		polygons = append(polygons, domain.WardPolygon{
			WardID: wardID(feature),
			Ring:   ring,
		})
	}

	departments, err := loadDepartments(zonesPath)
	if err != nil {
		return nil, err
	}
	return domain.NewWardTable(polygons, departments), nil
}

func loadDepartments(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ward zones: %w", err)
	}
	departments := map[string]string{}
	if err := json.Unmarshal(raw, &departments); err != nil {
		return nil, fmt.Errorf("parse ward zones: %w", err)
	}
	return departments, nil
}

// outerRing extracts the outer ring of a Polygon or MultiPolygon geometry.
// Only the outer ring is tested; holes are not modeled.
func outerRing(geometry *geojson.Geometry) ([][2]float64, error) {
	if geometry == nil {
		return nil, fmt.Errorf("missing geometry")
	}
	var ring [][]float64
	switch {
	case geometry.IsPolygon() && len(geometry.Polygon) > 0:
		ring = geometry.Polygon[0]
	case geometry.IsMultiPolygon() && len(geometry.MultiPolygon) > 0 && len(geometry.MultiPolygon[0]) > 0:
		ring = geometry.MultiPolygon[0][0]
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", geometry.Type)
	}

	vertices := make([][2]float64, 0, len(ring))
	for _, position := range ring {
		if len(position) < 2 {
			return nil, fmt.Errorf("vertex with %d coordinates", len(position))
		}
		vertices = append(vertices, [2]float64{position[0], position[1]})
	}
	return vertices, nil
}

func wardID(feature *geojson.Feature) string {
	if id, err := feature.PropertyString(wardIDProperty); err == nil {
		return strings.TrimSpace(id)
	}
	if val, ok := feature.Properties[wardIDProperty]; ok {
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
	return ""
}
