package geo

import "testing"

func TestBoundsContains(t *testing.T) {
	bounds := Bounds{North: 13.2544, South: 12.8345, East: 80.3474, West: 80.0955}

	cases := []struct {
		name string
		lat  float64
		lng  float64
		want bool
	}{
		{"city center", 13.0827, 80.2707, true},
		{"north exceeded", 13.30, 80.20, false},
		{"south exceeded", 12.80, 80.20, false},
		{"east exceeded", 13.00, 80.40, false},
		{"west exceeded", 13.00, 80.00, false},
		{"north boundary inclusive", 13.2544, 80.20, true},
		{"south boundary inclusive", 12.8345, 80.20, true},
		{"east boundary inclusive", 13.00, 80.3474, true},
		{"west boundary inclusive", 13.00, 80.0955, true},
		{"far outside", -33.86, 151.20, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := bounds.Contains(tc.lat, tc.lng); got != tc.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tc.lat, tc.lng, got, tc.want)
			}
		})
	}
}
