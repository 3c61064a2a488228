package curriculum

import "testing"

func TestUnitsFromCourseNumber(t *testing.T) {
	cases := []struct {
		name     string
		number   string
		fallback float64
		want     float64
	}{
		{"trailing two digits", "CS101", 3.0, 1.0},
		{"four credit course", "MATH2004", 3.0, 4.0},
		{"no digits falls back", "SEMINAR", 3.0, 3.0},
		{"single digit falls back", "CS1", 3.0, 3.0},
		{"zero units falls back", "CS100", 3.0, 3.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := UnitsFromCourseNumber(tc.number, tc.fallback)
			if got != tc.want {
				t.Fatalf("UnitsFromCourseNumber(%q, %v) = %v, want %v", tc.number, tc.fallback, got, tc.want)
			}
		})
	}
}
