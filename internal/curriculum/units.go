package curriculum

import "strconv"

// DefaultCreditHours is used when a row's Credit Hours cell is blank and
// the course number gives no usable hint.
const DefaultCreditHours = 3.0

// UnitsFromCourseNumber recovers a credit-hours value from the trailing
// digits of a course number when the Credit Hours column is blank. Some
// catalogs encode the unit count in the last one or two digits of the
// number (e.g. "101" -> 1 unit, "2C03" -> 3 units); this is a heuristic
// fallback only, never used when the cell is present but unparseable.
func UnitsFromCourseNumber(number string, fallback float64) float64 {
	if len(number) < 2 {
		return fallback
	}
	suffix := number[len(number)-2:]
	n, err := strconv.Atoi(suffix)
	if err != nil || n == 0 {
		return fallback
	}
	return float64(n)
}
