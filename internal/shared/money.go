package shared

import "math"

// Round2 rounds an amount to 2 decimal places, the precision used by every
// money column in the schema.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AmountsEqual compares two money values at 2-place precision.
func AmountsEqual(a, b float64) bool {
	return Round2(a) == Round2(b)
}
