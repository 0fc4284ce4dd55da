package sbp

import (
	"math"
	"strconv"
)

// formatNumber renders a float64 as G-code expects: minimal digits, no
// trailing zeros, matching the teacher's own Number.String() convention.
// The value is first rounded to 9 decimal places, so floating-point noise
// from the geometry math (e.g. the 6e-16 a 90° rotation leaves) prints as
// 0, and a negative zero prints as "0".
func formatNumber(v float64) string {
	v = math.Round(v*1e9) / 1e9
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
