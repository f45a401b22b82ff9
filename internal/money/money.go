// Package money provides the shared monetary primitives used by every
// calculation in TallyUp: rounding to cents and the small predicates that
// gate how report lines are rendered.
package money

import "math"

// roundBias nudges values sitting exactly on a half-cent boundary upward
// before rounding. 19.005 has no exact binary representation (it is stored
// as 19.004999...), so a bare math.Round(x*100)/100 truncates it to 19.00.
const roundBias = 1e-9

// Round2 rounds x to two decimal places, half up.
// Rounding is applied at every monetary boundary (storage conversion and
// report-line computation) so float drift never accumulates across steps.
func Round2(x float64) float64 {
	if x < 0 {
		return -Round2(-x)
	}
	return math.Round((x+roundBias)*100) / 100
}

// Positive reports whether x is strictly greater than zero.
func Positive(x float64) bool {
	return x > 0
}

// NotZero reports whether x is non-zero.
func NotZero(x float64) bool {
	return x != 0
}

// MoreThanOne reports whether a count warrants the "N x price" annotation
// on a report line; singular lines render just the total.
func MoreThanOne(n int) bool {
	return n > 1
}
