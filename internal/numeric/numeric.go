// Package numeric provides saturating and checked arithmetic helpers for the
// size-domain accounting used across detectors, the snapshot store, and the
// diff engine. Every operation here is total: none of them panic, and
// overflow is reported through a return value rather than silently wrapping.
package numeric

import "math"

// AddSaturatingUint64 adds b to a, saturating at math.MaxUint64 instead of
// wrapping around. The second return value reports whether saturation
// occurred, so callers can record a diagnostic.
func AddSaturatingUint64(a, b uint64) (sum uint64, saturated bool) {
	sum = a + b
	if sum < a {
		return math.MaxUint64, true
	}
	return sum, false
}

// SumSaturatingUint64 folds AddSaturatingUint64 over a slice. saturated is
// true if any individual addition saturated.
func SumSaturatingUint64(values []uint64) (sum uint64, saturated bool) {
	for _, v := range values {
		var sat bool
		sum, sat = AddSaturatingUint64(sum, v)
		saturated = saturated || sat
	}
	return sum, saturated
}

// Uint64ToInt64Checked narrows a uint64 to int64 for storage in a signed
// column. If the value overflows the signed range, it returns
// math.MaxInt64 and overflowed=true rather than wrapping to a negative
// number.
func Uint64ToInt64Checked(v uint64) (n int64, overflowed bool) {
	if v > math.MaxInt64 {
		return math.MaxInt64, true
	}
	return int64(v), false
}

// Int64ToUint64Clamped widens a signed value read back from storage to
// uint64, clamping negative values to zero. This is defensive: the writer
// (Uint64ToInt64Checked) never produces a negative value, but a
// hand-edited or externally-written database might.
func Int64ToUint64Clamped(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// SubSaturatingInt64 computes a-b as an int64 delta using saturating
// arithmetic, so that a caller converting two uint64 sizes via
// Uint64ToInt64Checked and then subtracting never overflows at the signed
// minimum (which a naive cast-and-negate would).
func SubSaturatingInt64(a, b int64) int64 {
	d := a - b
	// Overflow can only occur in the a-b computation itself when a and b
	// have opposite signs and the result does not fit in int64.
	if a >= 0 && b < 0 && d < 0 {
		return math.MaxInt64
	}
	if a < 0 && b > 0 && d > 0 {
		return math.MinInt64
	}
	return d
}

// AbsInt64 returns the absolute value of v, saturating at math.MaxInt64 for
// the one value (math.MinInt64) whose magnitude doesn't fit in int64.
func AbsInt64(v int64) int64 {
	if v == math.MinInt64 {
		return math.MaxInt64
	}
	if v < 0 {
		return -v
	}
	return v
}
