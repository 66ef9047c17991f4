// Package geom provides wraparound-safe angle arithmetic for field-of-view
// checks. All angles are in radians, normalized to [0, 2π).
package geom

import "math"

// TwoPi is a full turn.
const TwoPi = 2 * math.Pi

// Advance returns a + step wrapped into [0, 2π). Step is assumed to be a
// small adjustment; sums more than one full turn past 2π are not handled.
func Advance(a, step float64) float64 {
	a += step
	if a > TwoPi {
		a -= TwoPi
	}
	return a
}

// Reduce returns a - step wrapped into [0, 2π).
func Reduce(a, step float64) float64 {
	a -= step
	if a < 0 {
		a += TwoPi
	}
	return a
}

// WithinArc reports whether angle lies strictly inside the arc from left to
// right. When left <= right the check is strict on both ends, so the exact
// edge rays of a view cone are not inside. When right < left the arc crosses
// the 0/2π seam and the two halves are tested separately. A value of exactly
// 2π on any argument is treated as 0.
func WithinArc(angle, left, right float64) bool {
	angle = wrap(angle)
	left = wrap(left)
	right = wrap(right)

	if left <= right {
		return left < angle && angle < right
	}
	return angle < right || angle > left
}

// wrap folds the 2π boundary value back onto 0.
func wrap(a float64) float64 {
	if a >= TwoPi {
		a -= TwoPi
	}
	return a
}

// Bearing returns the angle from the observer at (ox, oy) to the target at
// (tx, ty). The sign and π offset align screen-space Y-down coordinates with
// the arc convention above: east ≈ 0 (reported as 2π), north is π/2, west is
// π, south is 3π/2.
func Bearing(ox, oy, tx, ty float64) float64 {
	return math.Atan2(ty-oy, ox-tx) + math.Pi
}
