package engine

import "math"

// Wrap maps v onto the half-open interval [lo, hi), treating the axis as a
// torus: values past hi re-enter at lo and vice versa.
func Wrap(v, lo, hi float64) float64 {
	span := hi - lo
	r := math.Mod(v-lo, span)
	if r < 0 {
		r += span
	}
	if r >= span { // rounding can land exactly on span
		r = 0
	}
	return lo + r
}

// WrapDelta maps v onto [-limit, limit), used for the unbounded visual
// offset so it never drifts past float precision.
func WrapDelta(v, limit float64) float64 {
	return Wrap(v, -limit, limit)
}

// AngleDelta returns the signed shortest rotation from one angle to another,
// in degrees, in (-180, 180].
func AngleDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

// LerpAngle moves from toward to by fraction t along the shortest arc.
func LerpAngle(from, to, t float64) float64 {
	return from + AngleDelta(from, to)*t
}

// angleDeltaRad is AngleDelta in radians, in (-pi, pi].
func angleDeltaRad(from, to float64) float64 {
	d := math.Mod(to-from, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// RotationDeg converts a direction vector to a sprite rotation in degrees,
// 0 pointing up (screen -Y), increasing clockwise.
func RotationDeg(dx, dy float64) float64 {
	return math.Atan2(dx, -dy) * 180 / math.Pi
}
