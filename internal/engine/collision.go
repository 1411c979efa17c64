package engine

import "github.com/go-gl/mathgl/mgl64"

// Collision is the result of testing a proposed map offset against the
// circular barrier.
type Collision struct {
	Colliding bool
	// Point is where the barrier was touched: the point on the circle of
	// radius BarrierRadius at the same angle as the proposed offset. Only
	// meaningful when Colliding is true.
	Point mgl64.Vec2
}

// CheckBoundary tests whether a proposed map offset falls inside the thin
// collision band around the barrier circle. Points strictly inside the band
// or beyond it are free: the band blocks the crossing instant, not the open
// interior or positions that already escaped.
func CheckBoundary(cfg *Config, proposed mgl64.Vec2) Collision {
	d := proposed.Len()
	if d <= cfg.BandInner || d > cfg.BandOuter {
		return Collision{}
	}
	return Collision{
		Colliding: true,
		Point:     proposed.Mul(cfg.BarrierRadius / d),
	}
}

// RepulseDirection returns the unit vector pointing from the collision point
// back toward the map origin, i.e. the direction the visual offset is pushed
// to get the ship off the barrier.
func RepulseDirection(point mgl64.Vec2) mgl64.Vec2 {
	d := point.Len()
	if d == 0 {
		return mgl64.Vec2{}
	}
	return point.Mul(-1 / d)
}
