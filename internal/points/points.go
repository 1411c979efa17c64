// Package points owns the point-of-interest data: the value type, the remote
// store client, the local file cache fallback and the built-in default
// layout. The simulation only ever sees plain Point values.
package points

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrEmpty is returned by stores that answered but held no points.
var ErrEmpty = errors.New("points: empty dataset")

// Point is one point of interest on the galaxy map. Positions are world
// percent in [0, 100].
type Point struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Image string  `json:"image"`
	Scale float64 `json:"scale"`
}

// New constructs a validated point with a fresh ID. Out-of-range positions
// are clamped silently; a non-positive scale is rejected.
func New(label, image string, x, y, scale float64) (Point, error) {
	if scale <= 0 {
		return Point{}, fmt.Errorf("points: scale must be positive, got %v", scale)
	}
	return Point{
		ID:    uuid.NewString(),
		X:     clamp01x100(x),
		Y:     clamp01x100(y),
		Label: label,
		Image: image,
		Scale: scale,
	}, nil
}

// Normalize clamps a point's fields back into their invariants. Used on
// anything that arrives from outside (store payloads, admin edits).
func Normalize(p Point) Point {
	p.X = clamp01x100(p.X)
	p.Y = clamp01x100(p.Y)
	if p.Scale <= 0 {
		p.Scale = 1
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return p
}

func clamp01x100(v float64) float64 {
	if v != v { // NaN
		return 50
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Defaults is the fixed fallback layout used when both the remote store and
// the local cache come up empty.
func Defaults() []Point {
	mk := func(label, image string, x, y, scale float64) Point {
		p, _ := New(label, image, x, y, scale)
		return p
	}
	return []Point{
		mk("Meridian Trading Post", "station.png", 32, 24, 1.2),
		mk("Hadal Deep Relay", "relay.png", 71, 18, 1),
		mk("Obsidian Shipyards", "shipyard.png", 18, 62, 1.4),
		mk("Umbra Nebula", "nebula.png", 58, 70, 2),
		mk("Kepler's Rest", "outpost.png", 82, 55, 1),
		mk("Solis Beacon", "beacon.png", 47, 41, 0.8),
	}
}
