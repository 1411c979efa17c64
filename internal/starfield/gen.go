// Package starfield generates the infinite parallax star backdrop and the
// transient shooting-star particles layered over it.
//
// The backdrop is never stored: star content is a pure function of a grid
// cell and a parallax layer, derived from an integer mix hash, so any region
// of the sky can be re-derived on demand and always comes out identical.
package starfield

import "math"

// CellSize is the edge length of one generation cell, in map units.
const CellSize = 50.0

// Margin is how far past the viewport edges cells are still generated, so
// stars drift in smoothly instead of popping at the border.
const Margin = 100.0

// Layer identifies one parallax depth.
type Layer int

const (
	Background Layer = iota
	Mid
	Foreground
	LayerCount
)

// Speed returns the fraction of camera movement this layer follows.
func (l Layer) Speed() float64 {
	switch l {
	case Background:
		return 0.08
	case Mid:
		return 0.25
	default:
		return 0.5
	}
}

// maxDensity is the exclusive upper bound on stars per cell, per layer.
// Deeper layers are denser but smaller.
func (l Layer) maxDensity() uint32 {
	switch l {
	case Background:
		return 7
	case Mid:
		return 5
	default:
		return 4
	}
}

// Star is one generated star. Position is in layer space (map units);
// animation is layered on top via At, never baked into these fields.
type Star struct {
	X, Y    float64
	Size    float64
	Opacity float64
	R, G, B uint8

	BlinkPhase float64
	BlinkSpeed float64
	FloatPhase float64
	FloatSpeed float64
}

// At returns the star's animated position, size and opacity at wall-clock
// time t (seconds): a sinusoidal blink plus a small positional drift.
func (s *Star) At(t float64) (x, y, size, opacity float64) {
	drift := math.Sin(t*s.FloatSpeed + s.FloatPhase)
	x = s.X + drift*1.5
	y = s.Y + math.Cos(t*s.FloatSpeed+s.FloatPhase)*1.5
	blink := math.Sin(t*s.BlinkSpeed + s.BlinkPhase)
	size = s.Size * (0.85 + 0.15*blink)
	opacity = s.Opacity * (0.7 + 0.3*blink)
	return x, y, size, opacity
}

// mix32 is a 32-bit finalizer (lowbias32). Good avalanche, no state.
func mix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return h
}

// cellSeed hashes a cell coordinate and layer into a reproducible seed.
func cellSeed(cx, cy int, layer Layer) uint32 {
	return mix32(uint32(int32(cx))*0x9E3779B1 ^
		uint32(int32(cy))*0x85EBCA77 ^
		uint32(layer)*0xC2B2AE3D)
}

// unit converts a hash to a float in [0, 1).
func unit(h uint32) float64 {
	return float64(h) / (1 << 32)
}

// Small palette for tinted stars; only the foreground layer rolls for color,
// everything further back stays white.
var palette = [...][3]uint8{
	{255, 220, 180}, // warm
	{180, 210, 255}, // cold blue
	{255, 180, 200}, // faint rose
	{200, 255, 220}, // pale green
}

// CellStars generates the stars of one (cell, layer) pair. Identical inputs
// always yield identical output.
func CellStars(cx, cy int, layer Layer) []Star {
	seed := cellSeed(cx, cy, layer)
	count := int(seed % layer.maxDensity())
	if count == 0 {
		return nil
	}

	baseX := float64(cx) * CellSize
	baseY := float64(cy) * CellSize

	stars := make([]Star, count)
	for i := range stars {
		h := mix32(seed + uint32(i)*0x27d4eb2f)
		sub := func() float64 {
			h = mix32(h)
			return unit(h)
		}

		s := Star{
			X:          baseX + sub()*CellSize,
			Y:          baseY + sub()*CellSize,
			Size:       0.6 + sub()*1.8,
			Opacity:    0.3 + sub()*0.7,
			R:          255,
			G:          255,
			B:          255,
			BlinkPhase: sub() * 2 * math.Pi,
			BlinkSpeed: 0.4 + sub()*1.6,
			FloatPhase: sub() * 2 * math.Pi,
			FloatSpeed: 0.1 + sub()*0.4,
		}
		if layer == Foreground {
			s.Size += 0.6 // foreground stars read larger
			if sub() < 0.35 {
				c := palette[mix32(h+1)%uint32(len(palette))]
				s.R, s.G, s.B = c[0], c[1], c[2]
			}
		}
		stars[i] = s
	}
	return stars
}

// VisibleStars enumerates every star of one layer whose cell overlaps the
// viewport (plus Margin) for the given camera offset. The caller renders a
// star of layer-space position P at screen position P + offset*Speed().
func VisibleStars(layer Layer, offsetX, offsetY, viewW, viewH float64) []Star {
	shiftX := offsetX * layer.Speed()
	shiftY := offsetY * layer.Speed()

	// Layer-space window that maps onto the expanded viewport.
	minX := -Margin - shiftX
	maxX := viewW + Margin - shiftX
	minY := -Margin - shiftY
	maxY := viewH + Margin - shiftY

	cx0 := int(math.Floor(minX / CellSize))
	cx1 := int(math.Floor(maxX / CellSize))
	cy0 := int(math.Floor(minY / CellSize))
	cy1 := int(math.Floor(maxY / CellSize))

	var out []Star
	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			out = append(out, CellStars(cx, cy, layer)...)
		}
	}
	return out
}
