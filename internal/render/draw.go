// Package render draws the galaxy map scene with Ebitengine vector
// primitives. It consumes plain snapshot/draw-list data from the engine and
// owns nothing of the simulation.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/stardrift/stardrift/internal/starfield"
)

// Scene bundles the immutable drawing resources.
type Scene struct {
	Text *TextAtlas
}

// NewScene builds the glyph atlas and returns a ready scene renderer.
func NewScene() *Scene {
	return &Scene{Text: NewTextAtlas()}
}

// alphaRGBA premultiplies a star color by its opacity.
func alphaRGBA(r, g, b uint8, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(r) * a),
		G: uint8(float64(g) * a),
		B: uint8(float64(b) * a),
		A: uint8(255 * a),
	}
}

// DrawStarfield renders all three parallax layers for the given camera
// offset at wall-clock time t.
func (s *Scene) DrawStarfield(dst *ebiten.Image, offsetX, offsetY, t float64) {
	w := float64(dst.Bounds().Dx())
	h := float64(dst.Bounds().Dy())
	for layer := starfield.Background; layer < starfield.LayerCount; layer++ {
		speed := layer.Speed()
		for _, st := range starfield.VisibleStars(layer, offsetX, offsetY, w, h) {
			x, y, size, op := st.At(t)
			sx := float32(x + offsetX*speed)
			sy := float32(y + offsetY*speed)
			vector.DrawFilledCircle(dst, sx, sy, float32(size), alphaRGBA(st.R, st.G, st.B, op), false)
		}
	}
}

// DrawShots renders the shooting-star draw list: a fading tail behind a
// bright head.
func (s *Scene) DrawShots(dst *ebiten.Image, shots []starfield.Shot) {
	for _, sh := range shots {
		tailX := sh.X - sh.DirX*sh.Tail
		tailY := sh.Y - sh.DirY*sh.Tail
		vector.StrokeLine(dst,
			float32(tailX), float32(tailY),
			float32(sh.X), float32(sh.Y),
			float32(sh.Size), alphaRGBA(sh.R, sh.G, sh.B, sh.Alpha*0.6), true)
		vector.DrawFilledCircle(dst, float32(sh.X), float32(sh.Y),
			float32(sh.Size*1.4), alphaRGBA(255, 255, 255, sh.Alpha), true)
	}
}

// DrawBarrier strokes the containment ring. The ring is centered on the map
// origin, which sits at the view center plus the camera offset.
func (s *Scene) DrawBarrier(dst *ebiten.Image, cx, cy, offsetX, offsetY, radius float64) {
	vector.StrokeCircle(dst,
		float32(cx+offsetX), float32(cy+offsetY),
		float32(radius), 3, RingViolet, true)
}

// DrawShip renders the player vessel at (cx, cy) with the given rotation in
// degrees (0 = up, clockwise).
func (s *Scene) DrawShip(dst *ebiten.Image, cx, cy, rotDeg float64, colliding, autopilot bool) {
	clr := HullBlue
	switch {
	case colliding:
		clr = LightRed
	case autopilot:
		clr = LightGreen
	}
	drawVessel(dst, cx, cy, rotDeg, 14, clr)
}

// DrawMerchant renders the wandering NPC vessel.
func (s *Scene) DrawMerchant(dst *ebiten.Image, cx, cy, rotDeg float64, paused bool) {
	clr := Amber
	if paused {
		clr = DarkGray
	}
	drawVessel(dst, cx, cy, rotDeg, 10, clr)
	if paused {
		s.Text.Draw(dst, "z", int(cx)+8, int(cy)-18, LightGray)
	}
}

// drawVessel strokes a chevron-style hull: nose, two wings, a core dot.
func drawVessel(dst *ebiten.Image, cx, cy, rotDeg, size float64, clr color.RGBA) {
	rad := rotDeg * math.Pi / 180
	rot := func(x, y float64) (float32, float32) {
		// Rotation around (cx, cy); model space has the nose up (-Y).
		rx := x*math.Cos(rad) - y*math.Sin(rad)
		ry := x*math.Sin(rad) + y*math.Cos(rad)
		return float32(cx + rx), float32(cy + ry)
	}
	nx, ny := rot(0, -size)
	lx, ly := rot(-size*0.65, size*0.7)
	rx, ry := rot(size*0.65, size*0.7)
	bx, by := rot(0, size*0.35)

	vector.StrokeLine(dst, nx, ny, lx, ly, 2, clr, true)
	vector.StrokeLine(dst, nx, ny, rx, ry, 2, clr, true)
	vector.StrokeLine(dst, lx, ly, bx, by, 2, clr, true)
	vector.StrokeLine(dst, rx, ry, bx, by, 2, clr, true)
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), 2, clr, true)
}

// DrawPoint renders one point of interest with its label below.
func (s *Scene) DrawPoint(dst *ebiten.Image, cx, cy, scale float64, label string, highlight bool) {
	r := 10 * scale
	clr := Cyan
	if highlight {
		clr = Yellow
	}
	vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r), 2, clr, true)
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r*0.3), clr, true)
	if label != "" {
		s.Text.Draw(dst, label, int(cx)-s.Text.Width(label)/2, int(cy+r)+6, LightGray)
	}
}

// DrawHoldRing renders autopilot hold progress as dots filling a circle
// around the ship.
func (s *Scene) DrawHoldRing(dst *ebiten.Image, cx, cy, progress float64) {
	const dots = 24
	lit := int(progress * dots)
	for i := 0; i < lit; i++ {
		ang := -math.Pi/2 + 2*math.Pi*float64(i)/dots
		x := cx + math.Cos(ang)*26
		y := cy + math.Sin(ang)*26
		vector.DrawFilledCircle(dst, float32(x), float32(y), 2, LightGreen, true)
	}
}
