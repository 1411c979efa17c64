package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	glyphWidth  = 7
	glyphHeight = 13
)

// TextAtlas caches white basicfont glyphs for the printable ASCII range;
// labels are tinted at draw time with a color scale.
type TextAtlas struct {
	glyphs [95]*ebiten.Image // ASCII 32..126
}

// NewTextAtlas renders the glyph set once at startup.
func NewTextAtlas() *TextAtlas {
	a := &TextAtlas{}
	face := basicfont.Face7x13
	for i := range a.glyphs {
		img := image.NewNRGBA(image.Rect(0, 0, glyphWidth, glyphHeight))
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.White),
			Face: face,
			Dot:  fixed.P(0, glyphHeight-2),
		}
		d.DrawString(string(rune(i + 32)))
		a.glyphs[i] = ebiten.NewImageFromImage(img)
	}
	return a
}

// Draw writes s starting at pixel (x, y), one glyph cell per rune. Runes
// outside printable ASCII render as '?'.
func (a *TextAtlas) Draw(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	col := 0
	for _, r := range s {
		if r < 32 || r > 126 {
			r = '?'
		}
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(float64(x+col*glyphWidth), float64(y))
		opts.ColorScale.ScaleWithColor(clr)
		dst.DrawImage(a.glyphs[r-32], opts)
		col++
	}
}

// Width returns the pixel width of s when drawn with this atlas.
func (a *TextAtlas) Width(s string) int {
	n := 0
	for range s {
		n++
	}
	return n * glyphWidth
}
