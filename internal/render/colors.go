package render

import "image/color"

// HUD palette. The starfield carries its own per-star colors; these are for
// chrome, ships and labels.
var (
	White      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	LightGray  = color.RGBA{0xc0, 0xc0, 0xc0, 0xff}
	DarkGray   = color.RGBA{0x60, 0x60, 0x68, 0xff}
	LightCyan  = color.RGBA{0x7f, 0xe8, 0xf0, 0xff}
	Cyan       = color.RGBA{0x30, 0xa0, 0xa8, 0xff}
	Yellow     = color.RGBA{0xf0, 0xd8, 0x60, 0xff}
	LightRed   = color.RGBA{0xf0, 0x60, 0x58, 0xff}
	LightGreen = color.RGBA{0x70, 0xe0, 0x80, 0xff}
	HullBlue   = color.RGBA{0x9a, 0xc8, 0xff, 0xff}
	Amber      = color.RGBA{0xe8, 0xa8, 0x48, 0xff}
	RingViolet = color.RGBA{0x8a, 0x60, 0xc8, 0x90}
)
