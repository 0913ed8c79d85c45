package symbol

import "image/color"

// Color is a straight-alpha RGBA colour with channels in 0..1.
// It is the colour representation stored in save files.
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// RGB returns an opaque colour.
func RGB(r, g, b float32) Color { return Color{R: r, G: g, B: b, A: 1} }

// Palette colours.
var (
	FriendlyColor = RGB(0.1, 0.6, 1)
	HostileColor  = RGB(1, 0.2, 0.2)
	NeutralColor  = RGB(0.2, 0.9, 0.4)
	SelectedTint  = RGB(1, 1, 0.4)
	White         = RGB(1, 1, 1)
)

// AffiliationColor returns the base colour for an affiliation.
// Unknown affiliations are drawn white.
func AffiliationColor(a Affiliation) Color {
	switch a {
	case Friendly:
		return FriendlyColor
	case Hostile:
		return HostileColor
	case Neutral:
		return NeutralColor
	}
	return White
}

// Lerp blends c toward d by t (0 = c, 1 = d), channel-wise including alpha.
func (c Color) Lerp(d Color, t float32) Color {
	return Color{
		R: c.R + (d.R-c.R)*t,
		G: c.G + (d.G-c.G)*t,
		B: c.B + (d.B-c.B)*t,
		A: c.A + (d.A-c.A)*t,
	}
}

// RGBA implements color.Color (alpha-premultiplied, 16 bits per channel).
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts to an 8-bit straight-alpha colour, clamping out-of-range channels.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
