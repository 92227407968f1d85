package metadata

import "github.com/spaghettifunk/lumina/engine/math"

// Colour is a linear RGBA colour with components in [0, 1].
type Colour struct {
	R, G, B, A float32
}

// NewColour clamps each component into [0, 1].
func NewColour(r, g, b, a float32) Colour {
	return Colour{
		R: math.Clamp(r, 0, 1),
		G: math.Clamp(g, 0, 1),
		B: math.Clamp(b, 0, 1),
		A: math.Clamp(a, 0, 1),
	}
}

// NewColourFromBytes maps 8-bit channels onto [0, 1] by dividing by 255.
func NewColourFromBytes(r, g, b uint8) Colour {
	return Colour{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// WithAlpha returns the same colour with alpha replaced.
func (c Colour) WithAlpha(a float32) Colour {
	c.A = a
	return c
}

func (c Colour) Vec4() math.Vec4 {
	return math.Vec4{X: c.R, Y: c.G, Z: c.B, W: c.A}
}

var (
	ColourBlack = Colour{0, 0, 0, 1}
	ColourRed   = Colour{1, 0, 0, 1}
)
