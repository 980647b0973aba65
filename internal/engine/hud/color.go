package hud

// Color is a straight-alpha RGBA color with float components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Yellow      = Color{1, 0.85, 0.1, 1}
	Transparent = Color{}
)

// RGBA creates a color from 8-bit components.
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// WithAlpha returns the color with a different alpha.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}
