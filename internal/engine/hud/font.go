package hud

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII is baked into the atlas. Anything else renders as '?'.
const (
	firstGlyph   = ' '
	lastGlyph    = '~'
	atlasCols    = 16
	fallbackRune = '?'
)

// Atlas is a fixed-width glyph sheet rasterized on the CPU.
type Atlas struct {
	Image  *image.Alpha
	GlyphW int
	GlyphH int
}

// NewAtlas rasterizes the built-in 7x13 bitmap face into a single
// alpha image, one cell per glyph.
func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	metrics := face.Metrics()

	adv, _ := face.GlyphAdvance('M')
	a := &Atlas{
		GlyphW: adv.Ceil(),
		GlyphH: metrics.Height.Ceil(),
	}

	count := int(lastGlyph - firstGlyph + 1)
	rows := (count + atlasCols - 1) / atlasCols
	a.Image = image.NewAlpha(image.Rect(0, 0, atlasCols*a.GlyphW, rows*a.GlyphH))

	d := font.Drawer{Dst: a.Image, Src: image.White, Face: face}
	ascent := metrics.Ascent.Ceil()
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		x, y := a.cell(r)
		d.Dot = fixed.P(x, y+ascent)
		d.DrawString(string(r))
	}
	return a
}

// cell returns the top-left pixel of a glyph cell.
func (a *Atlas) cell(r rune) (x, y int) {
	if r < firstGlyph || r > lastGlyph {
		r = fallbackRune
	}
	i := int(r - firstGlyph)
	return (i % atlasCols) * a.GlyphW, (i / atlasCols) * a.GlyphH
}

// UV returns the texture rectangle of r.
func (a *Atlas) UV(r rune) (u0, v0, u1, v1 float32) {
	x, y := a.cell(r)
	w := float32(a.Image.Rect.Dx())
	h := float32(a.Image.Rect.Dy())
	return float32(x) / w, float32(y) / h,
		float32(x+a.GlyphW) / w, float32(y+a.GlyphH) / h
}

// MeasureText returns the size of text drawn at scale. Newlines start a
// new row.
func (a *Atlas) MeasureText(text string, scale float32) (w, h float32) {
	if text == "" {
		return 0, 0
	}
	cols, widest, rows := 0, 0, 1
	for _, r := range text {
		if r == '\n' {
			rows++
			cols = 0
			continue
		}
		cols++
		widest = max(widest, cols)
	}
	return float32(widest*a.GlyphW) * scale, float32(rows*a.GlyphH) * scale
}
