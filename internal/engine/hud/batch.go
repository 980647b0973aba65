package hud

// Vertex is the overlay vertex layout: screen position, glyph UV, color.
type Vertex struct {
	X, Y  float32
	U, V  float32
	Color Color
}

// Batch collects solid quads and glyph quads for one overlay frame.
// Quads are drawn first, glyphs on top. Coordinates are pixels with the
// origin at the top left.
type Batch struct {
	Quads  []Vertex
	Glyphs []Vertex
	atlas  *Atlas
}

// NewBatch creates an empty batch drawing text from atlas.
func NewBatch(atlas *Atlas) *Batch {
	return &Batch{
		Quads:  make([]Vertex, 0, 256),
		Glyphs: make([]Vertex, 0, 1024),
		atlas:  atlas,
	}
}

// Reset clears the batch for a new frame.
func (b *Batch) Reset() {
	b.Quads = b.Quads[:0]
	b.Glyphs = b.Glyphs[:0]
}

// Empty reports whether nothing was queued.
func (b *Batch) Empty() bool {
	return len(b.Quads) == 0 && len(b.Glyphs) == 0
}

// Rect queues a filled rectangle.
func (b *Batch) Rect(x, y, w, h float32, c Color) {
	b.Quads = appendQuad(b.Quads, x, y, w, h, 0, 0, 0, 0, c)
}

// RectOutline queues a rectangle border of the given thickness.
func (b *Batch) RectOutline(x, y, w, h, thickness float32, c Color) {
	b.Rect(x, y, w, thickness, c)
	b.Rect(x, y+h-thickness, w, thickness, c)
	b.Rect(x, y+thickness, thickness, h-thickness*2, c)
	b.Rect(x+w-thickness, y+thickness, thickness, h-thickness*2, c)
}

// Text queues a string. Newlines return to x on the next row.
func (b *Batch) Text(x, y float32, text string, scale float32, c Color) {
	cw := float32(b.atlas.GlyphW) * scale
	ch := float32(b.atlas.GlyphH) * scale

	cx := x
	for _, r := range text {
		if r == '\n' {
			cx = x
			y += ch
			continue
		}
		if r != ' ' {
			u0, v0, u1, v1 := b.atlas.UV(r)
			b.Glyphs = appendQuad(b.Glyphs, cx, y, cw, ch, u0, v0, u1, v1, c)
		}
		cx += cw
	}
}

// MeasureText returns the size Text would cover.
func (b *Batch) MeasureText(text string, scale float32) (w, h float32) {
	return b.atlas.MeasureText(text, scale)
}

func appendQuad(dst []Vertex, x, y, w, h, u0, v0, u1, v1 float32, c Color) []Vertex {
	return append(dst,
		Vertex{x, y, u0, v0, c},
		Vertex{x + w, y, u1, v0, c},
		Vertex{x + w, y + h, u1, v1, c},
		Vertex{x, y, u0, v0, c},
		Vertex{x + w, y + h, u1, v1, c},
		Vertex{x, y + h, u0, v1, c},
	)
}
