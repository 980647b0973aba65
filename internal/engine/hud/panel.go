package hud

// PanelStyle controls how Panel lays out a list of lines.
type PanelStyle struct {
	Scale      float32
	Padding    float32
	Background Color
	Border     Color
	Text       Color
	Highlight  Color
	Selection  Color
}

// DefaultPanelStyle is a translucent dark panel with white text.
func DefaultPanelStyle() PanelStyle {
	return PanelStyle{
		Scale:      1,
		Padding:    6,
		Background: RGBA(16, 18, 24, 190),
		Border:     RGBA(90, 96, 110, 255),
		Text:       White,
		Highlight:  Yellow,
		Selection:  RGBA(60, 70, 100, 200),
	}
}

// Panel queues a boxed list of lines at (x, y). The line at selected is
// highlighted; pass -1 for none. Returns the panel size.
func (b *Batch) Panel(x, y float32, lines []string, selected int, st PanelStyle) (w, h float32) {
	if len(lines) == 0 {
		return 0, 0
	}

	lineH := float32(b.atlas.GlyphH) * st.Scale
	for _, l := range lines {
		lw, _ := b.MeasureText(l, st.Scale)
		w = max(w, lw)
	}
	w += st.Padding * 2
	h = lineH*float32(len(lines)) + st.Padding*2

	b.Rect(x, y, w, h, st.Background)
	b.RectOutline(x, y, w, h, 1, st.Border)

	ty := y + st.Padding
	for i, l := range lines {
		c := st.Text
		if i == selected {
			b.Rect(x+1, ty, w-2, lineH, st.Selection)
			c = st.Highlight
		}
		b.Text(x+st.Padding, ty, l, st.Scale, c)
		ty += lineH
	}
	return w, h
}
