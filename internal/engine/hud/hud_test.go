package hud

import (
	"testing"
)

func TestAtlasGlyphs(t *testing.T) {
	a := NewAtlas()
	if a.GlyphW != 7 || a.GlyphH != 13 {
		t.Fatalf("glyph size = %dx%d, want 7x13", a.GlyphW, a.GlyphH)
	}

	coverage := func(r rune) int {
		x, y := a.cell(r)
		n := 0
		for py := y; py < y+a.GlyphH; py++ {
			for px := x; px < x+a.GlyphW; px++ {
				if a.Image.AlphaAt(px, py).A != 0 {
					n++
				}
			}
		}
		return n
	}

	if coverage(' ') != 0 {
		t.Error("space should be blank")
	}
	for _, r := range "AZaz09#~" {
		if coverage(r) == 0 {
			t.Errorf("glyph %q is blank", r)
		}
	}
}

func TestAtlasUV(t *testing.T) {
	a := NewAtlas()

	u0, v0, u1, v1 := a.UV('A')
	if u0 < 0 || v0 < 0 || u1 > 1 || v1 > 1 || u0 >= u1 || v0 >= v1 {
		t.Errorf("UV('A') = %v %v %v %v, want a rectangle inside [0,1]", u0, v0, u1, v1)
	}

	fu0, fv0, _, _ := a.UV('?')
	gu0, gv0, _, _ := a.UV('é')
	if fu0 != gu0 || fv0 != gv0 {
		t.Error("runes outside the atlas should fall back to '?'")
	}
}

func TestMeasureText(t *testing.T) {
	a := NewAtlas()
	tests := []struct {
		text  string
		scale float32
		w, h  float32
	}{
		{"", 1, 0, 0},
		{"abc", 1, 21, 13},
		{"abc", 2, 42, 26},
		{"ab\nlonger\nc", 1, 42, 39},
	}
	for _, tt := range tests {
		w, h := a.MeasureText(tt.text, tt.scale)
		if w != tt.w || h != tt.h {
			t.Errorf("MeasureText(%q, %v) = %v, %v, want %v, %v", tt.text, tt.scale, w, h, tt.w, tt.h)
		}
	}
}

func TestBatchText(t *testing.T) {
	b := NewBatch(NewAtlas())
	b.Text(10, 20, "a b\nc", 1, White)

	// spaces and newlines emit no quads
	if got := len(b.Glyphs); got != 3*6 {
		t.Fatalf("glyph vertices = %d, want 18", got)
	}
	if v := b.Glyphs[0]; v.X != 10 || v.Y != 20 {
		t.Errorf("first glyph at %v,%v, want 10,20", v.X, v.Y)
	}
	if v := b.Glyphs[6]; v.X != 24 {
		t.Errorf("second glyph x = %v, want 24", v.X)
	}
	if v := b.Glyphs[12]; v.X != 10 || v.Y != 33 {
		t.Errorf("third glyph at %v,%v, want 10,33", v.X, v.Y)
	}

	b.Reset()
	if !b.Empty() {
		t.Error("batch should be empty after Reset")
	}
}

func TestPanel(t *testing.T) {
	b := NewBatch(NewAtlas())
	st := DefaultPanelStyle()

	w, h := b.Panel(0, 0, []string{"short", "a longer line"}, 1, st)
	if want := float32(13*7) + 2*st.Padding; w != want {
		t.Errorf("width = %v, want %v", w, want)
	}
	if want := float32(2*13) + 2*st.Padding; h != want {
		t.Errorf("height = %v, want %v", h, want)
	}

	// background, four border edges, selection bar
	if got := len(b.Quads); got != 6*6 {
		t.Errorf("quad vertices = %d, want 36", got)
	}
	last := b.Glyphs[len(b.Glyphs)-1]
	if last.Color != st.Highlight {
		t.Errorf("selected line color = %v, want highlight", last.Color)
	}

	b.Reset()
	if w, h := b.Panel(0, 0, nil, -1, st); w != 0 || h != 0 || !b.Empty() {
		t.Error("empty panel should queue nothing")
	}
}
