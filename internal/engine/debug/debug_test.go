package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/penumbra/internal/engine/csm"
	"github.com/Faultbox/penumbra/pkg/math"
)

func TestBBoxLines(t *testing.T) {
	lines := BBoxLines(math.Vec3{}, math.Vec3{X: 1, Y: 2, Z: 3}, [3]float32{1, 0, 0})
	if len(lines) != BoxEdgeCount*2 {
		t.Fatalf("expected %d vertices, got %d", BoxEdgeCount*2, len(lines))
	}

	// Every edge is axis aligned with the box's extent along that axis
	for i := 0; i < len(lines); i += 2 {
		a, b := lines[i], lines[i+1]
		dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
		switch {
		case dx == 1 && dy == 0 && dz == 0:
		case dx == 0 && dy == 2 && dz == 0:
		case dx == 0 && dy == 0 && dz == 3:
		default:
			t.Errorf("edge %d is not a box edge: %+v -> %+v", i/2, a, b)
		}
		if a.R != 1 || a.G != 0 {
			t.Errorf("edge %d has wrong color", i/2)
		}
	}
}

func TestCornerLinesEdgeCount(t *testing.T) {
	var corners [8]math.Vec4
	for i := range corners {
		corners[i] = math.Vec4{float32(i), 0, 0, 1}
	}

	used := map[[2]float32]bool{}
	lines := CornerLines(corners, [3]float32{})
	for i := 0; i < len(lines); i += 2 {
		used[[2]float32{lines[i].X, lines[i+1].X}] = true
	}
	if len(used) != BoxEdgeCount {
		t.Errorf("expected %d distinct edges, got %d", BoxEdgeCount, len(used))
	}
}

func TestCascadeLines(t *testing.T) {
	view := csm.ViewParams{
		View:   math.LookAt(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{Y: 1}),
		FovY:   math.Radians(45),
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    200,
	}
	s := csm.DefaultSettings()
	frame := csm.PlanFrame(view, math.Vec3{Y: 1}, s)

	lines := CascadeLines(view, &frame)
	want := len(frame.Cascades) * 2 * BoxEdgeCount * 2
	if len(lines) != want {
		t.Errorf("expected %d vertices, got %d", want, len(lines))
	}

	empty := csm.Frame{}
	if got := CascadeLines(view, &empty); len(got) != 0 {
		t.Errorf("expected no lines for an empty frame, got %d", len(got))
	}
}

func TestGridLines(t *testing.T) {
	tests := []struct {
		divisions int
		want      int
	}{
		{divisions: 4, want: 20},
		{divisions: 1, want: 8},
		{divisions: 0, want: 8},
	}
	for _, tt := range tests {
		lines := GridLines(10, tt.divisions, 0, [3]float32{0.5, 0.5, 0.5})
		if len(lines) != tt.want {
			t.Errorf("GridLines(divisions=%d): expected %d vertices, got %d", tt.divisions, tt.want, len(lines))
		}
		for _, v := range lines {
			if v.X < -5 || v.X > 5 || v.Z < -5 || v.Z > 5 {
				t.Fatalf("vertex outside grid: %+v", v)
			}
		}
	}
}

func TestPixelsToImageFlips(t *testing.T) {
	// 1x2 image: bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := PixelsToImage(pixels, 1, 2)
	if err != nil {
		t.Fatalf("PixelsToImage: %v", err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); b == 0 || r != 0 {
		t.Error("expected top row to be blue")
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Error("expected bottom row to be red")
	}

	if _, err := PixelsToImage(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestParseImageFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ImageFormat
		wantErr bool
	}{
		{"png", PNG, false},
		{"", PNG, false},
		{"BMP", BMP, false},
		{"jpeg", PNG, true},
	}
	for _, tt := range tests {
		got, err := ParseImageFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseImageFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestCaptureFromPixels(t *testing.T) {
	pixels := make([]byte, 4*3*4)
	for i := range pixels {
		pixels[i] = 200
	}
	fixed := func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	tests := []struct {
		format ImageFormat
		decode func(*os.File) error
	}{
		{PNG, func(f *os.File) error { _, err := png.Decode(f); return err }},
		{BMP, func(f *os.File) error { _, err := bmp.Decode(f); return err }},
	}

	for _, tt := range tests {
		dir := filepath.Join(t.TempDir(), "shots")
		sc := NewScreenshotCapture(dir, "penumbra", tt.format)
		sc.now = fixed

		path, err := sc.CaptureFromPixels(pixels, 4, 3)
		if err != nil {
			t.Fatalf("CaptureFromPixels(%s): %v", tt.format.ext(), err)
		}
		if !strings.HasSuffix(path, "penumbra_2024-05-01_12-00-00.000."+tt.format.ext()) {
			t.Errorf("unexpected filename %s", path)
		}

		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if err := tt.decode(f); err != nil {
			t.Errorf("decoding %s: %v", path, err)
		}
		f.Close()
	}
}
