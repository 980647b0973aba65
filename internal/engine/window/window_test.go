package window

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestWindowFlags(t *testing.T) {
	base := windowFlags(Config{})
	for _, f := range []uint32{sdl.WINDOW_OPENGL, sdl.WINDOW_RESIZABLE, sdl.WINDOW_ALLOW_HIGHDPI} {
		if base&f == 0 {
			t.Errorf("flags %#x missing %#x", base, f)
		}
	}
	if base&sdl.WINDOW_FULLSCREEN_DESKTOP == sdl.WINDOW_FULLSCREEN_DESKTOP {
		t.Error("windowed config should not request fullscreen")
	}

	full := windowFlags(Config{Fullscreen: true})
	if full&sdl.WINDOW_FULLSCREEN_DESKTOP != sdl.WINDOW_FULLSCREEN_DESKTOP {
		t.Error("fullscreen config should request desktop fullscreen")
	}
}

func TestContextVersion(t *testing.T) {
	got := map[sdl.GLattr]int{}
	for _, a := range contextAttributes {
		got[a.attr] = a.value
	}
	if got[sdl.GL_CONTEXT_MAJOR_VERSION] != 4 || got[sdl.GL_CONTEXT_MINOR_VERSION] < 1 {
		t.Errorf("context version %d.%d, want at least 4.1",
			got[sdl.GL_CONTEXT_MAJOR_VERSION], got[sdl.GL_CONTEXT_MINOR_VERSION])
	}
	if got[sdl.GL_CONTEXT_PROFILE_MASK] != sdl.GL_CONTEXT_PROFILE_CORE {
		t.Error("core profile required")
	}
}
