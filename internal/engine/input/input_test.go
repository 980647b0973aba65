package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Type: EventQuit}, true},
		{
			"resize",
			&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 800, Data2: 600},
			Event{Type: EventWindowResize, Width: 800, Height: 600},
			true,
		},
		{"window focus", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED}, Event{}, false},
		{
			"shifted key down",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_RIGHT, Mod: sdl.KMOD_LSHIFT}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_RIGHT, Shift: true},
			true,
		},
		{"key repeat", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}}, Event{}, false},
		{
			"key up",
			&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}},
			Event{Type: EventKeyUp, Key: sdl.SCANCODE_W},
			true,
		},
		{
			"motion",
			&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10, Y: 20, XRel: -3, YRel: 4},
			Event{Type: EventMouseMove, MouseX: 10, MouseY: 20, RelX: -3, RelY: 4},
			true,
		},
		{"wheel", &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: -1}, Event{Type: EventMouseWheel, Wheel: -1}, true},
		{
			"left click",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 5, Y: 6},
			Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 5, MouseY: 6},
			true,
		},
		{
			"right release",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_RIGHT},
			Event{Type: EventMouseUp, Button: sdl.BUTTON_RIGHT},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.event)
			if ok != tt.ok || got != tt.want {
				t.Errorf("translate() = %+v, %v, want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFrameQueries(t *testing.T) {
	in := New()
	in.events = append(in.events,
		Event{Type: EventMouseMove, RelX: 2, RelY: -1},
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_F12},
		Event{Type: EventMouseMove, RelX: 3, RelY: 5},
	)
	in.keys = make([]uint8, sdl.NUM_SCANCODES)
	in.keys[sdl.SCANCODE_W] = 1

	if dx, dy := in.MouseDelta(); dx != 5 || dy != 4 {
		t.Errorf("MouseDelta() = %d, %d, want 5, 4", dx, dy)
	}
	if !in.IsKeyPressed(sdl.SCANCODE_F12) || in.IsKeyPressed(sdl.SCANCODE_F5) {
		t.Error("IsKeyPressed should only report keys pressed this frame")
	}
	if !in.IsKeyDown(sdl.SCANCODE_W) || in.IsKeyDown(sdl.SCANCODE_S) {
		t.Error("IsKeyDown should follow the keyboard state")
	}
}
