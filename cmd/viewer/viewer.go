package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/penumbra/internal/config"
	"github.com/Faultbox/penumbra/internal/engine/camera"
	"github.com/Faultbox/penumbra/internal/engine/csm"
	"github.com/Faultbox/penumbra/internal/engine/debug"
	"github.com/Faultbox/penumbra/internal/engine/editor"
	"github.com/Faultbox/penumbra/internal/engine/forward"
	"github.com/Faultbox/penumbra/internal/engine/framebuffer"
	"github.com/Faultbox/penumbra/internal/engine/hud"
	"github.com/Faultbox/penumbra/internal/engine/input"
	"github.com/Faultbox/penumbra/internal/engine/lighting"
	"github.com/Faultbox/penumbra/internal/engine/mesh"
	"github.com/Faultbox/penumbra/internal/engine/picking"
	"github.com/Faultbox/penumbra/internal/engine/scene"
	"github.com/Faultbox/penumbra/internal/engine/window"
	"github.com/Faultbox/penumbra/internal/logger"
	"github.com/Faultbox/penumbra/pkg/math"
)

const (
	defaultScenePath    = "scene.yaml"
	titleInterval       = 500 * time.Millisecond
	gridColorGray       = 0.35
	hudMargin           = 10
	sunStep             = 5
	newInstanceDistance = 5
	hudHelp             = "Up/Down select, Left/Right adjust, Shift coarse, [ ] PgUp PgDn sun, L/K light, N cube, F1 hide"
)

var selectionColor = [3]float32{1, 0.85, 0.1}

// viewer owns every subsystem and runs the frame loop.
type viewer struct {
	cfg *config.Config
	win *window.Window
	in  *input.Input
	log *zap.Logger

	cam     *camera.FlyCamera
	orbit   *camera.OrbitCamera
	sc      *scene.Scene
	shadows *csm.System
	fwd     *forward.Renderer
	meshes  []*mesh.GPUMesh

	hdr   *framebuffer.Framebuffer
	ldr   *framebuffer.Framebuffer
	tone  *framebuffer.Tonemapper
	lines *debug.LineRenderer
	hud   *hud.Renderer
	shots *debug.ScreenshotCapture
	ed    *editor.Editor

	selected *scene.Instance
	notice   notice

	showCascades bool
	showGrid     bool
	showHUD      bool
	captured     bool
	screenshot   bool

	fps       float32
	lastTitle time.Time
}

func newViewer(cfg *config.Config, win *window.Window) (*viewer, error) {
	v := &viewer{
		cfg: cfg,
		win: win,
		in:  input.New(),
		log: logger.Named("viewer"),
		cam: camera.NewFlyCamera(),
		sc:  scene.New("default"),
	}

	if err := v.loadModels(); err != nil {
		v.Close()
		return nil, err
	}
	v.loadScene(cfg.Scene.Path)

	// Shadow failures only disable shadows
	v.shadows = csm.New(cfg.Shadows.Settings(), csm.WithLogger(logger.Named("csm")))
	if err := v.shadows.Initialize(); err != nil {
		v.log.Warn("continuing without shadows", zap.Error(err))
	}

	var err error
	if v.fwd, err = forward.NewRenderer(logger.Named("forward")); err != nil {
		v.Close()
		return nil, err
	}
	v.fwd.Marker, _ = v.sc.Model("cube")

	w, h := win.DrawableSize()
	if v.hdr, err = framebuffer.NewWithFormat(w, h, framebuffer.HDR); err != nil {
		v.Close()
		return nil, err
	}
	if v.ldr, err = framebuffer.NewWithFormat(w, h, framebuffer.LDR); err != nil {
		v.Close()
		return nil, err
	}
	if v.tone, err = framebuffer.NewTonemapper(); err != nil {
		v.Close()
		return nil, err
	}
	v.tone.Exposure = cfg.Graphics.Exposure

	if v.lines, err = debug.NewLineRenderer(); err != nil {
		v.Close()
		return nil, err
	}
	if v.hud, err = hud.New(); err != nil {
		v.Close()
		return nil, err
	}
	v.showHUD = true
	format, err := debug.ParseImageFormat(cfg.Scene.ScreenshotFormat)
	if err != nil {
		v.log.Warn("falling back to PNG screenshots", zap.Error(err))
		format = debug.PNG
	}
	v.shots = debug.NewScreenshotCapture(cfg.Scene.ScreenshotDir, "penumbra", format)

	v.ed = editor.New(logger.Named("editor"), editor.ShadowProperties(v.shadows)...)
	v.ed.Add(editor.SunProperties(&v.sc.Sun)...)
	v.ed.Add(v.viewProperties()...)
	v.ed.Add(editor.InstanceProperties(func() *scene.Instance { return v.selected })...)

	v.cam.Pos = math.Vec3{X: 0, Y: 4, Z: 8}
	v.cam.LookAt(math.Vec3{Y: 1, Z: -10})
	return v, nil
}

// activeCamera is the orbit camera while orbiting, the fly camera otherwise.
func (v *viewer) activeCamera() camera.Camera {
	if v.orbit != nil {
		return v.orbit
	}
	return v.cam
}

// toggleOrbit switches between free flight and orbiting the selection, or
// the point ahead of the fly camera when nothing is selected.
func (v *viewer) toggleOrbit() {
	if v.orbit != nil {
		v.cam.Pos = v.orbit.Position()
		v.cam.LookAt(v.orbit.Center)
		v.orbit = nil
		return
	}

	o := camera.NewOrbitCamera()
	o.Center = v.cam.Pos.Add(v.cam.Front.Scale(o.Distance))
	if v.selected != nil {
		o.Center = v.selected.Position
	}
	o.LookFrom(v.cam.Pos)
	v.orbit = o
}

// loadModels uploads the built-in meshes and registers them by name.
func (v *viewer) loadModels() error {
	builtins := []struct {
		name string
		mesh *mesh.Mesh
	}{
		{"cube", mesh.Cube(1)},
		{"plane", mesh.Plane(400, 40)},
		{"sphere", mesh.Sphere(0.5, 16, 32)},
	}

	for _, b := range builtins {
		gpu, err := mesh.Upload(b.mesh)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", b.name, err)
		}
		v.meshes = append(v.meshes, gpu)
		v.sc.RegisterModel(&scene.Model{Name: b.name, Meshes: []scene.Drawable{gpu}})
	}
	v.log.Info("models registered", zap.Strings("models", v.sc.ModelNames()))
	return nil
}

// loadScene applies the scene at path, falling back to the built-in scene
// when the path is empty or unreadable.
func (v *viewer) loadScene(path string) {
	f := scene.DefaultFile()
	if path != "" {
		loaded, err := scene.LoadFile(path)
		switch {
		case err == nil:
			f = loaded
		case errors.Is(err, os.ErrNotExist):
			v.log.Warn("scene file not found, using default scene", zap.String("path", path))
		default:
			v.log.Error("failed to load scene, using default scene", zap.String("path", path), zap.Error(err))
		}
	}
	v.sc.Apply(f, v.log)
	v.log.Info("scene loaded",
		zap.String("name", v.sc.Name),
		zap.Int("instances", len(v.sc.Instances)),
		zap.Int("lights", v.sc.Lights.Len()),
	)
}

// viewProperties are the editor entries owned by the viewer itself.
func (v *viewer) viewProperties() []editor.Property {
	return []editor.Property{
		editor.FloatProperty("Exposure", 0.05, 0.05, 10,
			func() float32 { return v.tone.Exposure },
			func(f float32) { v.tone.Exposure = f }),
		editor.BoolProperty("Gamma correction",
			func() bool { return v.tone.GammaCorrect },
			func(b bool) { v.tone.GammaCorrect = b }),
		editor.BoolProperty("Cascade tint",
			func() bool { return v.fwd.Options.ShowCascades },
			func(b bool) { v.fwd.Options.ShowCascades = b }),
		editor.BoolProperty("Cascade wireframes",
			func() bool { return v.showCascades },
			func(b bool) { v.showCascades = b }),
		editor.BoolProperty("Light markers",
			func() bool { return v.fwd.Options.LightMarkers },
			func(b bool) { v.fwd.Options.LightMarkers = b }),
		editor.BoolProperty("Grid",
			func() bool { return v.showGrid },
			func(b bool) { v.showGrid = b }),
		editor.FloatProperty("Camera speed", 0.5, 0.5, 50,
			func() float32 { return v.cam.Speed },
			func(f float32) { v.cam.Speed = f }),
	}
}

// Run processes frames until the window is closed.
func (v *viewer) Run() {
	last := time.Now()
	for {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if v.in.Update() {
			return
		}
		if !v.handleEvents() {
			return
		}
		v.updateCamera(dt)
		v.renderFrame()
		v.updateTitle(dt)

		v.win.SwapBuffers()
	}
}

// handleEvents reacts to this frame's discrete events. Returns false to quit.
func (v *viewer) handleEvents() bool {
	for _, e := range v.in.Events() {
		switch e.Type {
		case input.EventQuit:
			return false

		case input.EventWindowResize:
			w, h := v.win.DrawableSize()
			v.hdr.Resize(w, h)
			v.ldr.Resize(w, h)
			v.log.Debug("resized", zap.Int32("width", w), zap.Int32("height", h))

		case input.EventMouseDown:
			switch {
			case e.Button == sdl.BUTTON_RIGHT:
				v.setCaptured(true)
			case e.Button == sdl.BUTTON_LEFT && !v.captured:
				v.pick(e.MouseX, e.MouseY)
			}

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_RIGHT {
				v.setCaptured(false)
			}

		case input.EventMouseWheel:
			if v.orbit != nil {
				v.orbit.HandleZoom(float32(e.Wheel))
			} else {
				v.cam.Speed = max(0.5, v.cam.Speed+float32(e.Wheel)*0.5)
			}

		case input.EventKeyDown:
			if !v.handleKey(e) {
				return false
			}
		}
	}
	return true
}

func (v *viewer) handleKey(e input.Event) bool {
	switch e.Key {
	case sdl.SCANCODE_ESCAPE:
		if v.captured {
			v.setCaptured(false)
			return true
		}
		return false
	case sdl.SCANCODE_TAB:
		v.setCaptured(!v.captured)
	case sdl.SCANCODE_UP:
		v.ed.Prev()
	case sdl.SCANCODE_DOWN:
		v.ed.Next()
	case sdl.SCANCODE_LEFT:
		v.adjust(-1, e.Shift)
	case sdl.SCANCODE_RIGHT:
		v.adjust(1, e.Shift)
	case sdl.SCANCODE_DELETE:
		v.removeSelected()
	case sdl.SCANCODE_LEFTBRACKET:
		v.sc.Sun.Rotate(-sunStep, 0)
	case sdl.SCANCODE_RIGHTBRACKET:
		v.sc.Sun.Rotate(sunStep, 0)
	case sdl.SCANCODE_PAGEUP:
		v.sc.Sun.Rotate(0, sunStep)
	case sdl.SCANCODE_PAGEDOWN:
		v.sc.Sun.Rotate(0, -sunStep)
	case sdl.SCANCODE_L:
		v.addLight()
	case sdl.SCANCODE_K:
		v.sc.Lights.Remove(v.sc.Lights.Len() - 1)
	case sdl.SCANCODE_N:
		v.addCube()
	case sdl.SCANCODE_O:
		v.toggleOrbit()
	case sdl.SCANCODE_F1:
		v.showHUD = !v.showHUD
	case sdl.SCANCODE_F5:
		v.saveScene()
	case sdl.SCANCODE_F6:
		v.saveConfig()
	case sdl.SCANCODE_F12:
		v.screenshot = true
	}
	return true
}

// adjust steps the selected editor property. A rejected change stays visible
// in the HUD; the editor has already logged it.
func (v *viewer) adjust(dir int, coarse bool) {
	if err := v.ed.Adjust(dir, coarse); err != nil {
		v.notice.show(err.Error(), time.Now())
	}
}

func (v *viewer) setCaptured(captured bool) {
	v.captured = captured
	v.win.SetMouseCaptured(captured)
}

func (v *viewer) updateCamera(dt float32) {
	if v.orbit != nil {
		if v.captured {
			dx, dy := v.in.MouseDelta()
			v.orbit.HandleDrag(float32(dx), float32(dy))
		}
		return
	}

	if v.captured {
		dx, dy := v.in.MouseDelta()
		v.cam.Look(float32(dx), float32(-dy))
	}
	v.cam.Move(camera.Movement{
		Forward: v.in.IsKeyDown(sdl.SCANCODE_W),
		Back:    v.in.IsKeyDown(sdl.SCANCODE_S),
		Left:    v.in.IsKeyDown(sdl.SCANCODE_A),
		Right:   v.in.IsKeyDown(sdl.SCANCODE_D),
		Up:      v.in.IsKeyDown(sdl.SCANCODE_SPACE),
		Down:    v.in.IsKeyDown(sdl.SCANCODE_LCTRL),
		Fast:    v.in.IsKeyDown(sdl.SCANCODE_LSHIFT),
	}, dt)
}

// addLight drops a point light at the camera.
func (v *viewer) addLight() {
	p := v.activeCamera().Position()
	if !v.sc.Lights.Add(lighting.NewPointLight(p.Array())) {
		v.log.Warn("point light limit reached", zap.Int("max", lighting.MaxPointLights))
	}
}

// addCube drops a cube on the ground where the fly camera looks, or places it
// in front of the camera when the ground is out of reach, and selects it.
func (v *viewer) addCube() {
	pos := v.cam.Pos.Add(v.cam.Front.Scale(newInstanceDistance))
	ray := picking.Ray{Origin: v.cam.Pos, Direction: v.cam.Front}
	if x, z, ok := ray.IntersectPlaneY(0); ok && v.cam.Pos.Distance(math.Vec3{X: x, Z: z}) < v.cfg.Graphics.Far/4 {
		pos = math.Vec3{X: x, Y: 0.5, Z: z}
	}
	inst, err := v.sc.AddInstance("cube", pos)
	if err != nil {
		v.log.Error("failed to add instance", zap.Error(err))
		return
	}
	v.selected = inst
}

// pick selects the nearest instance under the cursor. Mouse coordinates are
// in window points and get scaled to drawable pixels first.
func (v *viewer) pick(x, y int) {
	ww, wh := v.win.GetSize()
	dw, dh := v.win.DrawableSize()
	sx := float32(dw) / float32(max(ww, 1))
	sy := float32(dh) / float32(max(wh, 1))

	vp := v.viewParams()
	ray := picking.ScreenToRay(float32(x)*sx, float32(y)*sy, float32(dw), float32(dh),
		vp.Projection().Mul(vp.View).Inverse())

	idx := picking.Pick(ray, v.sc.Instances)
	if idx < 0 {
		v.selected = nil
		return
	}
	v.selected = v.sc.Instances[idx]
	v.log.Debug("instance selected",
		zap.Int("index", idx),
		zap.String("model", v.selected.Model.Name),
	)
}

func (v *viewer) removeSelected() {
	if v.selected == nil {
		return
	}
	for i, inst := range v.sc.Instances {
		if inst == v.selected {
			v.sc.RemoveInstance(i)
			break
		}
	}
	v.selected = nil
}

func (v *viewer) viewParams() csm.ViewParams {
	w, h := v.win.DrawableSize()
	g := v.cfg.Graphics
	return csm.ViewParams{
		View:   v.activeCamera().ViewMatrix(),
		FovY:   math.Radians(g.FOV),
		Aspect: float32(w) / float32(max(h, 1)),
		Near:   g.Near,
		Far:    g.Far,
	}
}

// renderFrame runs shadow pass, forward pass, debug lines and tonemap in
// that order.
func (v *viewer) renderFrame() {
	vp := v.viewParams()
	proj := vp.Projection()

	v.shadows.ShadowPass(vp, v.sc.Sun.Direction, v.sc.Casters())

	restore := v.hdr.BindWithViewport()
	v.fwd.Render(forward.View{View: vp.View, Projection: proj, Eye: v.activeCamera().Position()}, v.sc, v.shadows)
	v.drawDebugLines(vp, proj)
	restore()

	restore = v.ldr.BindWithViewport()
	v.tone.Resolve(v.hdr)
	if v.showHUD {
		v.drawHUD()
	}
	restore()

	w, h := v.win.DrawableSize()
	v.ldr.BlitToScreen(w, h)

	if v.screenshot {
		v.screenshot = false
		v.takeScreenshot()
	}
}

func (v *viewer) drawDebugLines(vp csm.ViewParams, proj math.Mat4) {
	var lines []debug.LineVertex
	if v.showGrid {
		c := float32(gridColorGray)
		lines = append(lines, debug.GridLines(100, 50, 0.01, [3]float32{c, c, c})...)
	}
	if v.showCascades {
		lines = append(lines, debug.CascadeLines(vp, v.shadows.Frame())...)
	}
	if v.selected != nil {
		if local, ok := v.selected.LocalBounds(); ok {
			box := picking.TransformAABB(local, v.selected.ModelMatrix())
			lines = append(lines, debug.BBoxLines(box.Min, box.Max, selectionColor)...)
		}
	}
	v.lines.Draw(lines, proj.Mul(vp.View))
}

// drawHUD lists the editor properties over the tonemapped image.
func (v *viewer) drawHUD() {
	header := fmt.Sprintf("%.0f fps  cascades %d  instances %d",
		v.fps, v.shadows.Settings().Cascades, len(v.sc.Instances))
	if v.selected != nil {
		header += "  selected " + v.selected.Model.Name
	}
	lines := []string{header, hudHelp}
	if text, ok := v.notice.active(time.Now()); ok {
		lines = append(lines, text)
	}
	editorRow := len(lines)
	lines = append(lines, v.ed.Lines()...)

	v.hud.Panel(hudMargin, hudMargin, lines, v.ed.Cursor()+editorRow, hud.DefaultPanelStyle())
	w, h := v.ldr.Size()
	v.hud.Flush(w, h)
}

func (v *viewer) takeScreenshot() {
	w, h := v.ldr.Size()
	path, err := v.shots.CaptureFromPixels(v.ldr.ReadPixels(), int(w), int(h))
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *viewer) saveScene() {
	path := v.cfg.Scene.Path
	if path == "" {
		path = defaultScenePath
	}
	if err := v.sc.Snapshot().SaveFile(path); err != nil {
		v.log.Error("failed to save scene", zap.String("path", path), zap.Error(err))
		return
	}
	v.log.Info("scene saved", zap.String("path", path))
}

func (v *viewer) saveConfig() {
	v.cfg.Shadows.FromSettings(v.shadows.Settings())
	v.cfg.Graphics.Exposure = v.tone.Exposure
	if err := v.cfg.Save(); err != nil {
		v.log.Error("failed to save config", zap.Error(err))
		return
	}
	v.log.Info("config saved", zap.String("dir", config.ConfigDir()))
}

// updateTitle shows the frame rate and the selected editor property.
func (v *viewer) updateTitle(dt float32) {
	if dt > 0 {
		v.fps = v.fps*0.9 + 0.1/dt
	}
	if time.Since(v.lastTitle) < titleInterval {
		return
	}
	v.lastTitle = time.Now()
	v.win.SetTitle(fmt.Sprintf("%s | %.0f fps | %s", windowTitle, v.fps, v.ed.Status()))
}

// Close releases every GPU resource. Safe on a partially built viewer.
func (v *viewer) Close() {
	if v.shadows != nil {
		v.shadows.Terminate()
	}
	if v.fwd != nil {
		v.fwd.Destroy()
	}
	if v.lines != nil {
		v.lines.Destroy()
	}
	if v.hud != nil {
		v.hud.Destroy()
	}
	if v.tone != nil {
		v.tone.Destroy()
	}
	if v.ldr != nil {
		v.ldr.Destroy()
	}
	if v.hdr != nil {
		v.hdr.Destroy()
	}
	for _, m := range v.meshes {
		m.Destroy()
	}
	v.meshes = nil
}
