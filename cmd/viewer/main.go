// Package main is the penumbra scene viewer: a forward renderer with
// cascaded shadow maps, a fly camera and a keyboard property editor.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/penumbra/internal/config"
	"github.com/Faultbox/penumbra/internal/engine/window"
	"github.com/Faultbox/penumbra/internal/logger"
)

const windowTitle = "Penumbra"

func main() {
	// Parse CLI flags
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Penumbra Viewer ===")

	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		logger.Error("window creation failed", zap.Error(err))
		os.Exit(1)
	}
	defer win.Close()

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		logger.Error("OpenGL init failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Drawable size differs from window size on HiDPI displays
	drawableW, drawableH := win.DrawableSize()
	if ww, _ := win.GetSize(); int(drawableW) != ww {
		logger.Info("HiDPI detected",
			zap.Int("window", ww),
			zap.Int32("drawable", drawableW),
			zap.Float32("scale", float32(drawableW)/float32(ww)),
		)
	}
	gl.Viewport(0, 0, drawableW, drawableH)

	v, err := newViewer(cfg, win)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	v.Run()

	logger.Info("viewer closed normally")
}
