package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"NvOverlay/internal/config"
	"NvOverlay/internal/display"
	"NvOverlay/internal/logger"
	"NvOverlay/internal/overlay"
	"NvOverlay/internal/scene"
	"NvOverlay/internal/stats"
)

func init() {
	// The D2D factory is single-threaded; keep every call on the main thread.
	runtime.LockOSThread()
}

func main() {
	defer logger.Close()
	if err := run(); err != nil {
		logger.Error("nvoverlay", "err", err)
		logger.Close()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	items, err := scene.Compile(cfg.Scene)
	if err != nil {
		return fmt.Errorf("config scene: %w", err)
	}

	displays := display.List()
	for _, d := range displays {
		logger.Debug("display", "display", d.String(), "primary", d.Primary)
	}

	ov := overlay.New(overlay.Options{FontFamily: cfg.Font.Family, FontSize: cfg.Font.Size})
	defer func() {
		if err := ov.Close(); err != nil {
			logger.Warn("overlay close", "err", err)
		}
	}()

	if err := ov.Initialize(); err != nil {
		if errors.Is(err, overlay.ErrWindowNotFound) {
			return fmt.Errorf("is the GeForce Experience overlay running? %w", err)
		}
		return err
	}
	logger.Info("overlay window styled", "hwnd", fmt.Sprintf("%#x", ov.Handle()))

	canvas, err := ov.StartDrawing()
	if err != nil {
		return err
	}
	w, h := canvas.Size()
	logger.Info("drawing", "width", w, "height", h, "font", cfg.Font.Family, "size", cfg.Font.Size, "fps", cfg.Render.FPS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &renderer{
		canvas:   canvas,
		items:    items,
		displays: display.Summary(displays),
	}
	if cfg.Render.HUD {
		r.hud = stats.NewSampler(time.Second)
	}
	return r.loop(ctx, time.Second/time.Duration(cfg.Render.FPS))
}
