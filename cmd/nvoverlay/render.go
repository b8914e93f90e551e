package main

import (
	"context"
	"time"

	"NvOverlay/internal/logger"
	"NvOverlay/internal/overlay"
	"NvOverlay/internal/scene"
	"NvOverlay/internal/stats"
)

const (
	hudX, hudY    = 10, 10
	hudLineHeight = 22
)

// hudColor is translucent green.
var hudColor = overlay.RGBA(0, 255, 128, 200)

type renderer struct {
	canvas   *overlay.Canvas
	items    []scene.Item
	hud      *stats.Sampler
	displays string

	frames     int
	lastErrLog time.Time
}

// loop draws one frame per tick until ctx is done.
func (r *renderer) loop(ctx context.Context, every time.Duration) error {
	log := logger.With("render")
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("stopping", "frames", r.frames)
			return nil
		case <-ticker.C:
			if err := r.frame(); err != nil {
				// At most one warning every 5s.
				if time.Since(r.lastErrLog) > 5*time.Second {
					log.Warn("frame", "err", err)
					r.lastErrLog = time.Now()
				}
			}
		}
	}
}

func (r *renderer) frame() error {
	c := r.canvas
	c.BeginFrame()
	c.ClearFrame()
	drawErr := scene.Draw(c, r.items)
	if r.hud != nil {
		_, h := c.Size()
		lines := append(r.hud.Lines(), r.displays)
		for i, line := range lines {
			y := float32(h) - hudY - float32(len(lines)-i)*hudLineHeight
			if err := c.DrawText(hudX, y, line, hudColor); err != nil && drawErr == nil {
				drawErr = err
			}
		}
	}
	r.frames++
	if err := c.EndFrame(); err != nil {
		return err
	}
	return drawErr
}
