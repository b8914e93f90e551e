// Package scene turns configured items into canvas draw calls.
package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"NvOverlay/internal/config"
	"NvOverlay/internal/overlay"

	"golang.org/x/image/colornames"
)

// Drawer is the part of *overlay.Canvas a scene draws with.
type Drawer interface {
	DrawText(x, y float32, text string, c ...overlay.Color) error
	DrawRectangleOutline(x, y, width, height, stroke float32, c overlay.Color) error
	FillRectangle(x, y, width, height float32, c overlay.Color) error
	DrawCircleOutline(cx, cy, radius, stroke float32, c overlay.Color) error
	FillCircle(cx, cy, radius float32, c overlay.Color) error
	DrawLine(x0, y0, x1, y1, stroke float32, c overlay.Color) error
}

var _ Drawer = (*overlay.Canvas)(nil)

// Item is a config item with its color resolved.
type Item struct {
	config.Item
	color overlay.Color
}

// Compile resolves colors once so the frame loop does no parsing.
func Compile(items []config.Item) ([]Item, error) {
	out := make([]Item, 0, len(items))
	for i, it := range items {
		c, err := ParseColor(it.Color)
		if err != nil {
			return nil, fmt.Errorf("scene[%d]: %w", i, err)
		}
		out = append(out, Item{Item: it, color: c})
	}
	return out, nil
}

// Draw issues every item in order. One failing item does not stop the rest;
// all failures are joined.
func Draw(d Drawer, items []Item) error {
	var errs []error
	for i, it := range items {
		if err := drawItem(d, it); err != nil {
			errs = append(errs, fmt.Errorf("scene[%d] %s: %w", i, it.Kind, err))
		}
	}
	return errors.Join(errs...)
}

func drawItem(d Drawer, it Item) error {
	switch it.Kind {
	case "text":
		return d.DrawText(it.X, it.Y, it.Text, it.color)
	case "rect":
		return d.DrawRectangleOutline(it.X, it.Y, it.Width, it.Height, it.Stroke, it.color)
	case "fillrect":
		return d.FillRectangle(it.X, it.Y, it.Width, it.Height, it.color)
	case "circle":
		return d.DrawCircleOutline(it.X, it.Y, it.Radius, it.Stroke, it.color)
	case "fillcircle":
		return d.FillCircle(it.X, it.Y, it.Radius, it.color)
	case "line":
		return d.DrawLine(it.X, it.Y, it.X2, it.Y2, it.Stroke, it.color)
	default:
		return fmt.Errorf("unknown kind %q", it.Kind)
	}
}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa or an SVG color name. Empty is white.
func ParseColor(s string) (overlay.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return overlay.White, nil
	}
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[s]
		if !ok {
			return overlay.Color{}, fmt.Errorf("unknown color %q", s)
		}
		return overlay.FromColor(c), nil
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return overlay.Color{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return overlay.Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return overlay.RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
