// Package display lists the connected monitors so the harness can report
// where the overlay window sits.
package display

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// Display is a physical monitor.
type Display struct {
	Index   int
	ID      string
	Bounds  image.Rectangle
	Primary bool
}

func (d Display) String() string {
	return fmt.Sprintf("%s %dx%d@%d,%d", d.ID, d.Bounds.Dx(), d.Bounds.Dy(), d.Bounds.Min.X, d.Bounds.Min.Y)
}

// List returns currently connected displays. ID is "display-0", "display-1", ...
func List() []Display {
	return list(screenshot.NumActiveDisplays(), screenshot.GetDisplayBounds)
}

func list(n int, bounds func(int) image.Rectangle) []Display {
	if n <= 0 {
		return nil
	}
	out := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Display{
			Index:   i,
			ID:      fmt.Sprintf("display-%d", i),
			Bounds:  bounds(i),
			Primary: i == 0,
		})
	}
	return out
}

// Summary renders displays for a HUD line, e.g. "2 displays, primary 1920x1080".
func Summary(ds []Display) string {
	switch len(ds) {
	case 0:
		return "no displays"
	case 1:
		return fmt.Sprintf("1 display, %dx%d", ds[0].Bounds.Dx(), ds[0].Bounds.Dy())
	}
	return fmt.Sprintf("%d displays, primary %dx%d", len(ds), ds[0].Bounds.Dx(), ds[0].Bounds.Dy())
}
