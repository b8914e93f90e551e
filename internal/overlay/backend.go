package overlay

import "golang.org/x/image/math/f32"

// Handle is an OS window handle. Zero means no window.
type Handle uintptr

// backend is the windowing and graphics surface the overlay drives.
// Errors carry the raw OS status (syscall.Errno or HRESULT); the overlay
// translates them into its own error kinds.
type backend interface {
	FindWindow(class, title string) (Handle, error)
	ExStyle(h Handle) (uint32, error)
	SetExStyle(h Handle, style uint32) error
	ExtendFrame(h Handle) error
	SetLayeredAttributes(h Handle, colorKey uint32, alpha uint8) error
	SetTopmost(h Handle) error
	Show(h Handle) error
	ClientSize(h Handle) (width, height uint32, err error)

	NewFactory() (factory, error)
	NewTextFactory() (textFactory, error)
}

type releaser interface {
	Release()
}

type factory interface {
	releaser
	CreateRenderTarget(h Handle, width, height uint32) (renderTarget, error)
}

type textFactory interface {
	releaser
	CreateTextFormat(family string, size float32, locale string) (releaser, error)
	CreateTextLayout(text string, format releaser, maxWidth, maxHeight float32) (releaser, error)
}

type renderTarget interface {
	releaser
	BeginDraw()
	Clear(c ColorF)
	EndDraw() error
	CreateSolidBrush(c ColorF) (releaser, error)

	DrawRectangle(r Rect, brush releaser, stroke float32)
	FillRectangle(r Rect, brush releaser)
	DrawEllipse(e Ellipse, brush releaser, stroke float32)
	FillEllipse(e Ellipse, brush releaser)
	DrawLine(from, to f32.Vec2, brush releaser, stroke float32)
	DrawTextLayout(origin f32.Vec2, layout, brush releaser)
}
