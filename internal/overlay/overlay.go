// Package overlay hijacks the NVIDIA GeForce overlay window and draws into it
// with Direct2D.
//
// Typical use:
//
//	ov := overlay.New(overlay.Options{FontFamily: "Calibri", FontSize: 18})
//	defer ov.Close()
//	if err := ov.Initialize(); err != nil { ... }
//	c, err := ov.StartDrawing()
//	...
//	c.BeginFrame()
//	c.ClearFrame()
//	c.DrawText(10, 30, "hello")
//	c.EndFrame()
//
// Nothing here is safe for concurrent use; drive it from one locked OS thread.
package overlay

const (
	// TargetClass and TargetTitle identify the GeForce Experience in-game overlay.
	TargetClass = "CEF-OSC-WIDGET"
	TargetTitle = "NVIDIA GeForce Overlay"

	// Locale is the fixed text format locale.
	Locale = "en-us"
)

const (
	wsExLayered     = 0x00080000
	wsExTransparent = 0x00000020 // click-through

	layeredColorKey = 0x000000 // black
	layeredAlpha    = 0xFF
)

// Options parameterizes the text format.
type Options struct {
	FontFamily string
	FontSize   float32
}

// Overlay owns the hijacked window and, once StartDrawing succeeds, its Canvas.
type Overlay struct {
	opts   Options
	be     backend
	hwnd   Handle
	canvas *Canvas
}

// New returns an Overlay for the current platform. No OS calls are made yet.
func New(opts Options) *Overlay {
	return newOverlay(opts, newBackend())
}

func newOverlay(opts Options, be backend) *Overlay {
	return &Overlay{opts: opts, be: be}
}

// Options returns the construction options.
func (o *Overlay) Options() Options { return o.opts }

// Handle returns the located window, or zero before Initialize succeeds.
func (o *Overlay) Handle() Handle { return o.hwnd }

// Initialize locates the overlay window and restyles it into a transparent,
// click-through, topmost layered window. Errors are *WindowError.
func (o *Overlay) Initialize() error {
	h, err := o.be.FindWindow(TargetClass, TargetTitle)
	if err != nil {
		return windowErr(OpFind, ErrWindowNotFound, err)
	}
	if h == 0 {
		return windowErr(OpFind, ErrWindowNotFound, nil)
	}
	if err := styleWindow(o.be, h); err != nil {
		return err
	}
	o.hwnd = h
	return nil
}

// styleWindow runs the styling steps in order; the first failure wins.
func styleWindow(be backend, h Handle) error {
	style, err := be.ExStyle(h)
	if err != nil {
		return windowErr(OpGetStyle, ErrGetStyle, err)
	}
	if err := be.SetExStyle(h, style|wsExLayered|wsExTransparent); err != nil {
		return windowErr(OpSetStyle, ErrSetStyle, err)
	}
	if err := be.ExtendFrame(h); err != nil {
		return windowErr(OpExtendFrame, ErrExtendFrame, err)
	}
	if err := be.SetLayeredAttributes(h, layeredColorKey, layeredAlpha); err != nil {
		return windowErr(OpLayered, ErrLayeredAttributes, err)
	}
	if err := be.SetTopmost(h); err != nil {
		return windowErr(OpWindowPos, ErrWindowPos, err)
	}
	if err := be.Show(h); err != nil {
		return windowErr(OpShow, ErrShowWindow, err)
	}
	return nil
}

// StartDrawing builds the render context against the window's current client
// area. Either every resource is created or none is kept. Errors are
// *GraphicsError. A second call returns the existing Canvas.
func (o *Overlay) StartDrawing() (*Canvas, error) {
	if o.canvas != nil && !o.canvas.closed {
		return o.canvas, nil
	}
	if o.hwnd == 0 {
		return nil, graphicsErr(OpStart, ErrNotInitialized, nil)
	}

	var created []releaser
	fail := func(op Op, sentinel, cause error) (*Canvas, error) {
		for i := len(created) - 1; i >= 0; i-- {
			created[i].Release()
		}
		return nil, graphicsErr(op, sentinel, cause)
	}

	fac, err := o.be.NewFactory()
	if err != nil {
		return fail(OpFactory, ErrFactory, err)
	}
	created = append(created, fac)

	tf, err := o.be.NewTextFactory()
	if err != nil {
		return fail(OpTextFactory, ErrTextFactory, err)
	}
	created = append(created, tf)

	format, err := tf.CreateTextFormat(o.opts.FontFamily, o.opts.FontSize, Locale)
	if err != nil {
		return fail(OpTextFormat, ErrTextFormat, err)
	}
	created = append(created, format)

	w, h, err := o.be.ClientSize(o.hwnd)
	if err != nil {
		return fail(OpClientRect, ErrClientRect, err)
	}

	target, err := fac.CreateRenderTarget(o.hwnd, w, h)
	if err != nil {
		return fail(OpRenderTarget, ErrRenderTarget, err)
	}

	o.canvas = &Canvas{
		factory: fac,
		text:    tf,
		format:  format,
		target:  target,
		width:   w,
		height:  h,
	}
	return o.canvas, nil
}

// Canvas returns the canvas built by StartDrawing, or nil.
func (o *Overlay) Canvas() *Canvas {
	if o.canvas == nil || o.canvas.closed {
		return nil
	}
	return o.canvas
}

// Close blanks the window and releases every graphics resource. It is a no-op
// when StartDrawing never succeeded and safe to call more than once.
func (o *Overlay) Close() error {
	if o.canvas == nil {
		return nil
	}
	return o.canvas.Close()
}
