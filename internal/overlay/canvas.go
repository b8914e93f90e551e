package overlay

import "golang.org/x/image/math/f32"

// Canvas is the ready render context: factories, text format and a render
// target fixed at the window's client size when it was created.
//
// Frame bracket misuse (a second BeginFrame, EndFrame without BeginFrame, any
// call on a closed or nil Canvas) panics: there is nothing sensible to fall
// back to.
type Canvas struct {
	factory factory
	text    textFactory
	format  releaser
	target  renderTarget

	width, height uint32
	inFrame       bool
	closed        bool
}

// Size returns the render target size in pixels.
func (c *Canvas) Size() (width, height uint32) {
	c.mustBeOpen("Size")
	return c.width, c.height
}

// InFrame reports whether a BeginFrame is waiting for its EndFrame.
func (c *Canvas) InFrame() bool { return c != nil && c.inFrame }

// BeginFrame opens the drawing bracket.
func (c *Canvas) BeginFrame() {
	c.mustBeOpen("BeginFrame")
	if c.inFrame {
		panic("overlay: BeginFrame while a frame is already open")
	}
	c.target.BeginDraw()
	c.inFrame = true
}

// ClearFrame fills the target with full transparency.
func (c *Canvas) ClearFrame() {
	c.mustBeOpen("ClearFrame")
	if !c.inFrame {
		panic("overlay: ClearFrame outside BeginFrame/EndFrame")
	}
	c.target.Clear(Transparent.Float())
}

// EndFrame closes the bracket and presents. The bracket is closed even when
// the device reports a failure, which comes back as *DrawError.
func (c *Canvas) EndFrame() error {
	c.mustBeOpen("EndFrame")
	if !c.inFrame {
		panic("overlay: EndFrame without BeginFrame")
	}
	c.inFrame = false
	if err := c.target.EndDraw(); err != nil {
		return drawErr(OpEndFrame, ErrDraw, err)
	}
	return nil
}

// DrawText draws text with its layout box's top-left corner at (x, y). The
// color defaults to opaque white.
func (c *Canvas) DrawText(x, y float32, text string, col ...Color) error {
	c.mustBeOpen("DrawText")
	clr := White
	if len(col) > 0 {
		clr = col[0]
	}
	if !c.inFrame {
		return drawErr(OpText, ErrNoFrame, nil)
	}
	layout, err := c.text.CreateTextLayout(text, c.format, float32(c.width), float32(c.height))
	if err != nil {
		return drawErr(OpText, ErrTextLayout, err)
	}
	defer layout.Release()

	return c.paint(OpText, clr, func(b releaser) {
		c.target.DrawTextLayout(f32.Vec2{x, y}, layout, b)
	})
}

// DrawRectangleOutline strokes the rectangle whose top-left corner is (x, y).
func (c *Canvas) DrawRectangleOutline(x, y, width, height, stroke float32, col Color) error {
	c.mustBeOpen("DrawRectangleOutline")
	r := rectAt(x, y, width, height)
	return c.paint(OpRectangle, col, func(b releaser) {
		c.target.DrawRectangle(r, b, stroke)
	})
}

// FillRectangle paints the rectangle whose top-left corner is (x, y).
func (c *Canvas) FillRectangle(x, y, width, height float32, col Color) error {
	c.mustBeOpen("FillRectangle")
	r := rectAt(x, y, width, height)
	return c.paint(OpRectangle, col, func(b releaser) {
		c.target.FillRectangle(r, b)
	})
}

// DrawCircleOutline strokes a circle centered on (cx, cy).
func (c *Canvas) DrawCircleOutline(cx, cy, radius, stroke float32, col Color) error {
	c.mustBeOpen("DrawCircleOutline")
	e := circleAt(cx, cy, radius)
	return c.paint(OpCircle, col, func(b releaser) {
		c.target.DrawEllipse(e, b, stroke)
	})
}

// FillCircle paints a disc centered on (cx, cy).
func (c *Canvas) FillCircle(cx, cy, radius float32, col Color) error {
	c.mustBeOpen("FillCircle")
	e := circleAt(cx, cy, radius)
	return c.paint(OpCircle, col, func(b releaser) {
		c.target.FillEllipse(e, b)
	})
}

// DrawLine strokes a segment from (x0, y0) to (x1, y1).
func (c *Canvas) DrawLine(x0, y0, x1, y1, stroke float32, col Color) error {
	c.mustBeOpen("DrawLine")
	from, to := f32.Vec2{x0, y0}, f32.Vec2{x1, y1}
	return c.paint(OpLine, col, func(b releaser) {
		c.target.DrawLine(from, to, b, stroke)
	})
}

// paint makes a brush, issues one draw call with it and releases it.
func (c *Canvas) paint(op Op, col Color, draw func(brush releaser)) error {
	if !c.inFrame {
		return drawErr(op, ErrNoFrame, nil)
	}
	brush, err := c.target.CreateSolidBrush(col.Float())
	if err != nil {
		return drawErr(op, ErrBrush, err)
	}
	defer brush.Release()
	draw(brush)
	return nil
}

// Close leaves the window blank with one begin/clear/end bracket, then
// releases the render target, text format and both factories. An open frame
// is ended first. Subsequent calls do nothing.
func (c *Canvas) Close() error {
	if c == nil || c.closed {
		return nil
	}
	var err error
	if c.inFrame {
		err = c.EndFrame()
	}
	c.BeginFrame()
	c.ClearFrame()
	if endErr := c.EndFrame(); endErr != nil {
		err = endErr
	}

	c.target.Release()
	c.format.Release()
	c.text.Release()
	c.factory.Release()
	c.target, c.format, c.text, c.factory = nil, nil, nil, nil
	c.closed = true
	return err
}

func (c *Canvas) mustBeOpen(op string) {
	if c == nil {
		panic("overlay: " + op + " before StartDrawing")
	}
	if c.closed {
		panic("overlay: " + op + " on closed canvas")
	}
}
