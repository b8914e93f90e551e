package overlay

import "golang.org/x/image/math/f32"

// Rect matches D2D1_RECT_F.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// Ellipse matches D2D1_ELLIPSE.
type Ellipse struct {
	Center           f32.Vec2
	RadiusX, RadiusY float32
}

// rectAt builds a rectangle from its top-left corner and size.
// Negative sizes pass through untouched.
func rectAt(x, y, width, height float32) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

func circleAt(cx, cy, radius float32) Ellipse {
	return Ellipse{Center: f32.Vec2{cx, cy}, RadiusX: radius, RadiusY: radius}
}
