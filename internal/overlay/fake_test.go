package overlay

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/f32"
)

// fakeBackend records every call and fails the ones listed in failOn.
type fakeBackend struct {
	hwnd    Handle
	style   uint32
	width   uint32
	height  uint32
	failOn  map[string]error
	calls   []string
	live    map[string]int // resource kind -> outstanding references
	brushes []ColorF
}

func newFake() *fakeBackend {
	return &fakeBackend{
		hwnd:   0x1234,
		style:  0x100,
		width:  1920,
		height: 1080,
		failOn: map[string]error{},
		live:   map[string]int{},
	}
}

func (f *fakeBackend) record(format string, args ...any) error {
	call := fmt.Sprintf(format, args...)
	f.calls = append(f.calls, call)
	name, _, _ := strings.Cut(call, "(")
	return f.failOn[name]
}

func (f *fakeBackend) names() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i], _, _ = strings.Cut(c, "(")
	}
	return out
}

func (f *fakeBackend) outstanding() int {
	n := 0
	for _, v := range f.live {
		n += v
	}
	return n
}

func (f *fakeBackend) acquire(kind string) *fakeResource {
	f.live[kind]++
	return &fakeResource{kind: kind, be: f}
}

func (f *fakeBackend) FindWindow(class, title string) (Handle, error) {
	if err := f.record("FindWindow(%s,%s)", class, title); err != nil {
		return 0, err
	}
	return f.hwnd, nil
}

func (f *fakeBackend) ExStyle(h Handle) (uint32, error) {
	if err := f.record("ExStyle(%#x)", uintptr(h)); err != nil {
		return 0, err
	}
	return f.style, nil
}

func (f *fakeBackend) SetExStyle(h Handle, style uint32) error {
	if err := f.record("SetExStyle(%#x)", style); err != nil {
		return err
	}
	f.style = style
	return nil
}

func (f *fakeBackend) ExtendFrame(h Handle) error { return f.record("ExtendFrame()") }

func (f *fakeBackend) SetLayeredAttributes(h Handle, key uint32, alpha uint8) error {
	return f.record("SetLayeredAttributes(%#x,%d)", key, alpha)
}

func (f *fakeBackend) SetTopmost(h Handle) error { return f.record("SetTopmost()") }

func (f *fakeBackend) Show(h Handle) error { return f.record("Show()") }

func (f *fakeBackend) ClientSize(h Handle) (uint32, uint32, error) {
	if err := f.record("ClientSize()"); err != nil {
		return 0, 0, err
	}
	return f.width, f.height, nil
}

func (f *fakeBackend) NewFactory() (factory, error) {
	if err := f.record("NewFactory()"); err != nil {
		return nil, err
	}
	return &fakeFactory{f.acquire("factory")}, nil
}

func (f *fakeBackend) NewTextFactory() (textFactory, error) {
	if err := f.record("NewTextFactory()"); err != nil {
		return nil, err
	}
	return &fakeTextFactory{f.acquire("textFactory")}, nil
}

type fakeResource struct {
	kind     string
	be       *fakeBackend
	released bool
}

func (r *fakeResource) Release() {
	if r.released {
		panic("double release of " + r.kind)
	}
	r.released = true
	r.be.live[r.kind]--
	r.be.calls = append(r.be.calls, "Release("+r.kind+")")
}

type fakeFactory struct{ *fakeResource }

func (f *fakeFactory) CreateRenderTarget(h Handle, width, height uint32) (renderTarget, error) {
	if err := f.be.record("CreateRenderTarget(%dx%d)", width, height); err != nil {
		return nil, err
	}
	return &fakeTarget{f.be.acquire("target")}, nil
}

type fakeTextFactory struct{ *fakeResource }

func (f *fakeTextFactory) CreateTextFormat(family string, size float32, locale string) (releaser, error) {
	if err := f.be.record("CreateTextFormat(%s,%g,%s)", family, size, locale); err != nil {
		return nil, err
	}
	return f.be.acquire("format"), nil
}

func (f *fakeTextFactory) CreateTextLayout(text string, format releaser, w, h float32) (releaser, error) {
	if err := f.be.record("CreateTextLayout(%s,%gx%g)", text, w, h); err != nil {
		return nil, err
	}
	return f.be.acquire("layout"), nil
}

type fakeTarget struct{ *fakeResource }

func (t *fakeTarget) BeginDraw() { t.be.record("BeginDraw()") }
func (t *fakeTarget) Clear(c ColorF) { t.be.record("Clear(%v)", c) }
func (t *fakeTarget) EndDraw() error { return t.be.record("EndDraw()") }

func (t *fakeTarget) CreateSolidBrush(c ColorF) (releaser, error) {
	if err := t.be.record("CreateSolidBrush(%v)", c); err != nil {
		return nil, err
	}
	t.be.brushes = append(t.be.brushes, c)
	return t.be.acquire("brush"), nil
}

func (t *fakeTarget) DrawRectangle(r Rect, b releaser, stroke float32) {
	t.be.record("DrawRectangle(%v,%g)", r, stroke)
}

func (t *fakeTarget) FillRectangle(r Rect, b releaser) { t.be.record("FillRectangle(%v)", r) }

func (t *fakeTarget) DrawEllipse(e Ellipse, b releaser, stroke float32) {
	t.be.record("DrawEllipse(%v,%g)", e, stroke)
}

func (t *fakeTarget) FillEllipse(e Ellipse, b releaser) { t.be.record("FillEllipse(%v)", e) }

func (t *fakeTarget) DrawLine(from, to f32.Vec2, b releaser, stroke float32) {
	t.be.record("DrawLine(%v,%v,%g)", from, to, stroke)
}

func (t *fakeTarget) DrawTextLayout(origin f32.Vec2, layout, b releaser) {
	t.be.record("DrawTextLayout(%v)", origin)
}
