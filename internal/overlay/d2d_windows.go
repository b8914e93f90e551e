//go:build windows && amd64

package overlay

import (
	"math"
	"sync"
	"syscall"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/go-ole/go-ole"
	"golang.org/x/image/math/f32"
	"golang.org/x/sys/windows"
)

var (
	d2d1                    = windows.NewLazySystemDLL("d2d1.dll")
	procD2D1CreateFactory   = d2d1.NewProc("D2D1CreateFactory")
	dwrite                  = windows.NewLazySystemDLL("dwrite.dll")
	procDWriteCreateFactory = dwrite.NewProc("DWriteCreateFactory")

	d2d1CreateFactory   func(factoryType uint32, riid *ole.GUID, options unsafe.Pointer, out **ole.IUnknown) int32
	dwriteCreateFactory func(factoryType uint32, iid *ole.GUID, out **ole.IUnknown) int32

	bindOnce sync.Once
	bindErr  error

	iidID2D1Factory   = ole.NewGUID("{06152247-6F50-465A-9245-118BFD3B6007}")
	iidIDWriteFactory = ole.NewGUID("{B859EE5A-D838-4B5B-A2E8-1ADC7D93DB48}")
)

const (
	d2dFactoryTypeSingleThreaded = 0
	dwriteFactoryTypeShared      = 0

	dxgiFormatUnknown     = 0
	d2dAlphaPremultiplied = 1

	dwriteFontWeightRegular = 400
	dwriteFontStyleNormal   = 0
	dwriteFontStretchNormal = 5

	// ID2D1Factory
	d2dFactoryCreateHwndRenderTarget = 14

	// ID2D1RenderTarget / ID2D1HwndRenderTarget
	d2dTargetCreateSolidColorBrush = 8
	d2dTargetDrawLine              = 15
	d2dTargetDrawRectangle         = 16
	d2dTargetFillRectangle         = 17
	d2dTargetDrawEllipse           = 20
	d2dTargetFillEllipse           = 21
	d2dTargetDrawTextLayout        = 28
	d2dTargetClear                 = 47
	d2dTargetBeginDraw             = 48
	d2dTargetEndDraw               = 49

	// IDWriteFactory
	dwriteFactoryCreateTextFormat = 15
	dwriteFactoryCreateTextLayout = 18
)

type d2dPixelFormat struct {
	Format    uint32
	AlphaMode uint32
}

// d2dRenderTargetProperties matches D2D1_RENDER_TARGET_PROPERTIES.
type d2dRenderTargetProperties struct {
	Type        uint32
	PixelFormat d2dPixelFormat
	DpiX, DpiY  float32
	Usage       uint32
	MinLevel    uint32
}

// d2dHwndRenderTargetProperties matches D2D1_HWND_RENDER_TARGET_PROPERTIES.
type d2dHwndRenderTargetProperties struct {
	Hwnd           uintptr
	PixelSize      [2]uint32
	PresentOptions uint32
}

// bindFactories resolves the two exported factory constructors.
func bindFactories() error {
	bindOnce.Do(func() {
		if bindErr = procD2D1CreateFactory.Find(); bindErr != nil {
			return
		}
		if bindErr = procDWriteCreateFactory.Find(); bindErr != nil {
			return
		}
		purego.RegisterFunc(&d2d1CreateFactory, procD2D1CreateFactory.Addr())
		purego.RegisterFunc(&dwriteCreateFactory, procDWriteCreateFactory.Addr())
	})
	return bindErr
}

// comObject is any COM interface pointer we own one reference to.
type comObject struct {
	unk *ole.IUnknown
}

func (o *comObject) Release() {
	if o.unk != nil {
		o.unk.Release()
		o.unk = nil
	}
}

func (o *comObject) this() uintptr { return uintptr(unsafe.Pointer(o.unk)) }

// method returns slot i of the object's vtable.
func (o *comObject) method(i int) uintptr {
	vtbl := unsafe.Pointer(o.unk.RawVTable)
	return *(*uintptr)(unsafe.Add(vtbl, uintptr(i)*unsafe.Sizeof(uintptr(0))))
}

func comPtr(r releaser) uintptr { return r.(*comObject).this() }

func hresult(r uintptr) error {
	if hr := HRESULT(int32(uint32(r))); hr.Failed() {
		return hr
	}
	return nil
}

// float passes a FLOAT argument. On amd64 the first four arguments are
// mirrored into XMM0-3, later ones are read from the low half of the stack slot.
func float(f float32) uintptr { return uintptr(math.Float32bits(f)) }

// point packs a D2D1_POINT_2F passed by value.
func point(p f32.Vec2) uintptr {
	return uintptr(math.Float32bits(p[0])) | uintptr(math.Float32bits(p[1]))<<32
}

type d2dFactory struct{ comObject }

func newD2DFactory() (factory, error) {
	if err := bindFactories(); err != nil {
		return nil, err
	}
	var unk *ole.IUnknown
	if hr := HRESULT(d2d1CreateFactory(d2dFactoryTypeSingleThreaded, iidID2D1Factory, nil, &unk)); hr.Failed() {
		return nil, hr
	}
	return &d2dFactory{comObject{unk}}, nil
}

func (f *d2dFactory) CreateRenderTarget(h Handle, width, height uint32) (renderTarget, error) {
	props := d2dRenderTargetProperties{
		PixelFormat: d2dPixelFormat{Format: dxgiFormatUnknown, AlphaMode: d2dAlphaPremultiplied},
	}
	hwndProps := d2dHwndRenderTargetProperties{
		Hwnd:      uintptr(h),
		PixelSize: [2]uint32{width, height},
	}
	var unk *ole.IUnknown
	r, _, _ := syscall.SyscallN(f.method(d2dFactoryCreateHwndRenderTarget), f.this(),
		uintptr(unsafe.Pointer(&props)),
		uintptr(unsafe.Pointer(&hwndProps)),
		uintptr(unsafe.Pointer(&unk)))
	if err := hresult(r); err != nil {
		return nil, err
	}
	return &d2dTarget{comObject{unk}}, nil
}

type dwriteFactory struct{ comObject }

func newDWriteFactory() (textFactory, error) {
	if err := bindFactories(); err != nil {
		return nil, err
	}
	var unk *ole.IUnknown
	if hr := HRESULT(dwriteCreateFactory(dwriteFactoryTypeShared, iidIDWriteFactory, &unk)); hr.Failed() {
		return nil, hr
	}
	return &dwriteFactory{comObject{unk}}, nil
}

func (f *dwriteFactory) CreateTextFormat(family string, size float32, locale string) (releaser, error) {
	fam, err := windows.UTF16PtrFromString(family)
	if err != nil {
		return nil, err
	}
	loc, err := windows.UTF16PtrFromString(locale)
	if err != nil {
		return nil, err
	}
	var unk *ole.IUnknown
	r, _, _ := syscall.SyscallN(f.method(dwriteFactoryCreateTextFormat), f.this(),
		uintptr(unsafe.Pointer(fam)),
		0, // system font collection
		dwriteFontWeightRegular,
		dwriteFontStyleNormal,
		dwriteFontStretchNormal,
		float(size),
		uintptr(unsafe.Pointer(loc)),
		uintptr(unsafe.Pointer(&unk)))
	if err := hresult(r); err != nil {
		return nil, err
	}
	return &comObject{unk}, nil
}

func (f *dwriteFactory) CreateTextLayout(text string, format releaser, maxWidth, maxHeight float32) (releaser, error) {
	s, err := windows.UTF16FromString(text)
	if err != nil {
		return nil, err
	}
	var unk *ole.IUnknown
	r, _, _ := syscall.SyscallN(f.method(dwriteFactoryCreateTextLayout), f.this(),
		uintptr(unsafe.Pointer(&s[0])),
		uintptr(len(s)-1),
		comPtr(format),
		float(maxWidth),
		float(maxHeight),
		uintptr(unsafe.Pointer(&unk)))
	if err := hresult(r); err != nil {
		return nil, err
	}
	return &comObject{unk}, nil
}

type d2dTarget struct{ comObject }

func (t *d2dTarget) BeginDraw() {
	syscall.SyscallN(t.method(d2dTargetBeginDraw), t.this())
}

func (t *d2dTarget) Clear(c ColorF) {
	syscall.SyscallN(t.method(d2dTargetClear), t.this(), uintptr(unsafe.Pointer(&c)))
}

func (t *d2dTarget) EndDraw() error {
	r, _, _ := syscall.SyscallN(t.method(d2dTargetEndDraw), t.this(), 0, 0)
	return hresult(r)
}

func (t *d2dTarget) CreateSolidBrush(c ColorF) (releaser, error) {
	var unk *ole.IUnknown
	r, _, _ := syscall.SyscallN(t.method(d2dTargetCreateSolidColorBrush), t.this(),
		uintptr(unsafe.Pointer(&c)),
		0, // default brush properties
		uintptr(unsafe.Pointer(&unk)))
	if err := hresult(r); err != nil {
		return nil, err
	}
	return &comObject{unk}, nil
}

func (t *d2dTarget) DrawRectangle(rc Rect, brush releaser, stroke float32) {
	syscall.SyscallN(t.method(d2dTargetDrawRectangle), t.this(),
		uintptr(unsafe.Pointer(&rc)), comPtr(brush), float(stroke), 0)
}

func (t *d2dTarget) FillRectangle(rc Rect, brush releaser) {
	syscall.SyscallN(t.method(d2dTargetFillRectangle), t.this(),
		uintptr(unsafe.Pointer(&rc)), comPtr(brush))
}

func (t *d2dTarget) DrawEllipse(e Ellipse, brush releaser, stroke float32) {
	syscall.SyscallN(t.method(d2dTargetDrawEllipse), t.this(),
		uintptr(unsafe.Pointer(&e)), comPtr(brush), float(stroke), 0)
}

func (t *d2dTarget) FillEllipse(e Ellipse, brush releaser) {
	syscall.SyscallN(t.method(d2dTargetFillEllipse), t.this(),
		uintptr(unsafe.Pointer(&e)), comPtr(brush))
}

func (t *d2dTarget) DrawLine(from, to f32.Vec2, brush releaser, stroke float32) {
	syscall.SyscallN(t.method(d2dTargetDrawLine), t.this(),
		point(from), point(to), comPtr(brush), float(stroke), 0)
}

func (t *d2dTarget) DrawTextLayout(origin f32.Vec2, layout, brush releaser) {
	syscall.SyscallN(t.method(d2dTargetDrawTextLayout), t.this(),
		point(origin), comPtr(layout), comPtr(brush), 0)
}
