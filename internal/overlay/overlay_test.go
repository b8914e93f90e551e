package overlay

import (
	"errors"
	"reflect"
	"syscall"
	"testing"
)

var testOptions = Options{FontFamily: "Calibri", FontSize: 18}

func TestInitialize_StylesInOrder(t *testing.T) {
	be := newFake()
	ov := newOverlay(testOptions, be)

	if err := ov.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	want := []string{"FindWindow", "ExStyle", "SetExStyle", "ExtendFrame", "SetLayeredAttributes", "SetTopmost", "Show"}
	if got := be.names(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v; want %v", got, want)
	}
	if be.calls[0] != "FindWindow(CEF-OSC-WIDGET,NVIDIA GeForce Overlay)" {
		t.Errorf("lookup key = %q", be.calls[0])
	}
	if be.style != 0x100|wsExLayered|wsExTransparent {
		t.Errorf("style = %#x; existing bits must be kept and layered+transparent added", be.style)
	}
	if be.calls[4] != "SetLayeredAttributes(0x0,255)" {
		t.Errorf("layered attributes = %q; want black key, opaque alpha", be.calls[4])
	}
	if ov.Handle() != be.hwnd {
		t.Errorf("Handle() = %#x; want %#x", ov.Handle(), be.hwnd)
	}
}

func TestInitialize_WindowNotFound(t *testing.T) {
	be := newFake()
	be.hwnd = 0
	ov := newOverlay(testOptions, be)

	err := ov.Initialize()
	if !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("err = %v; want ErrWindowNotFound", err)
	}
	var we *WindowError
	if !errors.As(err, &we) || we.Op != OpFind {
		t.Fatalf("err = %#v; want *WindowError from the lookup", err)
	}
	if len(be.calls) != 1 {
		t.Errorf("styling ran after a failed lookup: %v", be.calls)
	}
	if ov.Handle() != 0 || ov.Canvas() != nil {
		t.Error("failed Initialize must leave no state")
	}
	if _, err := ov.StartDrawing(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("StartDrawing err = %v; want ErrNotInitialized", err)
	}
}

func TestInitialize_FirstFailureAborts(t *testing.T) {
	denied := syscall.Errno(5)
	tests := []struct {
		step     string
		op       Op
		sentinel error
		calls    int
	}{
		{"ExStyle", OpGetStyle, ErrGetStyle, 2},
		{"SetExStyle", OpSetStyle, ErrSetStyle, 3},
		{"ExtendFrame", OpExtendFrame, ErrExtendFrame, 4},
		{"SetLayeredAttributes", OpLayered, ErrLayeredAttributes, 5},
		{"SetTopmost", OpWindowPos, ErrWindowPos, 6},
		{"Show", OpShow, ErrShowWindow, 7},
	}
	for _, tt := range tests {
		t.Run(tt.step, func(t *testing.T) {
			be := newFake()
			be.failOn[tt.step] = denied
			ov := newOverlay(testOptions, be)

			err := ov.Initialize()
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("err = %v; want %v", err, tt.sentinel)
			}
			if !errors.Is(err, denied) {
				t.Errorf("err = %v; the OS status must stay reachable", err)
			}
			var we *WindowError
			if !errors.As(err, &we) || we.Op != tt.op || we.Code != 5 {
				t.Errorf("err = %#v; want Op %q Code 5", err, tt.op)
			}
			if len(be.calls) != tt.calls {
				t.Errorf("calls = %v; want the sequence to stop at %s", be.names(), tt.step)
			}
			if ov.Handle() != 0 {
				t.Error("handle kept after failed styling")
			}
		})
	}
}

func TestInitialize_UnsupportedPlatform(t *testing.T) {
	ov := newOverlay(testOptions, unsupportedForTest{newFake()})
	err := ov.Initialize()
	if !errors.Is(err, ErrWindowNotFound) || !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v; want not found wrapping ErrUnsupported", err)
	}
}

type unsupportedForTest struct{ *fakeBackend }

func (unsupportedForTest) FindWindow(string, string) (Handle, error) { return 0, ErrUnsupported }

func TestStartDrawing_BuildsContext(t *testing.T) {
	be := newFake()
	be.width, be.height = 800, 600
	ov := newOverlay(testOptions, be)
	if err := ov.Initialize(); err != nil {
		t.Fatal(err)
	}
	be.calls = nil

	c, err := ov.StartDrawing()
	if err != nil {
		t.Fatalf("StartDrawing: %v", err)
	}
	want := []string{"NewFactory", "NewTextFactory", "CreateTextFormat", "ClientSize", "CreateRenderTarget"}
	if got := be.names(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v; want %v", got, want)
	}
	if be.calls[2] != "CreateTextFormat(Calibri,18,en-us)" {
		t.Errorf("text format = %q", be.calls[2])
	}
	if be.calls[4] != "CreateRenderTarget(800x600)" {
		t.Errorf("render target = %q", be.calls[4])
	}
	if w, h := c.Size(); w != 800 || h != 600 {
		t.Errorf("Size() = %dx%d; want 800x600", w, h)
	}

	again, err := ov.StartDrawing()
	if err != nil || again != c {
		t.Errorf("second StartDrawing = %p, %v; want same canvas", again, err)
	}
}

func TestStartDrawing_FailureReleasesEverything(t *testing.T) {
	tests := []struct {
		step     string
		op       Op
		sentinel error
	}{
		{"NewFactory", OpFactory, ErrFactory},
		{"NewTextFactory", OpTextFactory, ErrTextFactory},
		{"CreateTextFormat", OpTextFormat, ErrTextFormat},
		{"ClientSize", OpClientRect, ErrClientRect},
		{"CreateRenderTarget", OpRenderTarget, ErrRenderTarget},
	}
	for _, tt := range tests {
		t.Run(tt.step, func(t *testing.T) {
			be := newFake()
			ov := newOverlay(testOptions, be)
			if err := ov.Initialize(); err != nil {
				t.Fatal(err)
			}
			hr := HRESULT(-2147024809) // E_INVALIDARG
			be.failOn[tt.step] = hr

			c, err := ov.StartDrawing()
			if c != nil {
				t.Error("canvas returned on failure")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("err = %v; want %v", err, tt.sentinel)
			}
			var ge *GraphicsError
			if !errors.As(err, &ge) || ge.Op != tt.op || ge.Code != 0x80070057 {
				t.Errorf("err = %#v; want *GraphicsError with the real HRESULT", err)
			}
			if n := be.outstanding(); n != 0 {
				t.Errorf("%d resources leaked: %v", n, be.live)
			}
			if ov.Canvas() != nil {
				t.Error("partial canvas retained")
			}
			if err := ov.Close(); err != nil {
				t.Errorf("Close after failed startup: %v", err)
			}
		})
	}
}

func TestClose_WithoutStartIsNoop(t *testing.T) {
	be := newFake()
	ov := newOverlay(testOptions, be)
	if err := ov.Close(); err != nil {
		t.Fatal(err)
	}
	if len(be.calls) != 0 {
		t.Errorf("Close issued calls without a canvas: %v", be.calls)
	}
}

func TestErrorMessages(t *testing.T) {
	err := windowErr(OpSetStyle, ErrSetStyle, syscall.Errno(5))
	if got, want := err.Error(), "overlay: window: could not write window style (0x00000005)"; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
	err = drawErr(OpText, ErrTextLayout, errors.New("bad utf-16"))
	if got, want := err.Error(), "overlay: draw text: text layout creation failed: bad utf-16"; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
}
