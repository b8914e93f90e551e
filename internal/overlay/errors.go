package overlay

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrUnsupported is returned by every OS call on platforms without Direct2D.
var ErrUnsupported = errors.New("overlay: unsupported platform")

// Window lookup and styling failures, in the order the styler runs them.
var (
	ErrWindowNotFound    = errors.New("window not found")
	ErrGetStyle          = errors.New("could not read window style")
	ErrSetStyle          = errors.New("could not write window style")
	ErrExtendFrame       = errors.New("could not extend frame into client area")
	ErrLayeredAttributes = errors.New("could not set layered attributes")
	ErrWindowPos         = errors.New("could not set window position")
	ErrShowWindow        = errors.New("could not show window")
)

// Startup failures.
var (
	ErrNotInitialized = errors.New("window not initialized")
	ErrFactory        = errors.New("factory creation failed")
	ErrTextFactory    = errors.New("text factory creation failed")
	ErrTextFormat     = errors.New("text format creation failed")
	ErrClientRect     = errors.New("could not read window rect")
	ErrRenderTarget   = errors.New("render target creation failed")
)

// Draw failures.
var (
	ErrNoFrame    = errors.New("no frame open")
	ErrTextLayout = errors.New("text layout creation failed")
	ErrBrush      = errors.New("brush creation failed")
	ErrDraw       = errors.New("draw failed")
)

// Op names the step that failed.
type Op string

// Window steps.
const (
	OpFind        Op = "find"
	OpGetStyle    Op = "get style"
	OpSetStyle    Op = "set style"
	OpExtendFrame Op = "extend frame"
	OpLayered     Op = "layered attributes"
	OpWindowPos   Op = "window position"
	OpShow        Op = "show"
)

// Render context steps.
const (
	OpStart        Op = "start"
	OpFactory      Op = "factory"
	OpTextFactory  Op = "text factory"
	OpTextFormat   Op = "text format"
	OpClientRect   Op = "client rect"
	OpRenderTarget Op = "render target"
)

// Draw operations.
const (
	OpText      Op = "text"
	OpRectangle Op = "rectangle"
	OpCircle    Op = "circle"
	OpLine      Op = "line"
	OpEndFrame  Op = "end frame"
)

// HRESULT is a COM status code. Negative values are failures.
type HRESULT int32

func (hr HRESULT) Error() string {
	return fmt.Sprintf("HRESULT 0x%08X", uint32(hr))
}

// Failed reports whether hr is a failure code.
func (hr HRESULT) Failed() bool { return hr < 0 }

// WindowError reports a failed lookup or styling step.
type WindowError struct {
	Op    Op
	Err   error  // one of the window sentinels
	Code  uint32 // Win32 error or HRESULT, zero when the OS gave none
	Cause error
}

func (e *WindowError) Error() string { return format("window", "", e.Err, e.Code, e.Cause) }

func (e *WindowError) Unwrap() []error { return unwrap(e.Err, e.Cause) }

// GraphicsError reports a failed render context startup step.
type GraphicsError struct {
	Op    Op
	Err   error
	Code  uint32
	Cause error
}

func (e *GraphicsError) Error() string { return format("graphics", "", e.Err, e.Code, e.Cause) }

func (e *GraphicsError) Unwrap() []error { return unwrap(e.Err, e.Cause) }

// DrawError reports a failed primitive or frame operation.
type DrawError struct {
	Op    Op
	Err   error
	Code  uint32
	Cause error
}

func (e *DrawError) Error() string { return format("draw", string(e.Op), e.Err, e.Code, e.Cause) }

func (e *DrawError) Unwrap() []error { return unwrap(e.Err, e.Cause) }

func format(kind, op string, sentinel error, code uint32, cause error) string {
	msg := "overlay: " + kind
	if op != "" {
		msg += " " + op
	}
	msg += ": " + sentinel.Error()
	if code != 0 {
		msg += fmt.Sprintf(" (0x%08X)", code)
	}
	if cause != nil && statusCode(cause) == 0 {
		msg += ": " + cause.Error()
	}
	return msg
}

func unwrap(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}

// statusCode pulls the numeric OS status out of err.
func statusCode(err error) uint32 {
	var hr HRESULT
	if errors.As(err, &hr) {
		return uint32(hr)
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	return 0
}

func windowErr(op Op, sentinel, cause error) error {
	return &WindowError{Op: op, Err: sentinel, Code: statusCode(cause), Cause: cause}
}

func graphicsErr(op Op, sentinel, cause error) error {
	return &GraphicsError{Op: op, Err: sentinel, Code: statusCode(cause), Cause: cause}
}

func drawErr(op Op, sentinel, cause error) error {
	return &DrawError{Op: op, Err: sentinel, Code: statusCode(cause), Cause: cause}
}
