//go:build windows && amd64

package overlay

import (
	"errors"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                         = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW                = user32.NewProc("FindWindowW")
	procGetWindowLongW             = user32.NewProc("GetWindowLongW")
	procSetWindowLongW             = user32.NewProc("SetWindowLongW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procSetWindowPos               = user32.NewProc("SetWindowPos")
	procShowWindow                 = user32.NewProc("ShowWindow")
	procIsWindowVisible            = user32.NewProc("IsWindowVisible")
	procGetClientRect              = user32.NewProc("GetClientRect")

	dwmapi                           = windows.NewLazySystemDLL("dwmapi.dll")
	procDwmExtendFrameIntoClientArea = dwmapi.NewProc("DwmExtendFrameIntoClientArea")

	kernel32         = windows.NewLazySystemDLL("kernel32.dll")
	procSetLastError = kernel32.NewProc("SetLastError")
)

const (
	gwlExStyle   = -20
	hwndTopmost  = ^uintptr(0) // -1
	swpNoSize    = 0x0001
	swpNoMove    = 0x0002
	swShow       = 5
	lwaAlpha     = 0x2
	frameExtents = -1 // sheet of glass
)

// errNoStatus stands in when a call fails without setting a last error.
var errNoStatus = errors.New("call failed without a last error")

// margins matches MARGINS.
type margins struct {
	Left, Right, Top, Bottom int32
}

type win32 struct{}

func newBackend() backend { return win32{} }

// lastError returns the errno a failed Proc.Call captured.
func lastError(err error) error {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return errno
	}
	return errNoStatus
}

func (win32) FindWindow(class, title string) (Handle, error) {
	c, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0, err
	}
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	if err := procFindWindowW.Find(); err != nil {
		return 0, err
	}
	hwnd, _, _ := procFindWindowW.Call(uintptr(unsafe.Pointer(c)), uintptr(unsafe.Pointer(t)))
	return Handle(hwnd), nil
}

// ExStyle reads GWL_EXSTYLE. Zero is only a failure when a last error was set.
func (win32) ExStyle(h Handle) (uint32, error) {
	procSetLastError.Call(0)
	gwl := int32(gwlExStyle)
	r, _, err := procGetWindowLongW.Call(uintptr(h), uintptr(gwl))
	if r == 0 {
		var errno syscall.Errno
		if errors.As(err, &errno) && errno != 0 {
			return 0, errno
		}
	}
	return uint32(r), nil
}

func (win32) SetExStyle(h Handle, style uint32) error {
	procSetLastError.Call(0)
	gwl := int32(gwlExStyle)
	r, _, err := procSetWindowLongW.Call(uintptr(h), uintptr(gwl), uintptr(style))
	if r == 0 {
		var errno syscall.Errno
		if errors.As(err, &errno) && errno != 0 {
			return errno
		}
	}
	return nil
}

// ExtendFrame turns the whole client area into DWM glass so per-pixel alpha
// shows through.
func (win32) ExtendFrame(h Handle) error {
	if err := procDwmExtendFrameIntoClientArea.Find(); err != nil {
		return err
	}
	m := margins{frameExtents, frameExtents, frameExtents, frameExtents}
	hr, _, _ := procDwmExtendFrameIntoClientArea.Call(uintptr(h), uintptr(unsafe.Pointer(&m)))
	if HRESULT(hr).Failed() {
		return HRESULT(hr)
	}
	return nil
}

func (win32) SetLayeredAttributes(h Handle, colorKey uint32, alpha uint8) error {
	r, _, err := procSetLayeredWindowAttributes.Call(uintptr(h), uintptr(colorKey), uintptr(alpha), lwaAlpha)
	if r == 0 {
		return lastError(err)
	}
	return nil
}

func (win32) SetTopmost(h Handle) error {
	r, _, err := procSetWindowPos.Call(uintptr(h), hwndTopmost, 0, 0, 0, 0, swpNoMove|swpNoSize)
	if r == 0 {
		return lastError(err)
	}
	return nil
}

// Show returns an error unless the window is visible afterwards. ShowWindow's
// own result is the previous visibility, not success.
func (win32) Show(h Handle) error {
	procShowWindow.Call(uintptr(h), swShow)
	visible, _, _ := procIsWindowVisible.Call(uintptr(h))
	if visible == 0 {
		return errors.New("window still hidden")
	}
	return nil
}

func (win32) ClientSize(h Handle) (uint32, uint32, error) {
	var rc windows.Rect
	r, _, err := procGetClientRect.Call(uintptr(h), uintptr(unsafe.Pointer(&rc)))
	if r == 0 {
		return 0, 0, lastError(err)
	}
	return uint32(rc.Right - rc.Left), uint32(rc.Bottom - rc.Top), nil
}

func (win32) NewFactory() (factory, error) { return newD2DFactory() }

func (win32) NewTextFactory() (textFactory, error) { return newDWriteFactory() }
