//go:build !windows || !amd64

package overlay

// unsupported backs every OS call with ErrUnsupported. Direct2D only exists
// on Windows, and float arguments are only wired for the amd64 calling
// convention.
type unsupported struct{}

func newBackend() backend { return unsupported{} }

func (unsupported) FindWindow(string, string) (Handle, error) { return 0, ErrUnsupported }
func (unsupported) ExStyle(Handle) (uint32, error) { return 0, ErrUnsupported }
func (unsupported) SetExStyle(Handle, uint32) error { return ErrUnsupported }
func (unsupported) ExtendFrame(Handle) error { return ErrUnsupported }
func (unsupported) SetLayeredAttributes(Handle, uint32, uint8) error { return ErrUnsupported }
func (unsupported) SetTopmost(Handle) error { return ErrUnsupported }
func (unsupported) Show(Handle) error { return ErrUnsupported }
func (unsupported) ClientSize(Handle) (uint32, uint32, error) { return 0, 0, ErrUnsupported }
func (unsupported) NewFactory() (factory, error) { return nil, ErrUnsupported }
func (unsupported) NewTextFactory() (textFactory, error) { return nil, ErrUnsupported }
