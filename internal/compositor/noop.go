package compositor

// Noop is the fallback backend for unsupported sessions. Listing returns
// no windows and focusing succeeds without effect, so the launcher stays
// usable without window switching.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) ListWindows() ([]WindowInfo, error) { return nil, nil }

func (*Noop) FocusWindow(string) error { return nil }

func (*Noop) Name() string { return "none" }

func (*Noop) Capabilities() Capabilities { return NoCapabilities() }
