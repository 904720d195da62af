package compositor

import "strings"

// launcherClass is the window class the launcher registers for its own
// surface. Every backend filters it out of window listings.
const launcherClass = "lumen"

// WindowInfo describes an open window as reported by the compositor.
// Produced fresh on every ListWindows call, never cached here.
type WindowInfo struct {
	// Address is the compositor-specific window identifier, for example
	// "0x5678abcd" on Hyprland or a numeric id on Niri.
	Address string
	// Title is the window title, falling back to Class when empty.
	Title string
	// Class is the application class or app id.
	Class string
	// Workspace is the workspace number the window lives on.
	Workspace int
	// Focused reports whether the window currently holds focus.
	Focused bool
}

// Capabilities is a static per-backend feature descriptor, fixed at
// construction.
type Capabilities struct {
	BlurSupport     bool
	LayerShell      bool
	WindowSwitching bool
	WorkspaceInfo   bool
	FocusTracking   bool
}

// FullCapabilities describes a fully featured compositor.
func FullCapabilities() Capabilities {
	return Capabilities{
		BlurSupport:     true,
		LayerShell:      true,
		WindowSwitching: true,
		WorkspaceInfo:   true,
		FocusTracking:   true,
	}
}

// LimitedCapabilities describes a compositor that can switch windows but
// exposes no workspace or focus information.
func LimitedCapabilities() Capabilities {
	return Capabilities{
		LayerShell:      true,
		WindowSwitching: true,
	}
}

// NoCapabilities describes the no-op backend.
func NoCapabilities() Capabilities {
	return Capabilities{}
}

// Client is the window-management surface the daemon depends on.
// Implementations are safe for concurrent use; ListWindows is synchronous
// and may block on local IPC.
type Client interface {
	ListWindows() ([]WindowInfo, error)
	FocusWindow(address string) error
	Name() string
	Capabilities() Capabilities
}

// isOwnWindow reports whether a window class belongs to the launcher
// itself, compared case-insensitively.
func isOwnWindow(class string) bool {
	return strings.EqualFold(class, launcherClass)
}

// displayTitle falls back to the window class when a title is empty.
func displayTitle(title, class string) string {
	if title == "" {
		return class
	}
	return title
}
