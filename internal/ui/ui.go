// Package ui defines the boundary between the daemon core and whatever
// renders the launcher surface. The daemon never touches toolkit code
// directly; it creates and closes windows through a Host.
package ui

import (
	"sync"

	"lumen/internal/compositor"
	"lumen/internal/config"
)

// Window is a live launcher surface.
type Window interface {
	// Close destroys the surface. Closing an already closed window is a
	// no-op.
	Close() error
	// RefreshTheme re-applies the named theme to the live surface.
	RefreshTheme(theme *config.Theme) error
}

// Host creates launcher surfaces. CreateWindow receives the current
// window list so the switcher view is seeded before first paint.
type Host interface {
	CreateWindow(windows []compositor.WindowInfo) (Window, error)
}

// HeadlessHost is a Host with no rendering. It keeps the daemon state
// machine fully functional in tests and on systems without a display,
// tracking only whether its window is open.
type HeadlessHost struct {
	mu      sync.Mutex
	open    int
	created int
}

func NewHeadlessHost() *HeadlessHost { return &HeadlessHost{} }

func (h *HeadlessHost) CreateWindow(windows []compositor.WindowInfo) (Window, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open++
	h.created++
	return &headlessWindow{host: h}, nil
}

// OpenWindows reports how many windows are currently open.
func (h *HeadlessHost) OpenWindows() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

// CreatedWindows reports how many windows have ever been created.
func (h *HeadlessHost) CreatedWindows() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.created
}

type headlessWindow struct {
	mu     sync.Mutex
	host   *HeadlessHost
	closed bool
	theme  *config.Theme
}

func (w *headlessWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	w.host.mu.Lock()
	w.host.open--
	w.host.mu.Unlock()
	return nil
}

func (w *headlessWindow) RefreshTheme(theme *config.Theme) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.theme = theme
	return nil
}
