package clipboard

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"lumen/internal/logging"
)

const pollInterval = 750 * time.Millisecond

// Monitor polls the session clipboard and reports new captures. Wayland
// sessions read through wl-paste, X11 sessions through xclip.
type Monitor struct {
	command []string
	logger  *slog.Logger

	last string
}

// NewMonitor selects a clipboard reader for the current session. It
// returns nil when no supported tool is available; callers treat a nil
// monitor as clipboard capture being disabled.
func NewMonitor(logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	command := selectReader()
	if command == nil {
		logger.Warn("no clipboard tool found, capture disabled")
		return nil
	}
	return &Monitor{command: command, logger: logger}
}

func selectReader() []string {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		if _, err := exec.LookPath("wl-paste"); err == nil {
			return []string{"wl-paste", "--no-newline"}
		}
	}
	if os.Getenv("DISPLAY") != "" {
		if _, err := exec.LookPath("xclip"); err == nil {
			return []string{"xclip", "-selection", "clipboard", "-o"}
		}
	}
	return nil
}

// Run polls until ctx is cancelled, invoking onCapture for each change.
func (m *Monitor) Run(ctx context.Context, onCapture func(Capture)) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		content, err := m.read(ctx)
		if err != nil {
			continue
		}
		if content == "" || content == m.last {
			continue
		}
		m.last = content
		onCapture(Capture{Content: content, TakenAt: time.Now().UTC()})
	}
}

func (m *Monitor) read(ctx context.Context) (string, error) {
	readCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	cmd := exec.CommandContext(readCtx, m.command[0], m.command[1:]...)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(out), ""), nil
}
