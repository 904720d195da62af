package compositor

import (
	"log/slog"

	"lumen/internal/logging"
)

// Detect probes for a supported compositor and returns the first match.
// Order is fixed: Hyprland, Niri, KWin, then the no-op fallback.
// Detection never fails; an unsupported session degrades to Noop.
func Detect(logger *slog.Logger) Client {
	if logger == nil {
		logger = logging.NewNop()
	}

	if client, ok := NewHyprland(); ok {
		logger.Info("compositor detected", logging.String(logging.FieldBackend, client.Name()))
		return client
	}
	if client, ok := NewNiri(); ok {
		logger.Info("compositor detected", logging.String(logging.FieldBackend, client.Name()))
		return client
	}
	if client, ok := NewKWin(); ok {
		logger.Info("compositor detected", logging.String(logging.FieldBackend, client.Name()))
		return client
	}

	logger.Warn("no supported compositor found, window switching disabled")
	return NewNoop()
}
