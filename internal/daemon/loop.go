package daemon

import (
	"context"
	"fmt"
	"log/slog"

	"lumen/internal/apps"
	"lumen/internal/clipboard"
	"lumen/internal/compositor"
	"lumen/internal/config"
	"lumen/internal/event"
	"lumen/internal/logging"
	"lumen/internal/ui"
)

// Outcome tells the bootstrap what to do after the loop returns.
type Outcome int

const (
	// OutcomeQuit means shut down and exit.
	OutcomeQuit Outcome = iota
	// OutcomeReload means release resources and re-exec the daemon.
	OutcomeReload
)

// State is the loop's visibility state.
type State int

const (
	StateHidden State = iota
	StateVisible
)

// Options wires the loop's collaborators. History may be nil when
// clipboard capture is disabled.
type Options struct {
	Queue      *event.Queue
	Host       ui.Host
	Compositor compositor.Client
	Store      *config.Store
	History    *clipboard.Store
	Logger     *slog.Logger
}

// Loop is the single consumer of the event queue. All fields below
// Options are owned exclusively by the Run goroutine.
type Loop struct {
	opts   Options
	logger *slog.Logger

	state        State
	window       ui.Window
	applications []apps.Entry
}

// New constructs a loop in the Hidden state.
func New(opts Options) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loop{opts: opts, logger: logger}
}

// State returns the current visibility state. Only meaningful from the
// Run goroutine or after Run has returned.
func (l *Loop) State() State { return l.state }

// Applications returns the last application index pushed by the
// watcher. Same ownership rules as State.
func (l *Loop) Applications() []apps.Entry { return l.applications }

// Run consumes events until Quit, Reload, ctx cancellation, or queue
// close. Events are handled one at a time, fully, in arrival order; a
// failed transition answers its own command and never stops the loop.
func (l *Loop) Run(ctx context.Context) Outcome {
	for {
		evt, ok := l.opts.Queue.Recv(ctx)
		if !ok {
			l.closeWindow()
			return OutcomeQuit
		}

		switch evt.Kind {
		case event.KindShow:
			evt.Reply.Deliver(l.show())

		case event.KindHide:
			l.hide()
			evt.Reply.Deliver(event.OK())

		case event.KindRequestHide:
			// UI-originated, no reply slot.
			l.hide()

		case event.KindToggle:
			if l.state == StateVisible {
				l.hide()
				evt.Reply.Deliver(event.OK())
			} else {
				evt.Reply.Deliver(l.show())
			}

		case event.KindSetTheme:
			evt.Reply.Deliver(l.setTheme(evt.ThemeName))

		case event.KindReload:
			// Reply before transitioning so the client is not left
			// blocking on a process that is about to re-exec.
			evt.Reply.Deliver(event.OK())
			l.closeWindow()
			l.logger.Info("reload requested, leaving event loop")
			return OutcomeReload

		case event.KindQuit:
			evt.Reply.Deliver(event.OK())
			l.closeWindow()
			l.logger.Info("quit requested, leaving event loop")
			return OutcomeQuit

		case event.KindApplicationsChanged:
			l.applications = evt.Applications
			l.logger.Debug("application index updated", logging.Int("entries", len(evt.Applications)))

		case event.KindClipboardCaptured:
			l.recordCapture(ctx, evt.Clip)

		default:
			l.logger.Warn("unhandled event kind", logging.String("kind", evt.Kind.String()))
			evt.Reply.Deliver(event.Errf(fmt.Errorf("unsupported command %s", evt.Kind)))
		}
	}
}

func (l *Loop) show() event.Response {
	if l.state == StateVisible {
		return event.OK()
	}

	windows, err := l.opts.Compositor.ListWindows()
	if err != nil {
		// The switcher view degrades to empty; showing the launcher
		// must not depend on a healthy compositor connection.
		l.logger.Warn("window listing failed", logging.Error(err))
		windows = nil
	}

	window, err := l.opts.Host.CreateWindow(windows)
	if err != nil {
		l.logger.Error("window construction failed", logging.Error(err))
		return event.Errf(fmt.Errorf("create window: %w", err))
	}

	l.window = window
	l.state = StateVisible
	return event.OK()
}

func (l *Loop) hide() {
	if l.state != StateVisible {
		return
	}
	l.closeWindow()
	l.state = StateHidden
}

func (l *Loop) closeWindow() {
	if l.window == nil {
		return
	}
	if err := l.window.Close(); err != nil {
		l.logger.Warn("window close failed", logging.Error(err))
	}
	l.window = nil
	l.state = StateHidden
}

func (l *Loop) setTheme(name string) event.Response {
	theme, err := config.LoadTheme(name)
	if err != nil {
		return event.Errf(err)
	}

	if err := l.opts.Store.SetTheme(name); err != nil {
		return event.Errf(fmt.Errorf("persist theme: %w", err))
	}

	if l.state == StateVisible && l.window != nil {
		if err := l.window.RefreshTheme(theme); err != nil {
			return event.Errf(fmt.Errorf("refresh theme: %w", err))
		}
	}

	l.logger.Info("theme changed", logging.String(logging.FieldTheme, name))
	return event.OK()
}

func (l *Loop) recordCapture(ctx context.Context, capture clipboard.Capture) {
	if l.opts.History == nil {
		return
	}
	if err := l.opts.History.Insert(ctx, capture); err != nil {
		l.logger.Warn("clipboard capture not stored", logging.Error(err))
	}
}
