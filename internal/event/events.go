package event

import (
	"lumen/internal/apps"
	"lumen/internal/clipboard"
)

// Kind enumerates every event the daemon loop can receive. The set is
// closed: the loop switches over Kind and treats anything else as a
// programming error.
type Kind int

const (
	// KindShow requests the launcher window to appear. Carries a reply.
	KindShow Kind = iota
	// KindHide requests the launcher window to disappear. Carries a reply.
	KindHide
	// KindToggle flips visibility. Carries a reply.
	KindToggle
	// KindQuit stops the daemon. Carries a reply.
	KindQuit
	// KindSetTheme switches the active theme. Carries a reply.
	KindSetTheme
	// KindReload restarts the daemon process. Carries a reply.
	KindReload
	// KindRequestHide is the UI asking to close itself (escape key, focus
	// loss). No reply slot: nothing waits on it.
	KindRequestHide
	// KindApplicationsChanged delivers a freshly scanned application index
	// from the desktop-entry watcher. No reply slot.
	KindApplicationsChanged
	// KindClipboardCaptured delivers new clipboard content from the
	// clipboard monitor. No reply slot.
	KindClipboardCaptured
)

var kindNames = map[Kind]string{
	KindShow:                "show",
	KindHide:                "hide",
	KindToggle:              "toggle",
	KindQuit:                "quit",
	KindSetTheme:            "set_theme",
	KindReload:              "reload",
	KindRequestHide:         "request_hide",
	KindApplicationsChanged: "applications_changed",
	KindClipboardCaptured:   "clipboard_captured",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is the tagged union flowing through the Queue. Only the fields
// relevant to the Kind are populated.
type Event struct {
	Kind  Kind
	Reply *Reply

	// KindSetTheme
	ThemeName string

	// KindApplicationsChanged
	Applications []apps.Entry

	// KindClipboardCaptured
	Clip clipboard.Capture
}

// Command constructs an event that expects a response.
func Command(kind Kind) Event {
	return Event{Kind: kind, Reply: NewReply()}
}

// SetTheme constructs a theme-change command.
func SetTheme(name string) Event {
	return Event{Kind: KindSetTheme, ThemeName: name, Reply: NewReply()}
}

// RequestHide constructs the UI-originated hide event.
func RequestHide() Event {
	return Event{Kind: KindRequestHide}
}

// ApplicationsChanged constructs a watcher notification event.
func ApplicationsChanged(entries []apps.Entry) Event {
	return Event{Kind: KindApplicationsChanged, Applications: entries}
}

// ClipboardCaptured constructs a clipboard monitor notification event.
func ClipboardCaptured(capture clipboard.Capture) Event {
	return Event{Kind: KindClipboardCaptured, Clip: capture}
}
