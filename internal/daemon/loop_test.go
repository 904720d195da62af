package daemon

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lumen/internal/apps"
	"lumen/internal/clipboard"
	"lumen/internal/compositor"
	"lumen/internal/config"
	"lumen/internal/event"
	"lumen/internal/testsupport"
	"lumen/internal/ui"
)

type stubCompositor struct {
	windows []compositor.WindowInfo
	listErr error
}

func (s *stubCompositor) ListWindows() ([]compositor.WindowInfo, error) {
	return s.windows, s.listErr
}
func (s *stubCompositor) FocusWindow(string) error { return nil }
func (s *stubCompositor) Name() string             { return "stub" }
func (s *stubCompositor) Capabilities() compositor.Capabilities {
	return compositor.FullCapabilities()
}

type failingHost struct{}

func (failingHost) CreateWindow([]compositor.WindowInfo) (ui.Window, error) {
	return nil, errors.New("no display")
}

type fixture struct {
	queue *event.Queue
	host  *ui.HeadlessHost
	loop  *Loop
	done  chan Outcome
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	if opts.Queue == nil {
		opts.Queue = event.NewQueue()
	}
	host, _ := opts.Host.(*ui.HeadlessHost)
	if opts.Host == nil {
		host = ui.NewHeadlessHost()
		opts.Host = host
	}
	if opts.Compositor == nil {
		opts.Compositor = &stubCompositor{}
	}
	if opts.Store == nil {
		opts.Store = testsupport.NewConfigStore(t)
	}

	f := &fixture{
		queue: opts.Queue,
		host:  host,
		loop:  New(opts),
		done:  make(chan Outcome, 1),
	}
	go func() { f.done <- f.loop.Run(context.Background()) }()
	return f
}

func (f *fixture) send(t *testing.T, evt event.Event) event.Response {
	t.Helper()
	f.queue.Send(evt)
	if evt.Reply == nil {
		return event.Response{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := evt.Reply.Wait(ctx)
	if err != nil {
		t.Fatalf("no reply for %s: %v", evt.Kind, err)
	}
	return resp
}

func (f *fixture) finish(t *testing.T) Outcome {
	t.Helper()
	select {
	case outcome := <-f.done:
		return outcome
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not return")
		return OutcomeQuit
	}
}

func TestShowThenHide(t *testing.T) {
	f := newFixture(t, Options{})

	if resp := f.send(t, event.Command(event.KindShow)); !resp.OK {
		t.Fatalf("show failed: %+v", resp)
	}
	if f.host.OpenWindows() != 1 {
		t.Fatalf("open windows = %d after show", f.host.OpenWindows())
	}

	if resp := f.send(t, event.Command(event.KindHide)); !resp.OK {
		t.Fatalf("hide failed: %+v", resp)
	}
	if f.host.OpenWindows() != 0 {
		t.Fatalf("open windows = %d after hide", f.host.OpenWindows())
	}

	f.send(t, event.Command(event.KindQuit))
	f.finish(t)
}

func TestShowWhileVisibleIsNoop(t *testing.T) {
	f := newFixture(t, Options{})

	f.send(t, event.Command(event.KindShow))
	f.send(t, event.Command(event.KindShow))

	if f.host.CreatedWindows() != 1 {
		t.Fatalf("created %d windows, want 1", f.host.CreatedWindows())
	}
	f.send(t, event.Command(event.KindQuit))
	f.finish(t)
}

func TestTogglePairingRoundTrips(t *testing.T) {
	f := newFixture(t, Options{})

	if resp := f.send(t, event.Command(event.KindToggle)); !resp.OK {
		t.Fatalf("first toggle failed: %+v", resp)
	}
	if f.host.OpenWindows() != 1 {
		t.Fatal("first toggle did not show")
	}
	if resp := f.send(t, event.Command(event.KindToggle)); !resp.OK {
		t.Fatalf("second toggle failed: %+v", resp)
	}
	if f.host.OpenWindows() != 0 {
		t.Fatal("second toggle did not hide")
	}
	if f.host.CreatedWindows() != 1 {
		t.Fatalf("created %d windows across toggle pair", f.host.CreatedWindows())
	}

	f.send(t, event.Command(event.KindQuit))
	f.finish(t)
}

func TestRequestHideClosesWithoutReply(t *testing.T) {
	f := newFixture(t, Options{})

	f.send(t, event.Command(event.KindShow))
	f.queue.Send(event.RequestHide())

	// Quit also proves the loop is still serving after the no-reply event.
	f.send(t, event.Command(event.KindQuit))
	f.finish(t)

	if f.host.OpenWindows() != 0 {
		t.Fatalf("open windows = %d after request_hide", f.host.OpenWindows())
	}
}

func TestSetThemeUnknownLeavesStateAlone(t *testing.T) {
	store := testsupport.NewConfigStore(t)
	f := newFixture(t, Options{Store: store})

	resp := f.send(t, event.SetTheme("no-such-theme"))
	if resp.OK {
		t.Fatal("unknown theme accepted")
	}
	if !strings.Contains(resp.Error, "theme not found") {
		t.Fatalf("error = %q, want theme not found", resp.Error)
	}
	if store.Theme() != config.Default().Theme {
		t.Fatalf("theme mutated to %q on failed set", store.Theme())
	}

	f.send(t, event.Command(event.KindQuit))
	f.finish(t)
}

func TestSetThemeUnknownKeepsConfigFileBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	original := []byte("# hand edited\ntheme = \"default\"\n")
	if err := os.WriteFile(path, original, 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !exists {
		t.Fatal("seeded config file not found by Load")
	}
	store := config.NewStore(cfg, resolved, true)

	f := newFixture(t, Options{Store: store})
	if resp := f.send(t, event.SetTheme("no-such-theme")); resp.OK {
		t.Fatal("unknown theme accepted")
	}
	f.send(t, event.Command(event.KindQuit))
	f.finish(t)

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config back: %v", err)
	}
	if !bytes.Equal(original, after) {
		t.Fatalf("config file changed on failed set:\nbefore %q\nafter  %q", original, after)
	}
}

func TestSetThemeBundled(t *testing.T) {
	store := testsupport.NewConfigStore(t)
	f := newFixture(t, Options{Store: store})

	f.send(t, event.Command(event.KindShow))
	if resp := f.send(t, event.SetTheme("nord")); !resp.OK {
		t.Fatalf("set theme failed: %+v", resp)
	}
	if store.Theme() != "nord" {
		t.Fatalf("store theme = %q, want nord", store.Theme())
	}

	f.send(t, event.Command(event.KindQuit))
	f.finish(t)
}

func TestReloadRepliesBeforeReturning(t *testing.T) {
	f := newFixture(t, Options{})

	f.send(t, event.Command(event.KindShow))
	if resp := f.send(t, event.Command(event.KindReload)); !resp.OK {
		t.Fatalf("reload reply: %+v", resp)
	}

	if outcome := f.finish(t); outcome != OutcomeReload {
		t.Fatalf("outcome = %v, want reload", outcome)
	}
	if f.host.OpenWindows() != 0 {
		t.Fatal("window survived reload")
	}
}

func TestQuitStopsLoop(t *testing.T) {
	f := newFixture(t, Options{})

	if resp := f.send(t, event.Command(event.KindQuit)); !resp.OK {
		t.Fatalf("quit reply: %+v", resp)
	}
	if outcome := f.finish(t); outcome != OutcomeQuit {
		t.Fatalf("outcome = %v, want quit", outcome)
	}
}

func TestWindowConstructionFailureDoesNotStopLoop(t *testing.T) {
	f := newFixture(t, Options{Host: failingHost{}})

	resp := f.send(t, event.Command(event.KindShow))
	if resp.OK {
		t.Fatal("show succeeded against a failing host")
	}

	// The loop keeps serving.
	if resp := f.send(t, event.Command(event.KindQuit)); !resp.OK {
		t.Fatalf("quit after failed show: %+v", resp)
	}
	f.finish(t)
}

func TestCompositorFailureDegradesToEmptySwitcher(t *testing.T) {
	f := newFixture(t, Options{Compositor: &stubCompositor{listErr: errors.New("socket gone")}})

	if resp := f.send(t, event.Command(event.KindShow)); !resp.OK {
		t.Fatalf("show should survive a compositor error: %+v", resp)
	}
	f.send(t, event.Command(event.KindQuit))
	f.finish(t)
}

func TestEventsProcessedInArrivalOrder(t *testing.T) {
	queue := event.NewQueue()
	show := event.Command(event.KindShow)
	hide := event.Command(event.KindHide)
	quit := event.Command(event.KindQuit)

	// Enqueue the whole burst before the loop starts consuming, so
	// ordering is decided by the queue alone.
	queue.Send(show)
	queue.Send(hide)
	queue.Send(quit)

	f := newFixture(t, Options{Queue: queue})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, evt := range []event.Event{show, hide, quit} {
		resp, err := evt.Reply.Wait(ctx)
		if err != nil {
			t.Fatalf("no reply for %s: %v", evt.Kind, err)
		}
		if !resp.OK {
			t.Fatalf("%s failed: %+v", evt.Kind, resp)
		}
	}

	f.finish(t)
	if f.host.OpenWindows() != 0 {
		t.Fatal("final state is not hidden")
	}
}

func TestApplicationsChangedUpdatesIndex(t *testing.T) {
	f := newFixture(t, Options{})

	entries := []apps.Entry{{ID: "firefox", Name: "Firefox", Exec: "firefox"}}
	f.queue.Send(event.ApplicationsChanged(entries))
	f.send(t, event.Command(event.KindQuit))
	f.finish(t)

	got := f.loop.Applications()
	if len(got) != 1 || got[0].ID != "firefox" {
		t.Fatalf("application index = %+v", got)
	}
}

func TestClipboardCaptureStored(t *testing.T) {
	history, err := clipboard.Open(filepath.Join(t.TempDir(), "history.db"), 10)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer history.Close()

	f := newFixture(t, Options{History: history})
	f.queue.Send(event.ClipboardCaptured(clipboard.Capture{Content: "copied text"}))
	f.send(t, event.Command(event.KindQuit))
	f.finish(t)

	count, err := history.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("history count = %d, want 1", count)
	}
}
