package compositor

import (
	"net"
	"os"
	"path/filepath"
	"testing"
)

// serveOnce accepts a single connection, reads one request, replies with
// the fixture payload, and closes.
func serveOnce(t *testing.T, socketPath string, handler func(request string) string) {
	t.Helper()
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("listen %s: %v", socketPath, err)
	}
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 1024)
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		_, _ = conn.Write([]byte(handler(string(buf[:n]))))
	}()
}

const hyprlandClientsFixture = `[
  {"address":"0x1","title":"Firefox","class":"firefox","workspace":{"id":2},"focusHistoryID":0,"mapped":true,"hidden":false},
  {"address":"0x2","title":"","class":"kitty","workspace":{"id":1},"focusHistoryID":3,"mapped":true,"hidden":false},
  {"address":"0x3","title":"Launcher","class":"Lumen","workspace":{"id":1},"focusHistoryID":1,"mapped":true,"hidden":false},
  {"address":"0x4","title":"Ghost","class":"ghost","workspace":{"id":1},"focusHistoryID":2,"mapped":false,"hidden":false},
  {"address":"0x5","title":"Special","class":"","workspace":{"id":1},"focusHistoryID":4,"mapped":true,"hidden":false}
]`

func newTestHyprland(t *testing.T) *Hyprland {
	t.Helper()
	runtimeDir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "sig")

	socketDir := filepath.Join(runtimeDir, "hypr", "sig")
	if err := os.MkdirAll(socketDir, 0o755); err != nil {
		t.Fatalf("mkdir socket dir: %v", err)
	}

	client, ok := NewHyprland()
	if !ok {
		t.Fatal("hyprland backend not constructed with env set")
	}
	return client
}

func TestHyprlandListWindows(t *testing.T) {
	client := newTestHyprland(t)
	serveOnce(t, client.socketPath, func(request string) string {
		if request != "j/clients" {
			t.Errorf("unexpected request %q", request)
		}
		return hyprlandClientsFixture
	})

	windows, err := client.ListWindows()
	if err != nil {
		t.Fatalf("list windows: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2: %+v", len(windows), windows)
	}
	if !windows[0].Focused || windows[0].Class != "firefox" || windows[0].Workspace != 2 {
		t.Fatalf("focused window not normalized: %+v", windows[0])
	}
	if windows[1].Title != "kitty" {
		t.Fatalf("empty title should fall back to class, got %q", windows[1].Title)
	}
	for _, window := range windows {
		if isOwnWindow(window.Class) {
			t.Fatalf("launcher window leaked into listing: %+v", window)
		}
	}
}

func TestHyprlandFocusWindow(t *testing.T) {
	client := newTestHyprland(t)
	requests := make(chan string, 1)
	serveOnce(t, client.socketPath, func(request string) string {
		requests <- request
		return "ok"
	})

	if err := client.FocusWindow("0x1"); err != nil {
		t.Fatalf("focus window: %v", err)
	}
	if got := <-requests; got != "dispatch focuswindow address:0x1" {
		t.Fatalf("wrong dispatch command %q", got)
	}
}

func TestNewHyprlandRequiresSignature(t *testing.T) {
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	if _, ok := NewHyprland(); ok {
		t.Fatal("backend constructed without instance signature")
	}
}

const niriWindowsFixture = `{"Ok":{"Windows":[` +
	`{"id":7,"title":"Editor","app_id":"dev.zed.Zed","workspace_id":3,"is_focused":true},` +
	`{"id":8,"title":"","app_id":"foot","workspace_id":1,"is_focused":false},` +
	`{"id":9,"title":"Launcher","app_id":"lumen","workspace_id":1,"is_focused":false}` +
	`]}}` + "\n"

func newTestNiri(t *testing.T) *Niri {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "niri.sock")
	t.Setenv("NIRI_SOCKET", socketPath)

	client, ok := NewNiri()
	if !ok {
		t.Fatal("niri backend not constructed with env set")
	}
	return client
}

func TestNiriListWindows(t *testing.T) {
	client := newTestNiri(t)
	serveOnce(t, client.socketPath, func(request string) string {
		if request != "\"Windows\"\n" {
			t.Errorf("unexpected request %q", request)
		}
		return niriWindowsFixture
	})

	windows, err := client.ListWindows()
	if err != nil {
		t.Fatalf("list windows: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2: %+v", len(windows), windows)
	}
	if windows[0].Address != "7" || !windows[0].Focused || windows[0].Workspace != 3 {
		t.Fatalf("niri window not normalized: %+v", windows[0])
	}
	if windows[1].Title != "foot" {
		t.Fatalf("empty title should fall back to app id, got %q", windows[1].Title)
	}
}

func TestNiriListWindowsErrorEnvelope(t *testing.T) {
	client := newTestNiri(t)
	serveOnce(t, client.socketPath, func(string) string {
		return `{"Err":"unsupported request"}` + "\n"
	})

	if _, err := client.ListWindows(); err == nil {
		t.Fatal("error envelope not surfaced")
	}
}

func TestNiriFocusWindow(t *testing.T) {
	client := newTestNiri(t)
	requests := make(chan string, 1)
	serveOnce(t, client.socketPath, func(request string) string {
		requests <- request
		return `{"Ok":{"Handled":null}}` + "\n"
	})

	if err := client.FocusWindow("42"); err != nil {
		t.Fatalf("focus window: %v", err)
	}
	want := `{"Action":{"FocusWindow":{"id":42}}}` + "\n"
	if got := <-requests; got != want {
		t.Fatalf("focus request = %q, want %q", got, want)
	}
}

func TestNiriFocusWindowRejectsNonNumericAddress(t *testing.T) {
	client := newTestNiri(t)
	if err := client.FocusWindow("0xbeef"); err == nil {
		t.Fatal("non-numeric address accepted")
	}
}

func TestNoopBackend(t *testing.T) {
	client := NewNoop()
	windows, err := client.ListWindows()
	if err != nil || len(windows) != 0 {
		t.Fatalf("noop listing = %v, %v", windows, err)
	}
	if err := client.FocusWindow("anything"); err != nil {
		t.Fatalf("noop focus: %v", err)
	}
	if client.Capabilities().WindowSwitching {
		t.Fatal("noop backend claims window switching")
	}
}

func TestDetectFallsBackToNoop(t *testing.T) {
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	t.Setenv("NIRI_SOCKET", "")
	t.Setenv("KDE_SESSION_VERSION", "")

	client := Detect(nil)
	if client.Name() != "none" {
		t.Fatalf("detected %q in a bare environment", client.Name())
	}
}

func TestDetectPrefersHyprland(t *testing.T) {
	runtimeDir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "sig")
	t.Setenv("NIRI_SOCKET", filepath.Join(runtimeDir, "niri.sock"))

	client := Detect(nil)
	if client.Name() != "Hyprland" {
		t.Fatalf("detection order broken, got %q", client.Name())
	}
}

func TestIsOwnWindow(t *testing.T) {
	for _, class := range []string{"lumen", "Lumen", "LUMEN"} {
		if !isOwnWindow(class) {
			t.Errorf("isOwnWindow(%q) = false", class)
		}
	}
	for _, class := range []string{"firefox", "", "lumenapp"} {
		if isOwnWindow(class) {
			t.Errorf("isOwnWindow(%q) = true", class)
		}
	}
}

// Guard against the reply reader consuming more than the first line.
func TestNiriReplyIsSingleLine(t *testing.T) {
	client := newTestNiri(t)
	serveOnce(t, client.socketPath, func(string) string {
		return niriWindowsFixture + "garbage second line\n"
	})

	windows, err := client.ListWindows()
	if err != nil {
		t.Fatalf("list windows: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
}
