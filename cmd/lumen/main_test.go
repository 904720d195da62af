package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lumen/internal/apps"
	"lumen/internal/compositor"
	"lumen/internal/config"
	"lumen/internal/daemon"
	"lumen/internal/event"
	"lumen/internal/ipc"
	"lumen/internal/search"
	"lumen/internal/testsupport"
	"lumen/internal/ui"
)

type cliTestEnv struct {
	endpoint string
	host     *ui.HeadlessHost
	store    *config.Store
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	endpoint := filepath.Join(base, "lumen.sock")
	queue := event.NewQueue()
	store := testsupport.NewConfigStore(t)

	catalog := search.NewCatalog([]apps.Entry{
		{ID: "firefox", Name: "Firefox", Comment: "Browse the web", Exec: "firefox"},
		{ID: "kitty", Name: "kitty", Comment: "Terminal emulator", Exec: "kitty"},
	})

	server, err := ipc.NewServer(context.Background(), endpoint, queue, store, catalog, nil)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	server.Serve()

	host := ui.NewHeadlessHost()
	loop := daemon.New(daemon.Options{
		Queue:      queue,
		Host:       host,
		Compositor: compositor.NewNoop(),
		Store:      store,
	})
	done := make(chan daemon.Outcome, 1)
	go func() { done <- loop.Run(context.Background()) }()

	t.Cleanup(func() {
		server.Close()
		queue.Close()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
		}
	})

	return &cliTestEnv{endpoint: endpoint, host: host, store: store}
}

func runCLI(t *testing.T, args []string, socket string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--socket", socket}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestShowAndHideCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"show"}, env.endpoint); err != nil {
		t.Fatalf("show: %v", err)
	}
	if got := env.host.OpenWindows(); got != 1 {
		t.Fatalf("open windows after show = %d, want 1", got)
	}

	if _, _, err := runCLI(t, []string{"hide"}, env.endpoint); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if got := env.host.OpenWindows(); got != 0 {
		t.Fatalf("open windows after hide = %d, want 0", got)
	}
}

func TestToggleCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"toggle"}, env.endpoint); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := env.host.OpenWindows(); got != 1 {
		t.Fatalf("open windows after toggle = %d, want 1", got)
	}
	if _, _, err := runCLI(t, []string{"toggle"}, env.endpoint); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := env.host.OpenWindows(); got != 0 {
		t.Fatalf("open windows after second toggle = %d, want 0", got)
	}
}

func TestThemeCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"theme", "set", "nord"}, env.endpoint)
	if err != nil {
		t.Fatalf("theme set: %v", err)
	}
	if !strings.Contains(stdout, "Theme set to nord") {
		t.Fatalf("theme set output = %q", stdout)
	}

	stdout, _, err = runCLI(t, []string{"theme", "current"}, env.endpoint)
	if err != nil {
		t.Fatalf("theme current: %v", err)
	}
	if strings.TrimSpace(stdout) != "nord" {
		t.Fatalf("theme current output = %q, want nord", stdout)
	}

	stdout, _, err = runCLI(t, []string{"theme", "list"}, env.endpoint)
	if err != nil {
		t.Fatalf("theme list: %v", err)
	}
	if !strings.Contains(stdout, "nord") || !strings.Contains(stdout, "default") {
		t.Fatalf("theme list output missing bundled themes: %q", stdout)
	}
}

func TestThemeSetUnknownFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"theme", "set", "no-such-theme"}, env.endpoint)
	if err == nil {
		t.Fatal("expected error for unknown theme")
	}
	if current := env.store.Theme(); current == "no-such-theme" {
		t.Fatalf("store theme changed to %q despite failure", current)
	}
}

func TestAppsSearchCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"apps", "search", "fire"}, env.endpoint)
	if err != nil {
		t.Fatalf("apps search: %v", err)
	}
	if !strings.Contains(stdout, "Firefox") {
		t.Fatalf("apps search output = %q, want Firefox", stdout)
	}
	if strings.Contains(stdout, "kitty") {
		t.Fatalf("apps search output = %q, did not expect kitty", stdout)
	}
}

func TestClientCommandWithoutDaemon(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "absent.sock")

	_, _, err := runCLI(t, []string{"show"}, socket)
	if err == nil {
		t.Fatal("expected error when no daemon is listening")
	}
	if !strings.Contains(err.Error(), "start it by running") {
		t.Fatalf("error = %q, want a hint to start the daemon", err)
	}
}

func TestQuitCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"quit"}, env.endpoint)
	if err != nil {
		t.Fatalf("quit: %v", err)
	}
	if !strings.Contains(stdout, "Daemon stopped") {
		t.Fatalf("quit output = %q", stdout)
	}
}
