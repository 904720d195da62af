package compositor

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	kwinService   = "org.kde.KWin"
	kwinPath      = "/KWin"
	kwinInterface = "org.kde.KWin"
)

// KWin handles KDE Plasma sessions. The session D-Bus is only a feature
// probe; window listing and activation go through the kdotool command,
// which wraps KWin's scripting interface.
type KWin struct {
	conn *dbus.Conn
}

// NewKWin constructs the KWin backend. The second return value is false
// outside a KDE session, when the session bus is unreachable, when KWin
// does not answer the probe, or when kdotool is not installed.
func NewKWin() (*KWin, bool) {
	if os.Getenv("KDE_SESSION_VERSION") == "" {
		return nil, false
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, false
	}

	var support string
	obj := conn.Object(kwinService, kwinPath)
	if err := obj.Call(kwinInterface+".supportInformation", 0).Store(&support); err != nil {
		_ = conn.Close()
		return nil, false
	}

	if _, err := exec.LookPath("kdotool"); err != nil {
		_ = conn.Close()
		return nil, false
	}

	return &KWin{conn: conn}, true
}

func kdotool(args ...string) (string, error) {
	out, err := exec.Command("kdotool", args...).Output()
	if err != nil {
		return "", fmt.Errorf("kdotool %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ListWindows enumerates windows through kdotool. Workspace and focus
// information is not available on this path; callers see workspace 1
// and no focused window, matching the backend's declared capabilities.
func (k *KWin) ListWindows() ([]WindowInfo, error) {
	out, err := kdotool("search", "--name", ".")
	if err != nil {
		return nil, err
	}

	var windows []WindowInfo
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}

		title, _ := kdotool("getwindowname", id)
		class, _ := kdotool("getwindowclassname", id)
		if title == "" && class == "" {
			continue
		}
		if isOwnWindow(class) {
			continue
		}

		windows = append(windows, WindowInfo{
			Address:   id,
			Title:     displayTitle(title, class),
			Class:     class,
			Workspace: 1,
		})
	}
	return windows, nil
}

// FocusWindow activates a window by its KWin UUID.
func (k *KWin) FocusWindow(address string) error {
	_, err := kdotool("windowactivate", address)
	return err
}

func (k *KWin) Name() string { return "KWin" }

func (k *KWin) Capabilities() Capabilities { return LimitedCapabilities() }

// Close releases the probe connection.
func (k *KWin) Close() error {
	if k.conn == nil {
		return nil
	}
	return k.conn.Close()
}
