package compositor

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
)

// Hyprland talks to the Hyprland IPC socket. Requests are plain command
// strings, responses are read until the peer closes the connection.
type Hyprland struct {
	socketPath string
}

// NewHyprland constructs the Hyprland backend from the session
// environment. The second return value is false when the session is not
// running under Hyprland.
func NewHyprland() (*Hyprland, bool) {
	signature := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if signature == "" {
		return nil, false
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = "/tmp"
	}
	return &Hyprland{
		socketPath: filepath.Join(runtimeDir, "hypr", signature, ".socket.sock"),
	}, true
}

func (h *Hyprland) send(cmd string) ([]byte, error) {
	conn, err := net.Dial("unix", h.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect hyprland socket %s: %w", h.socketPath, err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(cmd)); err != nil {
		return nil, fmt.Errorf("write hyprland command: %w", err)
	}
	response, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("read hyprland response: %w", err)
	}
	return response, nil
}

type hyprlandClient struct {
	Address        string            `json:"address"`
	Title          string            `json:"title"`
	Class          string            `json:"class"`
	Workspace      hyprlandWorkspace `json:"workspace"`
	FocusHistoryID int               `json:"focusHistoryID"`
	Mapped         bool              `json:"mapped"`
	Hidden         bool              `json:"hidden"`
}

type hyprlandWorkspace struct {
	ID int `json:"id"`
}

// ListWindows issues j/clients and normalizes the result. Unmapped and
// hidden clients, empty-class specials, and the launcher's own surface
// are dropped.
func (h *Hyprland) ListWindows() ([]WindowInfo, error) {
	raw, err := h.send("j/clients")
	if err != nil {
		return nil, err
	}

	var clients []hyprlandClient
	if err := json.Unmarshal(raw, &clients); err != nil {
		return nil, fmt.Errorf("parse hyprland clients: %w", err)
	}

	windows := make([]WindowInfo, 0, len(clients))
	for _, client := range clients {
		if !client.Mapped || client.Hidden {
			continue
		}
		if client.Class == "" || isOwnWindow(client.Class) {
			continue
		}
		windows = append(windows, WindowInfo{
			Address:   client.Address,
			Title:     displayTitle(client.Title, client.Class),
			Class:     client.Class,
			Workspace: client.Workspace.ID,
			// focusHistoryID orders windows by focus recency; zero is
			// the window that holds focus now.
			Focused: client.FocusHistoryID == 0,
		})
	}
	return windows, nil
}

// FocusWindow activates a window by its hex address.
func (h *Hyprland) FocusWindow(address string) error {
	_, err := h.send("dispatch focuswindow address:" + address)
	return err
}

func (h *Hyprland) Name() string { return "Hyprland" }

func (h *Hyprland) Capabilities() Capabilities { return FullCapabilities() }
