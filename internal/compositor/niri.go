package compositor

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

// Niri talks to the niri IPC socket. The protocol is newline-delimited
// JSON: one request line, one reply line.
type Niri struct {
	socketPath string
}

// NewNiri constructs the Niri backend from the session environment. The
// second return value is false when NIRI_SOCKET is unset.
func NewNiri() (*Niri, bool) {
	socketPath := os.Getenv("NIRI_SOCKET")
	if socketPath == "" {
		return nil, false
	}
	return &Niri{socketPath: socketPath}, true
}

func (n *Niri) send(request string) ([]byte, error) {
	conn, err := net.Dial("unix", n.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect niri socket %s: %w", n.socketPath, err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(request)); err != nil {
		return nil, fmt.Errorf("write niri request: %w", err)
	}
	reader := bufio.NewReader(conn)
	line, err := reader.ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return nil, fmt.Errorf("read niri reply: %w", err)
	}
	return line, nil
}

type niriWindow struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	AppID       string `json:"app_id"`
	WorkspaceID int64  `json:"workspace_id"`
	IsFocused   bool   `json:"is_focused"`
}

type niriReply struct {
	Ok  *niriOkPayload  `json:"Ok"`
	Err json.RawMessage `json:"Err"`
}

type niriOkPayload struct {
	Windows []niriWindow `json:"Windows"`
}

// ListWindows requests the window list and normalizes the reply
// envelope. The launcher's own surface is dropped.
func (n *Niri) ListWindows() ([]WindowInfo, error) {
	raw, err := n.send("\"Windows\"\n")
	if err != nil {
		return nil, err
	}

	var reply niriReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("parse niri reply: %w", err)
	}
	if reply.Ok == nil {
		if len(reply.Err) > 0 {
			return nil, fmt.Errorf("niri rejected windows request: %s", reply.Err)
		}
		return nil, errors.New("niri reply missing Ok payload")
	}

	windows := make([]WindowInfo, 0, len(reply.Ok.Windows))
	for _, window := range reply.Ok.Windows {
		if isOwnWindow(window.AppID) {
			continue
		}
		windows = append(windows, WindowInfo{
			Address:   strconv.FormatInt(window.ID, 10),
			Title:     displayTitle(window.Title, window.AppID),
			Class:     window.AppID,
			Workspace: int(window.WorkspaceID),
			Focused:   window.IsFocused,
		})
	}
	return windows, nil
}

// FocusWindow activates a window by its numeric id.
func (n *Niri) FocusWindow(address string) error {
	id, err := strconv.ParseInt(address, 10, 64)
	if err != nil {
		return fmt.Errorf("niri window address %q is not numeric: %w", address, err)
	}
	request := fmt.Sprintf("{\"Action\":{\"FocusWindow\":{\"id\":%d}}}\n", id)
	_, err = n.send(request)
	return err
}

func (n *Niri) Name() string { return "Niri" }

func (n *Niri) Capabilities() Capabilities { return FullCapabilities() }
