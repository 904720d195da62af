package ipc

import (
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// ErrDaemonNotRunning is returned by Dial when nothing answers on the
// endpoint.
var ErrDaemonNotRunning = errors.New("daemon is not running")

// Client provides RPC access to the daemon. One CLI invocation is one
// Dial, one call, one Close.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the daemon's control endpoint.
func Dial(endpoint string) (*Client, error) {
	conn, err := dialEndpoint(endpoint, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%w (endpoint %s)", ErrDaemonNotRunning, endpoint)
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Show asks the daemon to show the launcher window.
func (c *Client) Show() (*ShowResponse, error) {
	var resp ShowResponse
	if err := c.client.Call("Lumen.Show", ShowRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Hide asks the daemon to hide the launcher window.
func (c *Client) Hide() (*HideResponse, error) {
	var resp HideResponse
	if err := c.client.Call("Lumen.Hide", HideRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Toggle flips launcher visibility.
func (c *Client) Toggle() (*ToggleResponse, error) {
	var resp ToggleResponse
	if err := c.client.Call("Lumen.Toggle", ToggleRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Quit stops the daemon.
func (c *Client) Quit() (*QuitResponse, error) {
	var resp QuitResponse
	if err := c.client.Call("Lumen.Quit", QuitRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reload restarts the daemon process.
func (c *Client) Reload() (*ReloadResponse, error) {
	var resp ReloadResponse
	if err := c.client.Call("Lumen.Reload", ReloadRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetTheme switches the active theme.
func (c *Client) SetTheme(name string) (*SetThemeResponse, error) {
	var resp SetThemeResponse
	if err := c.client.Call("Lumen.SetTheme", SetThemeRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListThemes returns the theme catalogue.
func (c *Client) ListThemes() (*ListThemesResponse, error) {
	var resp ListThemesResponse
	if err := c.client.Call("Lumen.ListThemes", ListThemesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentTheme returns the active theme name.
func (c *Client) CurrentTheme() (*CurrentThemeResponse, error) {
	var resp CurrentThemeResponse
	if err := c.client.Call("Lumen.CurrentTheme", CurrentThemeRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchApps queries the application index.
func (c *Client) SearchApps(query string, limit int) (*SearchAppsResponse, error) {
	var resp SearchAppsResponse
	req := SearchAppsRequest{Query: query, Limit: limit}
	if err := c.client.Call("Lumen.SearchApps", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
