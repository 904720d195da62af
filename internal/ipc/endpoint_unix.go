//go:build !windows

package ipc

import (
	"net"
	"os"
	"path/filepath"
	"time"
)

// DefaultEndpoint returns the daemon's control socket path,
// ${XDG_RUNTIME_DIR:-/tmp}/lumen.sock.
func DefaultEndpoint() string {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = "/tmp"
	}
	return filepath.Join(runtimeDir, "lumen.sock")
}

func listenEndpoint(endpoint string) (net.Listener, error) {
	return net.Listen("unix", endpoint)
}

func dialEndpoint(endpoint string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("unix", endpoint, timeout)
}

// removeEndpoint deletes a socket file. Missing files are fine.
func removeEndpoint(endpoint string) error {
	err := os.Remove(endpoint)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
