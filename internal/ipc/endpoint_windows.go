//go:build windows

package ipc

import (
	"net"
	"time"
)

// defaultPort is the fixed loopback port used in place of a Unix socket.
const defaultPort = "127.0.0.1:52690"

// DefaultEndpoint returns the daemon's control endpoint.
func DefaultEndpoint() string {
	return defaultPort
}

func listenEndpoint(endpoint string) (net.Listener, error) {
	return net.Listen("tcp", endpoint)
}

func dialEndpoint(endpoint string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("tcp", endpoint, timeout)
}

// removeEndpoint is a no-op: TCP endpoints leave nothing on disk.
func removeEndpoint(string) error {
	return nil
}
