// Package reload replaces the running daemon process so a reload behaves
// like a stop followed by a cold start.
package reload

import (
	"fmt"
	"os"
)

// Exec restarts the daemon in place. The caller must have released the
// control endpoint first; Exec removes the endpoint file again anyway to
// close the race where that cleanup has not landed yet. On POSIX systems
// Exec does not return on success.
func Exec(endpoint string) error {
	if endpoint != "" {
		if err := os.Remove(endpoint); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove endpoint before re-exec: %w", err)
		}
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve own binary: %w", err)
	}

	// No arguments: the daemon's bare invocation is its default entry
	// path, so the replacement process comes up exactly like a fresh
	// start.
	return execProcess(executable)
}
