//go:build windows

package reload

import (
	"fmt"
	"os"
	"os/exec"
)

// execProcess approximates a re-exec by spawning a fresh detached daemon
// and exiting the current one. Windows has no execve.
func execProcess(executable string) error {
	cmd := exec.Command(executable)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("respawn %s: %w", executable, err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("release respawned process: %w", err)
	}
	os.Exit(0)
	return nil
}
