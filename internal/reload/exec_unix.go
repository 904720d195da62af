//go:build !windows

package reload

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// execProcess replaces the current process image. Does not return on
// success.
func execProcess(executable string) error {
	if err := unix.Exec(executable, []string{executable}, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", executable, err)
	}
	return nil
}
