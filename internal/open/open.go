// Package open launches the platform's file manager on a path.
package open

import (
	"fmt"
	"os/exec"
)

// Reveal shows path in the operating system's file browser. The viewer
// is started detached; Reveal does not wait for it to exit.
func Reveal(path string) error {
	name, args := revealCommand(path)

	bin, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("locating %s: %w", name, err)
	}

	cmd := exec.Command(bin, args...)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}

	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("detaching %s: %w", name, err)
	}

	return nil
}
