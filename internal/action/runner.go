// Package action launches button commands without blocking the render loop.
package action

import (
	"fmt"
	"log/slog"
	"os/exec"
)

// ShellRunner starts commands through "/bin/sh -c", detached from the
// caller. A failed start is reported to the caller; a non-zero exit of the
// command itself is only logged.
type ShellRunner struct {
	logger *slog.Logger
}

// NewShellRunner creates a runner logging through the given logger.
func NewShellRunner(logger *slog.Logger) *ShellRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShellRunner{logger: logger}
}

// Run starts the command and returns without waiting for it.
func (r *ShellRunner) Run(command string) error {
	cmd := exec.Command("/bin/sh", "-c", command)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %q: %w", command, err)
	}

	// Reap the child so it never lingers as a zombie
	go func() {
		if err := cmd.Wait(); err != nil {
			r.logger.Debug("button command exited with error", "command", command, "error", err)
		}
	}()
	return nil
}
