// Package runner provides the checked command execution layer shared by the
// installer's systemd control and the build-configuration passes.
package runner

import (
	"context"
	"os/exec"
	"time"
)

// defaultTimeout bounds every external invocation. A hung tool must not
// stall the rest of the pipeline indefinitely.
const defaultTimeout = 30 * time.Minute

// CommandRunner abstracts external command execution for testability.
type CommandRunner interface {
	// Run executes name with args and returns the combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath reports whether name resolves to an executable in PATH.
	LookPath(name string) bool
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// NewExecRunner returns a CommandRunner backed by the real os/exec.
func NewExecRunner() CommandRunner {
	return ExecRunner{}
}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	return cmd.CombinedOutput()
}

func (ExecRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
