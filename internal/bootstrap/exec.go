package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Exec runs system commands and writes files on behalf of the steps.
// The real implementation shells out; tests substitute a recording fake.
type Exec interface {
	// Run executes the command and returns an error on non-zero exit.
	Run(ctx context.Context, name string, args ...string) error
	// WriteFile writes data to path, creating or truncating it.
	WriteFile(path string, data []byte) error
}

// SystemExec is the Exec implementation backed by os/exec and the
// local filesystem. Command output is forwarded to the progress log.
type SystemExec struct {
	Log *Log
}

var _ Exec = (*SystemExec)(nil)

func (e *SystemExec) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if e.Log != nil {
		cmd.Stdout = e.Log.Writer()
		cmd.Stderr = e.Log.Writer()
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (e *SystemExec) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
