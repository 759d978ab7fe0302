package runner

// This package is the narrow boundary between this tool's sequencing
// logic and actual process creation, so callers can be tested with a
// fake implementation.

import (
	"io"
	"os/exec"
)

// Runner executes an external command synchronously and returns the
// error from its execution. A non-zero exit surfaces as an
// *exec.ExitError from the Exec implementation.
type Runner interface {
	Run(name string, args ...string) error
}

// Exec runs commands with os/exec. Nil writers discard the
// corresponding stream.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (e Exec) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}

// ExitCode extracts the process exit code from a Run error. It
// returns 0 for nil and -1 when the command never ran.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}
