package clippy

import (
	"errors"
	"fmt"
)

// ExitError reports that clippy ran to completion but exited with a
// non-zero status. It is the expected failure mode of a lint run, kept
// distinct from the tool failing to start at all.
type ExitError struct {
	// Status is the child's exit code, or -1 when it was killed by a
	// signal before exiting.
	Status int

	// State is the final process state, e.g. "exit status 1".
	State string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("clippy returned non-0 status: %s", e.State)
}

// ExitCode maps a Run error to the status this process should exit
// with: 0 on success, clippy's own status when it ran and failed, and 1
// for everything else, including a signal-killed child.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Status > 0 {
		return exitErr.Status
	}

	return 1
}
