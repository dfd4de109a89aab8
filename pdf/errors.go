package pdf

import (
	"context"
	"errors"
	"fmt"
)

// ErrTimeout indicates the external tool was killed after exceeding its deadline
var ErrTimeout = errors.New("command timed out")

// ToolError is returned when the external tool exits with a non-zero status
type ToolError struct {
	// Command is the binary that was executed
	Command string

	// ExitCode is the process exit status, -1 if it was terminated by a signal
	ExitCode int

	// Stderr is the captured diagnostic output
	Stderr string
}

// Error implements the error interface
func (e *ToolError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, e.Stderr)
}

// IsTimeoutError checks if the error is a timeout error
func IsTimeoutError(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// AsToolError returns the *ToolError in err's chain, if any
func AsToolError(err error) (*ToolError, bool) {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr, true
	}
	return nil, false
}
