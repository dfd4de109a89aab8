package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// commandOutput holds the captured streams of a finished command
type commandOutput struct {
	Stdout []byte
	Stderr []byte
}

// execCommandWithTimeout executes a command with a timeout derived from ctx.
// The process is killed when the deadline passes and ErrTimeout is returned.
// A non-zero exit is reported as *ToolError carrying the captured stderr.
func execCommandWithTimeout(ctx context.Context, timeout time.Duration, name string, args ...string) (*commandOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = processWaitDelay

	err := cmd.Run()
	output := &commandOutput{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return output, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return output, fmt.Errorf("%s: %w after %v", name, ErrTimeout, timeout)
		}
		return output, fmt.Errorf("%s: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return output, &ToolError{
			Command:  name,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		}
	}

	return output, fmt.Errorf("failed to run %s: %w", name, err)
}
