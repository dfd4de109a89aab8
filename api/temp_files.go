package api

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// closeFile is replaced in tests to simulate close failures
var closeFile = func(f *os.File) error { return f.Close() }

// TempArtifacts are the input and output files of one compression request.
// Both files are created empty with unique names and removed by Release.
type TempArtifacts struct {
	InputPath  string
	OutputPath string

	// InputSize is the number of bytes written to InputPath
	InputSize int64

	logger   *zap.Logger
	released bool
}

// NewTempArtifacts creates the request's temp files in dir and copies content
// into the input file. On error nothing is left behind.
func NewTempArtifacts(dir string, content io.Reader, logger *zap.Logger) (*TempArtifacts, error) {
	if err := ensureTempDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	a := &TempArtifacts{logger: logger}

	in, err := os.CreateTemp(dir, "input_*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp input file: %w", err)
	}
	a.InputPath = in.Name()

	n, err := io.Copy(in, content)
	if closeErr := closeFile(in); err == nil {
		err = closeErr
	}
	if err != nil {
		a.Release()
		return nil, fmt.Errorf("failed to save input file: %w", err)
	}
	a.InputSize = n

	out, err := os.CreateTemp(dir, "output_*.pdf")
	if err != nil {
		a.Release()
		return nil, fmt.Errorf("failed to create temp output file: %w", err)
	}
	a.OutputPath = out.Name()
	if err := closeFile(out); err != nil {
		a.Release()
		return nil, fmt.Errorf("failed to close temp output file: %w", err)
	}

	return a, nil
}

// Release removes both temp files. Failures are logged and otherwise ignored.
// It is safe to call more than once.
func (a *TempArtifacts) Release() {
	if a == nil || a.released {
		return
	}
	a.released = true

	for _, path := range []string{a.InputPath, a.OutputPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && a.logger != nil {
			a.logger.Debug("Failed to remove temp file", zap.String("path", path), zap.Error(err))
		}
	}
}

// ensureTempDir creates the temp directory if it doesn't exist.
// An empty dir means the system temp directory.
func ensureTempDir(tempDir string) error {
	if tempDir == "" {
		return nil
	}
	return os.MkdirAll(tempDir, DefaultFilePermissions)
}
