package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Compressor runs Ghostscript to rewrite PDFs with a quality profile
type Compressor struct {
	binary         string
	timeout        time.Duration
	versionTimeout time.Duration
}

// NewCompressor creates a Compressor. Zero values fall back to the defaults.
func NewCompressor(binary string, timeout, versionTimeout time.Duration) *Compressor {
	if binary == "" {
		binary = DefaultGhostscriptPath
	}
	if timeout <= 0 {
		timeout = DefaultCompressTimeout
	}
	if versionTimeout <= 0 {
		versionTimeout = DefaultVersionTimeout
	}
	return &Compressor{
		binary:         binary,
		timeout:        timeout,
		versionTimeout: versionTimeout,
	}
}

// Binary returns the Ghostscript executable used by the compressor
func (c *Compressor) Binary() string {
	return c.binary
}

// Timeout returns the compression deadline
func (c *Compressor) Timeout() time.Duration {
	return c.timeout
}

// CompressArgs builds the Ghostscript argument list for one compression run
func CompressArgs(inFile, outFile string, profile QualityProfile) []string {
	return []string{
		"-sDEVICE=" + OutputDevice,
		"-dCompatibilityLevel=" + CompatibilityLevel,
		"-dPDFSETTINGS=" + string(profile),
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-dDetectDuplicateImages=true",
		"-dCompressFonts=true",
		fmt.Sprintf("-r%d", OutputResolution),
		"-sOutputFile=" + outFile,
		inFile,
	}
}

// Compress rewrites inFile into outFile using Ghostscript.
// It returns ErrTimeout when the run exceeds the compressor timeout and
// *ToolError when Ghostscript exits with a non-zero status.
func (c *Compressor) Compress(ctx context.Context, inFile, outFile string, profile QualityProfile) error {
	_, err := execCommandWithTimeout(ctx, c.timeout, c.binary, CompressArgs(inFile, outFile, profile)...)
	if err != nil {
		return fmt.Errorf("ghostscript compression failed: %w", err)
	}
	return nil
}

// Version queries "gs --version" and returns the reported version
func (c *Compressor) Version(ctx context.Context) (string, error) {
	output, err := execCommandWithTimeout(ctx, c.versionTimeout, c.binary, "--version")
	if err != nil {
		return "", fmt.Errorf("ghostscript version check failed: %w", err)
	}
	return strings.TrimSpace(string(output.Stdout)), nil
}
