package pdf

import "time"

const (
	// DefaultGhostscriptPath is the Ghostscript binary looked up in PATH
	DefaultGhostscriptPath = "gs"

	// DefaultCompressTimeout is the hard wall-clock limit for one compression run
	DefaultCompressTimeout = 60 * time.Second

	// DefaultVersionTimeout bounds the "gs --version" availability check
	DefaultVersionTimeout = 5 * time.Second

	// OutputDevice is the Ghostscript device that rewrites PDFs
	OutputDevice = "pdfwrite"

	// CompatibilityLevel is the PDF version of the compressed output
	CompatibilityLevel = "1.4"

	// OutputResolution is the output resolution in dpi
	OutputResolution = 150

	// processWaitDelay is how long Wait keeps draining pipes after the process was killed
	processWaitDelay = 2 * time.Second
)
