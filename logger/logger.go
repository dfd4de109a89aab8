// Package logger builds the zap logger shared by the HTTP layer and main.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ExitFunc is a function that exits the program with a given status code
type ExitFunc func(int)

// DefaultExitFunc is the default implementation of ExitFunc
var DefaultExitFunc = os.Exit

// ParseLevel converts a LOG_LEVEL value to a zap level, defaulting to info
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitLoggerWithExit initializes a production zap logger at the given level.
// It takes an exit function to allow for testing.
func InitLoggerWithExit(level string, exit ExitFunc) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := config.Build()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		exit(1)
	}
	return logger
}

// InitLogger initializes a zap logger and exits the process if that fails
func InitLogger(level string) *zap.Logger {
	return InitLoggerWithExit(level, DefaultExitFunc)
}

// SafeSync syncs the logger and ignores "bad file descriptor" errors
// which can occur during shutdown when stderr is already closed
func SafeSync(logger *zap.Logger) {
	if logger == nil {
		return
	}

	if err := logger.Sync(); err != nil && !strings.Contains(err.Error(), "bad file descriptor") &&
		!strings.Contains(err.Error(), "inappropriate ioctl") {
		fmt.Fprintf(os.Stderr, "Failed to sync logger: %v\n", err)
	}
}
