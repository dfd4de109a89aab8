package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{" info ", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestInitLoggerWithExit(t *testing.T) {
	exitCalled := false
	logger := InitLoggerWithExit("debug", func(int) { exitCalled = true })

	require.NotNil(t, logger)
	assert.False(t, exitCalled)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInitLoggerRespectsLevel(t *testing.T) {
	logger := InitLoggerWithExit("error", func(int) {})

	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestSafeSync(t *testing.T) {
	SafeSync(nil)
	SafeSync(zaptest.NewLogger(t))
}
