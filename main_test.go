package main

import (
	"os"
	"testing"
	"time"

	"pdf_compressor/api"
	"pdf_compressor/pdf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// parseConfig runs the app with args and captures the resulting config
func parseConfig(t *testing.T, args ...string) (*api.Config, error) {
	t.Helper()

	var (
		config    *api.Config
		configErr error
	)
	app := newApp()
	app.Action = func(c *cli.Context) error {
		config, configErr = configFromContext(c)
		return nil
	}

	require.NoError(t, app.Run(append([]string{"pdf_compressor"}, args...)))
	return config, configErr
}

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "GHOSTSCRIPT_PATH", "TEMP_DIR", "MAX_FILE_SIZE", "COMPRESS_TIMEOUT",
		"HEALTH_TIMEOUT", "ALLOWED_ORIGINS", "RATE_LIMIT", "RATE_BURST",
	} {
		// Setenv restores the original value when the test ends
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	config, err := parseConfig(t)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, config.Port)
	assert.Equal(t, pdf.DefaultGhostscriptPath, config.GhostscriptPath)
	assert.Equal(t, int64(api.DefaultMaxFileSize), config.MaxFileSize)
	assert.Equal(t, 60*time.Second, config.CompressTimeout)
	assert.Equal(t, 5*time.Second, config.HealthTimeout)
	assert.Equal(t, api.DefaultAllowedOrigins, config.AllowedOrigins)
	assert.Zero(t, config.RateLimit)
}

func TestConfigFromFlags(t *testing.T) {
	clearConfigEnv(t)

	config, err := parseConfig(t,
		"--port", "9090",
		"--ghostscript-path", "/usr/local/bin/gs",
		"--compress-timeout", "30s",
		"--allowed-origins", "https://example.com/",
		"--rate-limit", "2.5",
	)
	require.NoError(t, err)

	assert.Equal(t, "9090", config.Port)
	assert.Equal(t, "/usr/local/bin/gs", config.GhostscriptPath)
	assert.Equal(t, 30*time.Second, config.CompressTimeout)
	assert.Equal(t, []string{"https://example.com"}, config.AllowedOrigins)
	assert.Equal(t, 2.5, config.RateLimit)
}

func TestConfigFromEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,http://localhost:4000")

	config, err := parseConfig(t)
	require.NoError(t, err)

	assert.Equal(t, "7000", config.Port)
	assert.Equal(t, []string{"https://a.example", "http://localhost:4000"}, config.AllowedOrigins)
}

func TestConfigRejectsInvalidOrigin(t *testing.T) {
	clearConfigEnv(t)

	_, err := parseConfig(t, "--allowed-origins", "example.com")
	assert.Error(t, err)
}

func TestConfigRejectsNonPositiveTimeout(t *testing.T) {
	clearConfigEnv(t)

	_, err := parseConfig(t, "--compress-timeout", "0s")
	assert.Error(t, err)
}
