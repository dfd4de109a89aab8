package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pdf_compressor/api"
	"pdf_compressor/logger"
	"pdf_compressor/pdf"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	// DefaultPort is the default server port
	DefaultPort = "8000"

	// ServerReadHeaderTimeout is the HTTP server read header timeout
	ServerReadHeaderTimeout = 15 * time.Second

	// ServerReadTimeout is the HTTP server read timeout, large enough for big uploads
	ServerReadTimeout = 2 * time.Minute

	// ServerWriteMargin is added to the compression timeout to get the write timeout
	ServerWriteMargin = 30 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	// A missing .env file is fine, the environment and flags still apply
	_ = godotenv.Load(".env")

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "pdf_compressor",
		Usage: "HTTP service that compresses uploaded PDFs with Ghostscript",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Value:   DefaultPort,
				Usage:   "Port to listen on",
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "ghostscript-path",
				Value:   pdf.DefaultGhostscriptPath,
				Usage:   "Ghostscript executable",
				EnvVars: []string{"GHOSTSCRIPT_PATH"},
			},
			&cli.StringFlag{
				Name:    "temp-dir",
				Usage:   "Directory for request temp files (default: system temp directory)",
				EnvVars: []string{"TEMP_DIR"},
			},
			&cli.Int64Flag{
				Name:    "max-file-size",
				Value:   api.DefaultMaxFileSize,
				Usage:   "Maximum upload size in bytes, 0 disables the check",
				EnvVars: []string{"MAX_FILE_SIZE"},
			},
			&cli.DurationFlag{
				Name:    "compress-timeout",
				Value:   pdf.DefaultCompressTimeout,
				Usage:   "Hard timeout for one Ghostscript run",
				EnvVars: []string{"COMPRESS_TIMEOUT"},
			},
			&cli.DurationFlag{
				Name:    "health-timeout",
				Value:   pdf.DefaultVersionTimeout,
				Usage:   "Timeout for the Ghostscript availability check",
				EnvVars: []string{"HEALTH_TIMEOUT"},
			},
			&cli.StringSliceFlag{
				Name:    "allowed-origins",
				Value:   cli.NewStringSlice(api.DefaultAllowedOrigins...),
				Usage:   "Origins allowed by CORS",
				EnvVars: []string{"ALLOWED_ORIGINS"},
			},
			&cli.Float64Flag{
				Name:    "rate-limit",
				Usage:   "Compression requests per second, 0 disables rate limiting",
				EnvVars: []string{"RATE_LIMIT"},
			},
			&cli.IntFlag{
				Name:    "rate-burst",
				Value:   5,
				Usage:   "Burst size for the compression rate limit",
				EnvVars: []string{"RATE_BURST"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "gin-mode",
				Value:   gin.ReleaseMode,
				Usage:   "Gin mode (debug, release, test)",
				EnvVars: []string{"GIN_MODE"},
			},
		},
		Action: run,
	}
}

// configFromContext assembles the api.Config from flags and environment
func configFromContext(c *cli.Context) (*api.Config, error) {
	config := &api.Config{
		Port:            c.String("port"),
		GhostscriptPath: c.String("ghostscript-path"),
		TempDir:         c.String("temp-dir"),
		MaxFileSize:     c.Int64("max-file-size"),
		CompressTimeout: c.Duration("compress-timeout"),
		HealthTimeout:   c.Duration("health-timeout"),
		RateLimit:       c.Float64("rate-limit"),
		RateBurst:       c.Int("rate-burst"),
	}

	for _, origin := range c.StringSlice("allowed-origins") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("invalid allowed origin %q: must start with http:// or https://", origin)
		}
		config.AllowedOrigins = append(config.AllowedOrigins, strings.TrimSuffix(origin, "/"))
	}
	if len(config.AllowedOrigins) == 0 {
		return nil, errors.New("at least one allowed origin is required")
	}

	if config.CompressTimeout <= 0 {
		return nil, fmt.Errorf("compress timeout must be positive, got %v", config.CompressTimeout)
	}
	if config.RateLimit < 0 {
		return nil, fmt.Errorf("rate limit must not be negative, got %v", config.RateLimit)
	}

	return config, nil
}

func run(c *cli.Context) error {
	log := logger.InitLogger(c.String("log-level"))
	defer logger.SafeSync(log)

	config, err := configFromContext(c)
	if err != nil {
		return err
	}

	gin.SetMode(c.String("gin-mode"))

	compressor := pdf.NewCompressor(config.GhostscriptPath, config.CompressTimeout, config.HealthTimeout)

	// Ghostscript is only needed per request, so a missing binary is a warning
	if version, err := compressor.Version(c.Context); err != nil {
		log.Warn("Ghostscript not available, compression requests will fail",
			zap.String("binary", compressor.Binary()), zap.Error(err))
	} else {
		log.Info("Ghostscript is available",
			zap.String("binary", compressor.Binary()), zap.String("version", version))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port),
		Handler:           api.NewRouter(config, compressor, log),
		ReadHeaderTimeout: ServerReadHeaderTimeout,
		ReadTimeout:       ServerReadTimeout,
		WriteTimeout:      compressor.Timeout() + ServerWriteMargin,
		IdleTimeout:       ServerIdleTimeout,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("max_file_size", humanize.IBytes(uint64(config.MaxFileSize))),
			zap.String("temp_dir", config.TempDir),
			zap.Duration("compress_timeout", compressor.Timeout()),
			zap.Strings("allowed_origins", config.AllowedOrigins))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited gracefully")
	return nil
}
