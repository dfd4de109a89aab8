package api

import (
	"context"
	"time"

	"pdf_compressor/pdf"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds application configuration
type Config struct {
	Port            string
	GhostscriptPath string
	TempDir         string
	MaxFileSize     int64
	CompressTimeout time.Duration
	HealthTimeout   time.Duration
	AllowedOrigins  []string

	// RateLimit is the sustained compression requests per second, 0 disables limiting
	RateLimit float64
	RateBurst int
}

// Compressor runs the external PDF compression tool
type Compressor interface {
	Compress(ctx context.Context, inFile, outFile string, profile pdf.QualityProfile) error
	Version(ctx context.Context) (string, error)
}

// handler carries the dependencies shared by all endpoints
type handler struct {
	config     *Config
	compressor Compressor
	logger     *zap.Logger
}

// NewRouter builds a gin engine with middleware and all routes registered
func NewRouter(config *Config, compressor Compressor, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), requestLogger(logger), recovery(logger))
	r.Use(allowRequestedHeaders(config.AllowedOrigins), cors.New(corsConfig(config.AllowedOrigins)))

	SetupRoutes(r, config, compressor, logger)
	return r
}

func SetupRoutes(r *gin.Engine, config *Config, compressor Compressor, logger *zap.Logger) {
	h := &handler{config: config, compressor: compressor, logger: logger}

	r.GET(PathRoot, h.root)
	r.GET(PathHealth, h.health)

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		burst := config.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}
	r.POST(PathCompressPDF, rateLimit(limiter), h.compressPDF)
}

func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding", "Authorization", "X-Requested-With", HeaderRequestID},
		ExposeHeaders:    []string{"Content-Disposition", HeaderOriginalSize, HeaderCompressedSize, HeaderSizeReduction, HeaderPageCount, HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
