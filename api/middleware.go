package api

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	requestIDKey       = "request_id"
	maxRequestIDLength = 128
)

// requestID propagates the caller's X-Request-ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// loggerFor returns a logger annotated with the request id, if any
func loggerFor(c *gin.Context, logger *zap.Logger) *zap.Logger {
	if id := c.GetString(requestIDKey); id != "" {
		return logger.With(zap.String(requestIDKey, id))
	}
	return logger
}

// requestLogger logs one line per request through zap
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("response_size", c.Writer.Size()),
		}

		log := loggerFor(c, logger)
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("Request failed", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("Request rejected", fields...)
		default:
			log.Info("Request handled", fields...)
		}
	}
}

// recovery turns panics into a JSON 500 and logs them
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		loggerFor(c, logger).Error("Panic while handling request",
			zap.Any("panic", recovered),
			zap.Stack("stack"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": DetailInternal})
	})
}

// rateLimit rejects requests beyond the limiter's rate. A nil limiter allows everything.
func rateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": DetailRateLimited})
			return
		}
		c.Next()
	}
}

// allowRequestedHeaders lets a preflight from an allowed origin use any request
// header it asks for. cors.New writes a fixed Access-Control-Allow-Headers, so
// the requested list is applied when the preflight response header is written.
func allowRequestedHeaders(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		requested := c.GetHeader("Access-Control-Request-Headers")
		if c.Request.Method == http.MethodOptions && requested != "" && allowed[c.GetHeader("Origin")] {
			c.Writer = &preflightWriter{ResponseWriter: c.Writer, allowHeaders: requested}
		}
		c.Next()
	}
}

// preflightWriter replaces the allowed headers just before the status is written
type preflightWriter struct {
	gin.ResponseWriter
	allowHeaders string
}

func (w *preflightWriter) WriteHeader(code int) {
	w.setAllowHeaders()
	w.ResponseWriter.WriteHeader(code)
}

func (w *preflightWriter) WriteHeaderNow() {
	w.setAllowHeaders()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *preflightWriter) setAllowHeaders() {
	if w.Written() {
		return
	}
	header := w.Header()
	header.Set("Access-Control-Allow-Headers", w.allowHeaders)
	if !strings.Contains(strings.Join(header.Values("Vary"), ","), "Access-Control-Request-Headers") {
		header.Add("Vary", "Access-Control-Request-Headers")
	}
}
