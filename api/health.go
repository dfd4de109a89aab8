package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// root handles GET / as a static liveness check
func (h *handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  StatusHealthy,
		"service": ServiceName,
		"version": ServiceVersion,
	})
}

// health handles GET /health. Ghostscript reachability is reported as data,
// the endpoint itself always answers 200.
func (h *handler) health(c *gin.Context) {
	response := gin.H{
		"status":                StatusHealthy,
		"ghostscript_available": false,
		"endpoints": gin.H{
			"compress_pdf": PathCompressPDF,
			"health":       PathHealth,
		},
	}

	version, err := h.compressor.Version(c.Request.Context())
	if err != nil {
		loggerFor(c, h.logger).Warn("Ghostscript is not available", zap.Error(err))
	} else {
		response["ghostscript_available"] = true
		response["ghostscript_version"] = version
	}

	c.JSON(http.StatusOK, response)
}
