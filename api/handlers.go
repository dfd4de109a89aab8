package api

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pdf_compressor/pdf"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// compressPDF handles POST /api/compress-pdf
func (h *handler) compressPDF(c *gin.Context) {
	log := loggerFor(c, h.logger)

	if h.config.MaxFileSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.config.MaxFileSize+MultipartOverhead)
	}

	header, err := c.FormFile(FormFieldFile)
	if err != nil {
		if isBodyTooLarge(err) {
			h.fileTooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": DetailNoFile})
		return
	}

	if !hasPDFExtension(header.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": DetailNotPDF})
		return
	}

	if h.config.MaxFileSize > 0 && header.Size > h.config.MaxFileSize {
		h.fileTooLarge(c)
		return
	}

	quality := c.PostForm(FormFieldQuality)
	if quality == "" {
		quality = c.Query(FormFieldQuality)
	}
	profile := pdf.ResolveQuality(quality)
	if quality != "" && !pdf.IsKnownQuality(quality) {
		log.Debug("Unknown quality, using default", zap.String("quality", quality), zap.String("default", pdf.DefaultQuality))
	}

	log = log.With(
		zap.String("filename", header.Filename),
		zap.String("quality", quality),
		zap.String("profile", string(profile)),
	)

	result, err := h.compress(c.Request.Context(), header, profile, log)
	if err != nil {
		status, detail := errorResponse(err)
		log.Error("PDF compression failed", zap.Int("status", status), zap.Error(err))
		c.JSON(status, gin.H{"detail": detail})
		return
	}

	log.Info("PDF compressed",
		zap.String("original_size", humanize.Bytes(uint64(result.OriginalSize))),
		zap.String("compressed_size", humanize.Bytes(uint64(result.CompressedSize))),
		zap.String("reduction", result.FormattedReduction()+"%"))

	c.Header("Content-Disposition", attachmentDisposition("compressed_"+sanitizeFilename(header.Filename)))
	c.Header(HeaderOriginalSize, strconv.FormatInt(result.OriginalSize, 10))
	c.Header(HeaderCompressedSize, strconv.FormatInt(result.CompressedSize, 10))
	c.Header(HeaderSizeReduction, result.FormattedReduction())
	if pages, err := pdf.PageCount(result.Content); err == nil {
		c.Header(HeaderPageCount, strconv.Itoa(pages))
	} else {
		log.Debug("Could not count pages of compressed PDF", zap.Error(err))
	}

	c.Data(http.StatusOK, "application/pdf", result.Content)
}

// compress stages the upload, runs the compressor and reads its output.
// Temp files are released before it returns, whatever the outcome.
func (h *handler) compress(ctx context.Context, header *multipart.FileHeader, profile pdf.QualityProfile, log *zap.Logger) (*pdf.CompressionResult, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	artifacts, err := NewTempArtifacts(h.config.TempDir, file, log)
	if err != nil {
		return nil, err
	}
	defer artifacts.Release()

	if err := h.compressor.Compress(ctx, artifacts.InputPath, artifacts.OutputPath, profile); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(artifacts.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read compressed file: %w", err)
	}

	return pdf.NewCompressionResult(content, artifacts.InputSize), nil
}

func (h *handler) fileTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"detail": fmt.Sprintf("%s (%s)", DetailTooLarge, humanize.IBytes(uint64(h.config.MaxFileSize))),
	})
}

// isBodyTooLarge reports whether err comes from the http.MaxBytesReader limit
func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large")
}

// errorResponse maps a compression error to a status code and client detail
func errorResponse(err error) (int, string) {
	if pdf.IsTimeoutError(err) {
		return http.StatusGatewayTimeout, DetailTimeout
	}
	if toolErr, ok := pdf.AsToolError(err); ok {
		return http.StatusInternalServerError, DetailToolFailure + toolErr.Stderr
	}
	return http.StatusInternalServerError, DetailProcessing + err.Error()
}

// hasPDFExtension reports whether filename ends in .pdf, ignoring case
func hasPDFExtension(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// attachmentDisposition formats a Content-Disposition download header
func attachmentDisposition(filename string) string {
	if disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); disposition != "" {
		return disposition
	}
	return "attachment; filename=compressed.pdf"
}

// sanitizeFilename strips directory parts and control characters from an upload name
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, filename)

	filename = strings.TrimSpace(filepath.Base(filename))
	if filename == "" || filename == "." || filename == ".." {
		filename = "document.pdf"
	}

	return filename
}
