package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"pdf_compressor/pdf"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubCompressor writes a fixed output instead of running Ghostscript
type stubCompressor struct {
	mu         sync.Mutex
	output     []byte
	err        error
	panicWith  any
	version    string
	versionErr error
	profiles   []pdf.QualityProfile
	inputs     []string
}

func (s *stubCompressor) Compress(_ context.Context, inFile, outFile string, profile pdf.QualityProfile) error {
	s.mu.Lock()
	s.profiles = append(s.profiles, profile)
	s.inputs = append(s.inputs, inFile)
	s.mu.Unlock()

	if s.panicWith != nil {
		panic(s.panicWith)
	}
	if s.err != nil {
		return s.err
	}
	return os.WriteFile(outFile, s.output, 0644)
}

func (s *stubCompressor) Version(context.Context) (string, error) {
	return s.version, s.versionErr
}

func (s *stubCompressor) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

// testConfig returns a config whose temp files live in a fresh directory
func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		TempDir:         t.TempDir(),
		MaxFileSize:     DefaultMaxFileSize,
		CompressTimeout: pdf.DefaultCompressTimeout,
		HealthTimeout:   pdf.DefaultVersionTimeout,
		AllowedOrigins:  DefaultAllowedOrigins,
	}
}

func newTestRouter(t *testing.T, config *Config, compressor Compressor) *gin.Engine {
	t.Helper()
	return NewRouter(config, compressor, zaptest.NewLogger(t))
}

// newUploadRequest builds a multipart POST to the compression endpoint
func newUploadRequest(t *testing.T, target, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile(FormFieldFile, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// requireEmptyDir fails when files are left behind in dir
func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Empty(t, names, "temp files left behind")
}
