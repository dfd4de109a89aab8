package api

const (
	// ServiceName is reported by the liveness endpoint
	ServiceName = "KAYABLUE Backend API"

	// ServiceVersion is reported by the liveness endpoint
	ServiceVersion = "1.0.0"

	// StatusHealthy is the status value of both health endpoints
	StatusHealthy = "healthy"

	// DefaultFilePermissions for temp directory creation
	DefaultFilePermissions = 0755

	// DefaultMaxFileSize is the default upload limit (100MB)
	DefaultMaxFileSize = 100 * 1024 * 1024

	// MultipartOverhead is the body allowance for multipart boundaries and form fields
	MultipartOverhead = 1024 * 1024
)

// Endpoint paths
const (
	PathRoot        = "/"
	PathHealth      = "/health"
	PathCompressPDF = "/api/compress-pdf"
)

// Multipart form fields
const (
	FormFieldFile    = "file"
	FormFieldQuality = "quality"
)

// Response headers carrying compression metadata
const (
	HeaderOriginalSize   = "X-Original-Size"
	HeaderCompressedSize = "X-Compressed-Size"
	HeaderSizeReduction  = "X-Size-Reduction"
	HeaderPageCount      = "X-Page-Count"
	HeaderRequestID      = "X-Request-ID"
)

// Error details returned to clients
const (
	DetailNotPDF      = "File must be a PDF"
	DetailNoFile      = "No file uploaded"
	DetailTimeout     = "PDF compression timed out. File may be too large."
	DetailToolFailure = "PDF compression failed: "
	DetailProcessing  = "Error processing PDF: "
	DetailTooLarge    = "File exceeds maximum upload size"
	DetailRateLimited = "Too many requests"
	DetailInternal    = "Internal server error"
)

// DefaultAllowedOrigins are the browser origins allowed by CORS
var DefaultAllowedOrigins = []string{
	"https://www.kayablue.nl",
	"https://kayablue.vercel.app",
	"http://localhost:5173",
	"http://localhost:3000",
}
