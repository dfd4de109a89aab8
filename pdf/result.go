package pdf

import "strconv"

// CompressionResult holds the compressed document and its size metrics
type CompressionResult struct {
	Content          []byte
	OriginalSize     int64
	CompressedSize   int64
	ReductionPercent float64
}

// NewCompressionResult builds a result for content produced from an input of originalSize bytes
func NewCompressionResult(content []byte, originalSize int64) *CompressionResult {
	compressedSize := int64(len(content))
	return &CompressionResult{
		Content:          content,
		OriginalSize:     originalSize,
		CompressedSize:   compressedSize,
		ReductionPercent: SizeReduction(originalSize, compressedSize),
	}
}

// SizeReduction returns the percentage decrease from original to compressed.
// An empty original yields 0.
func SizeReduction(original, compressed int64) float64 {
	if original == 0 {
		return 0
	}
	return float64(original-compressed) / float64(original) * 100
}

// FormattedReduction returns the reduction with two decimals, e.g. "60.00"
func (r *CompressionResult) FormattedReduction() string {
	return strconv.FormatFloat(r.ReductionPercent, 'f', 2, 64)
}
