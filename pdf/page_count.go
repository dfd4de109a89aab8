package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Keep pdfcpu from creating a config directory in the user's home
	api.DisableConfigDir()
}

// PageCount returns the number of pages of an in-memory PDF
func PageCount(content []byte) (count int, err error) {
	if len(content) == 0 {
		return 0, fmt.Errorf("empty PDF content")
	}

	// pdfcpu can panic on malformed input
	defer func() {
		if r := recover(); r != nil {
			count, err = 0, fmt.Errorf("pdfcpu panicked reading PDF: %v", r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	count, err = api.PageCount(bytes.NewReader(content), conf)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu page count failed: %w", err)
	}
	return count, nil
}
