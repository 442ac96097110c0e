// Package extract turns uploaded CV files into normalized plain text.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"cvforge/internal/domain"
	"cvforge/internal/port"
)

type extractor struct{}

// NewExtractor creates a TextExtractor covering PDF, DOCX and Excel files.
func NewExtractor() port.TextExtractor {
	return &extractor{}
}

func (e *extractor) Extract(data []byte, fileType domain.FileType) (string, error) {
	var (
		raw string
		err error
	)
	switch fileType {
	case domain.FileTypePDF:
		raw, err = extractPDF(data)
	case domain.FileTypeDOCX:
		raw, err = extractDOCX(data)
	case domain.FileTypeXLSX:
		raw, err = extractExcel(data)
	case domain.FileTypeXLS:
		raw, err = extractXLS(data)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, fileType)
	}
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", fileType, err)
	}

	text := normalizeText(raw)
	if text == "" {
		return "", domain.ErrEmptyContent
	}
	return text, nil
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// normalizeText unifies line endings, collapses runs of blank lines and trims
// surrounding whitespace.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
