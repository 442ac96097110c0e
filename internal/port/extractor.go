package port

import "cvforge/internal/domain"

// TextExtractor extracts normalized plain text from a CV file.
type TextExtractor interface {
	Extract(data []byte, fileType domain.FileType) (string, error)
}
