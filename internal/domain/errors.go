package domain

import "errors"

var (
	// ErrCVNotFound is returned when a CV document does not exist.
	ErrCVNotFound = errors.New("cv document not found")

	// ErrUnsupportedFileType is returned for uploads whose extension is not
	// one of pdf, docx, xlsx, xls.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge is returned when an upload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrEmptyContent is returned when extraction yields no usable text.
	ErrEmptyContent = errors.New("no text content could be extracted")

	// ErrInvalidCVData is returned when edited CV data fails validation.
	ErrInvalidCVData = errors.New("invalid cv data")

	// ErrInvalidStatus is returned for an unrecognized status value.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrCVNotProcessed is returned when an operation requires a completed
	// transformation but the document has none.
	ErrCVNotProcessed = errors.New("cv document has not been processed")
)
