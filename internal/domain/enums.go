package domain

// FileType identifies the format of an uploaded CV file.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeXLSX FileType = "xlsx"
	FileTypeXLS  FileType = "xls"
)

// AllowedFileTypes is the set of file types the pipeline can extract text from.
var AllowedFileTypes = map[FileType]bool{
	FileTypePDF:  true,
	FileTypeDOCX: true,
	FileTypeXLSX: true,
	FileTypeXLS:  true,
}

// FileTypeFromExtension maps a lowercase file extension (without the dot) to
// a FileType. The second return value is false for unsupported extensions.
func FileTypeFromExtension(ext string) (FileType, bool) {
	ft := FileType(ext)
	if AllowedFileTypes[ft] {
		return ft, true
	}
	return "", false
}

// CVStatus tracks a CV document through the processing lifecycle.
type CVStatus string

const (
	CVStatusUploaded   CVStatus = "uploaded"
	CVStatusProcessing CVStatus = "processing"
	CVStatusCompleted  CVStatus = "completed"
	CVStatusFailed     CVStatus = "failed"
)

// AllowedCVStatuses is the set of valid lifecycle states.
var AllowedCVStatuses = map[CVStatus]bool{
	CVStatusUploaded:   true,
	CVStatusProcessing: true,
	CVStatusCompleted:  true,
	CVStatusFailed:     true,
}

// Provider tags recorded in ProcessingDetails.ProviderUsed.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
	ProviderBasic     = "basic-parsing"
)
