package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cvforge/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Document Name",
	"File Type",
	"Status",
	"Provider Used",
	"Confidence",
	"Candidate Name",
	"Job Title",
	"Email",
	"Phone",
	"Nationality",
	"Languages",
	"Experience Count",
	"Education Count",
	"Key Skills",
	"Processing Error",
	"Processed At",
	"Created At",
}

// Writer wraps csv.Writer for exporting CV documents as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDocuments converts a batch of CV documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.CVDocument) error {
	for i := range docs {
		row := documentToRow(&docs[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// documentToRow converts a single document to a string slice matching
// columns. Metadata columns are always filled; CV columns only when the
// document completed processing with valid structured data.
func documentToRow(doc *domain.CVDocument) []string {
	row := make([]string, len(columns))

	row[0] = doc.OriginalName
	row[1] = string(doc.FileType)
	row[2] = string(doc.Status)
	row[14] = doc.ProcessingError
	row[15] = formatTime(doc.ProcessedAt)
	row[16] = doc.CreatedAt.Format(time.RFC3339)

	if len(doc.ProcessingDetails) > 0 {
		var details domain.ProcessingDetails
		if err := json.Unmarshal(doc.ProcessingDetails, &details); err == nil {
			row[3] = details.ProviderUsed
			row[4] = strconv.FormatFloat(details.ConfidenceScore, 'f', 2, 64)
		}
	}

	if doc.Status != domain.CVStatusCompleted || len(doc.TransformedData) == 0 {
		return row
	}

	var cv domain.CVData
	if err := json.Unmarshal(doc.TransformedData, &cv); err != nil {
		return row
	}

	row[5] = cv.Header.Name
	row[6] = cv.Header.JobTitle
	row[7] = cv.PersonalDetails.ContactInfo.Email
	row[8] = cv.PersonalDetails.ContactInfo.Phone
	row[9] = cv.PersonalDetails.Nationality
	row[10] = strings.Join(cv.PersonalDetails.Languages, "; ")
	row[11] = strconv.Itoa(len(cv.Experience))
	row[12] = strconv.Itoa(len(cv.Education))
	row[13] = strings.Join(cv.KeySkills, "; ")

	return row
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
