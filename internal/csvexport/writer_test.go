package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvforge/internal/csvexport"
	"cvforge/internal/domain"
)

func TestWriter_CompletedDocumentRow(t *testing.T) {
	processed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := domain.CVDocument{
		ID:           uuid.New(),
		OriginalName: "jane.pdf",
		FileType:     domain.FileTypePDF,
		Status:       domain.CVStatusCompleted,
		TransformedData: json.RawMessage(`{
			"header": {"name": "Jane Doe", "jobTitle": "Engineer"},
			"personalDetails": {
				"contactInfo": {"email": "jane@example.com", "phone": "123"},
				"languages": ["English", "German"]
			},
			"experience": [{"position": "Engineer"}],
			"education": [{"degree": "BSc"}],
			"keySkills": ["Go", "SQL"]
		}`),
		ProcessingDetails: json.RawMessage(`{"providerUsed": "anthropic", "confidenceScore": 0.9}`),
		ProcessedAt:       &processed,
		CreatedAt:         processed,
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteDocuments([]domain.CVDocument{doc}))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, "jane.pdf", row[0])
	assert.Equal(t, "pdf", row[1])
	assert.Equal(t, "completed", row[2])
	assert.Equal(t, "anthropic", row[3])
	assert.Equal(t, "0.90", row[4])
	assert.Equal(t, "Jane Doe", row[5])
	assert.Equal(t, "Engineer", row[6])
	assert.Equal(t, "jane@example.com", row[7])
	assert.Equal(t, "English; German", row[10])
	assert.Equal(t, "1", row[11])
	assert.Equal(t, "1", row[12])
	assert.Equal(t, "Go; SQL", row[13])
}

func TestWriter_FailedDocumentLeavesCVColumnsEmpty(t *testing.T) {
	doc := domain.CVDocument{
		ID:              uuid.New(),
		OriginalName:    "broken.xlsx",
		FileType:        domain.FileTypeXLSX,
		Status:          domain.CVStatusFailed,
		ProcessingError: "extracting xlsx: bad archive",
		CreatedAt:       time.Now(),
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteDocuments([]domain.CVDocument{doc}))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	row := records[1]
	assert.Equal(t, "broken.xlsx", row[0])
	assert.Equal(t, "failed", row[2])
	assert.Equal(t, "", row[5])
	assert.Equal(t, "extracting xlsx: bad archive", row[14])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "My_CVs_2026", csvexport.SanitizeFilename("My CVs (2026)"))
	assert.Equal(t, "already-clean_name", csvexport.SanitizeFilename("already-clean_name"))
}

func TestBuildFilename(t *testing.T) {
	name := csvexport.BuildFilename("cv documents")
	assert.Contains(t, name, "cv_documents_")
	assert.Contains(t, name, ".csv")
}
