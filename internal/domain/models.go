package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CVDocument is a stored CV file and the state of its transformation.
type CVDocument struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	OriginalName      string          `db:"original_name" json:"original_name"`
	FileType          FileType        `db:"file_type" json:"file_type"`
	FileSize          int64           `db:"file_size" json:"file_size"`
	ContentType       string          `db:"content_type" json:"content_type"`
	S3Bucket          string          `db:"s3_bucket" json:"-"`
	S3Key             string          `db:"s3_key" json:"-"`
	Status            CVStatus        `db:"status" json:"status"`
	NotifyEmail       string          `db:"notify_email" json:"notify_email,omitempty"`
	ExtractedText     string          `db:"extracted_text" json:"-"`
	TransformedData   json.RawMessage `db:"transformed_data" json:"transformed_data,omitempty"`
	ProcessingDetails json.RawMessage `db:"processing_details" json:"processing_details,omitempty"`
	ProcessingError   string          `db:"processing_error" json:"processing_error,omitempty"`
	ProcessedAt       *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// CVHeader is the headline block of a structured CV.
type CVHeader struct {
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle"`
	PhotoURL string `json:"photoUrl"`
}

// ContactInfo groups the candidate's contact channels.
type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// PersonalDetails holds the candidate's personal information.
type PersonalDetails struct {
	Nationality   string      `json:"nationality"`
	Languages     []string    `json:"languages"`
	DateOfBirth   string      `json:"dateOfBirth"`
	MaritalStatus string      `json:"maritalStatus"`
	ContactInfo   ContactInfo `json:"contactInfo"`
}

// ExperienceEntry is a single role in the work history.
type ExperienceEntry struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
}

// EducationEntry is a single qualification.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Year        string `json:"year"`
}

// CVData is the structured CV record produced by the transformation pipeline.
type CVData struct {
	Header          CVHeader          `json:"header"`
	PersonalDetails PersonalDetails   `json:"personalDetails"`
	Profile         string            `json:"profile"`
	Experience      []ExperienceEntry `json:"experience"`
	Education       []EducationEntry  `json:"education"`
	KeySkills       []string          `json:"keySkills"`
	Interests       []string          `json:"interests"`
}

// ProcessingDetails records how a transformation was produced.
type ProcessingDetails struct {
	ProviderUsed    string   `json:"providerUsed"`
	ElapsedMs       int64    `json:"elapsedMs"`
	ConfidenceScore float64  `json:"confidenceScore"`
	Errors          []string `json:"errors"`
}

// TransformResult pairs structured CV data with its processing metadata.
type TransformResult struct {
	Data    CVData            `json:"data"`
	Details ProcessingDetails `json:"details"`
}

// ProviderStatus reports whether a provider is configured for use.
type ProviderStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}
