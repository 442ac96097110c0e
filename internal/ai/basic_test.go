package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvforge/internal/ai"
)

const sampleCVText = `Jane Doe
jane.doe@example.com
+44 20 7946 0958

Experience
Software Engineer
Acme Ltd
Designed internal tooling
Maintained CI pipelines

Education
BSc Computer Science
University of Leeds

Skills
Go, SQL, Docker`

func TestBasicParse_ExtractsContactDetails(t *testing.T) {
	cv := ai.BasicParse(sampleCVText)

	assert.Equal(t, "Jane Doe", cv.Header.Name)
	assert.Equal(t, "jane.doe@example.com", cv.PersonalDetails.ContactInfo.Email)
	assert.Equal(t, "+44 20 7946 0958", cv.PersonalDetails.ContactInfo.Phone)
	assert.Equal(t, "Professional", cv.Header.JobTitle)
}

func TestBasicParse_ScansSections(t *testing.T) {
	cv := ai.BasicParse(sampleCVText)

	require.Len(t, cv.Experience, 1)
	assert.Equal(t, "Software Engineer", cv.Experience[0].Position)
	assert.Equal(t, "Acme Ltd", cv.Experience[0].Company)
	assert.Contains(t, cv.Experience[0].Responsibilities, "Designed internal tooling")

	require.Len(t, cv.Education, 1)
	assert.Equal(t, "BSc Computer Science", cv.Education[0].Degree)
	assert.Equal(t, "University of Leeds", cv.Education[0].Institution)

	assert.Equal(t, []string{"Go", "SQL", "Docker"}, cv.KeySkills)
}

func TestBasicParse_EmptyText(t *testing.T) {
	cv := ai.BasicParse("")

	assert.Equal(t, "Unknown Name", cv.Header.Name)
	assert.Equal(t, "Professional", cv.Header.JobTitle)
	assert.Equal(t, "Professional with experience in various fields.", cv.Profile)
	assert.Equal(t, []string{"English"}, cv.PersonalDetails.Languages)
	assert.Equal(t, []string{"Communication", "Problem Solving", "Teamwork"}, cv.KeySkills)
	assert.Equal(t, []string{"Professional Development", "Technology", "Innovation"}, cv.Interests)
	assert.NotNil(t, cv.Experience)
	assert.NotNil(t, cv.Education)
}

func TestBasicParse_NameLineRejectsContactDetails(t *testing.T) {
	cv := ai.BasicParse("jane.doe@example.com\nsome other line")
	assert.Equal(t, "Unknown Name", cv.Header.Name)
}

func TestBasicParse_NameLineRejectsDocumentTitles(t *testing.T) {
	for _, title := range []string{"Curriculum Vitae", "RESUME", "Work History", "Skills & Expertise"} {
		cv := ai.BasicParse(title + "\nJane Doe\njane.doe@example.com")
		assert.Equal(t, "Unknown Name", cv.Header.Name, "title %q taken as a name", title)
	}
}
