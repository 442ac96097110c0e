package ai_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvforge/internal/ai"
	"cvforge/internal/domain"
)

func TestNormalize_NilInput(t *testing.T) {
	cv := ai.Normalize(nil)

	assert.Equal(t, "Unknown Name", cv.Header.Name)
	assert.Equal(t, "Professional", cv.Header.JobTitle)
	assert.Equal(t, []string{"English"}, cv.PersonalDetails.Languages)
	assert.NotNil(t, cv.Experience)
	assert.NotNil(t, cv.Education)
	assert.NotNil(t, cv.KeySkills)
	assert.NotNil(t, cv.Interests)
	assert.Empty(t, cv.Experience)
}

func TestNormalize_CompleteDocument(t *testing.T) {
	raw := decode(t, `{
		"header": {"name": "Jane Doe", "jobTitle": "Engineer", "photoUrl": "https://example.com/jane.jpg"},
		"personalDetails": {
			"nationality": "German",
			"languages": ["English", "German"],
			"contactInfo": {"email": "jane@example.com", "phone": "+49 30 1234567", "address": "Berlin"}
		},
		"profile": "Seasoned engineer.",
		"experience": [{
			"company": "Acme",
			"position": "Engineer",
			"duration": "Jan 2020 - Mar 2023",
			"responsibilities": ["Shipped things"]
		}],
		"education": [{"institution": "MIT", "degree": "BSc", "field": "Computer Science", "year": 2015}],
		"keySkills": ["Go", "SQL"],
		"interests": ["Chess"]
	}`)

	cv := ai.Normalize(raw)

	assert.Equal(t, "Jane Doe", cv.Header.Name)
	assert.Equal(t, "https://example.com/jane.jpg", cv.Header.PhotoURL)
	assert.Equal(t, "jane@example.com", cv.PersonalDetails.ContactInfo.Email)
	assert.Equal(t, "Berlin", cv.PersonalDetails.ContactInfo.Address)
	assert.Equal(t, []string{"English", "German"}, cv.PersonalDetails.Languages)
	require.Len(t, cv.Experience, 1)
	assert.Equal(t, "Acme", cv.Experience[0].Company)
	assert.Equal(t, "Jan 2020 - Mar 2023", cv.Experience[0].Duration)
	assert.Equal(t, []string{"Shipped things"}, cv.Experience[0].Responsibilities)
	require.Len(t, cv.Education, 1)
	assert.Equal(t, "Computer Science", cv.Education[0].Field)
	// Numeric year is stringified, not dropped.
	assert.Equal(t, "2015", cv.Education[0].Year)
	assert.Equal(t, []string{"Go", "SQL"}, cv.KeySkills)
}

func TestNormalize_MistypedFieldsFallBack(t *testing.T) {
	raw := decode(t, `{
		"header": {"name": 42, "jobTitle": null},
		"profile": ["not", "a", "string"],
		"experience": "not an array",
		"keySkills": ["Go", 7, null, "SQL"]
	}`)

	cv := ai.Normalize(raw)

	assert.Equal(t, "Unknown Name", cv.Header.Name)
	assert.Equal(t, "Professional", cv.Header.JobTitle)
	assert.Equal(t, "", cv.Profile)
	assert.Empty(t, cv.Experience)
	// Non-string members are dropped.
	assert.Equal(t, []string{"Go", "SQL"}, cv.KeySkills)
}

func TestNormalize_MalformedEntriesDefaultFilled(t *testing.T) {
	raw := decode(t, `{
		"experience": [
			{"position": "Analyst", "responsibilities": "not an array"},
			"garbage",
			12
		],
		"education": [null, {"degree": "MSc"}]
	}`)

	cv := ai.Normalize(raw)

	// Malformed entries are kept as default-filled records, so counts match
	// the input.
	require.Len(t, cv.Experience, 3)
	assert.Equal(t, "Analyst", cv.Experience[0].Position)
	assert.Empty(t, cv.Experience[0].Responsibilities)
	assert.NotNil(t, cv.Experience[0].Responsibilities)
	assert.Equal(t, domain.ExperienceEntry{Responsibilities: []string{}}, cv.Experience[1])
	assert.Equal(t, domain.ExperienceEntry{Responsibilities: []string{}}, cv.Experience[2])
	require.Len(t, cv.Education, 2)
	assert.Equal(t, domain.EducationEntry{}, cv.Education[0])
	assert.Equal(t, "MSc", cv.Education[1].Degree)
}

func TestNormalize_EmptyLanguagesDefaultsToEnglish(t *testing.T) {
	raw := decode(t, `{"personalDetails": {"languages": []}}`)
	cv := ai.Normalize(raw)
	assert.Equal(t, []string{"English"}, cv.PersonalDetails.Languages)
}

func TestNormalize_MarshalsCleanly(t *testing.T) {
	cv := ai.Normalize(map[string]any{})
	out, err := json.Marshal(cv)
	require.NoError(t, err)
	// Arrays serialize as [], never null.
	assert.NotContains(t, string(out), `"keySkills":null`)
	assert.NotContains(t, string(out), `"experience":null`)
}

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}
