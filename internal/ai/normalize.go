package ai

import (
	"strconv"

	"cvforge/internal/domain"
)

// Normalize coerces an arbitrary decoded JSON object into a schema-complete
// CVData. It is total: any input, including nil, yields a valid record.
// Slices are never nil, missing strings fall back to defaults and malformed
// experience and education entries become default-filled records rather than
// being dropped, so entry counts survive normalization.
func Normalize(raw map[string]any) domain.CVData {
	cv := domain.CVData{
		Header: domain.CVHeader{
			Name:     stringField(objectField(raw, "header"), "name", "Unknown Name"),
			JobTitle: stringField(objectField(raw, "header"), "jobTitle", "Professional"),
			PhotoURL: stringField(objectField(raw, "header"), "photoUrl", ""),
		},
		Profile:    stringField(raw, "profile", ""),
		Experience: normalizeExperience(raw["experience"]),
		Education:  normalizeEducation(raw["education"]),
		KeySkills:  stringList(raw["keySkills"]),
		Interests:  stringList(raw["interests"]),
	}

	details := objectField(raw, "personalDetails")
	contact := objectField(details, "contactInfo")
	cv.PersonalDetails = domain.PersonalDetails{
		Nationality:   stringField(details, "nationality", ""),
		Languages:     stringList(details["languages"]),
		DateOfBirth:   stringField(details, "dateOfBirth", ""),
		MaritalStatus: stringField(details, "maritalStatus", ""),
		ContactInfo: domain.ContactInfo{
			Email:   stringField(contact, "email", ""),
			Phone:   stringField(contact, "phone", ""),
			Address: stringField(contact, "address", ""),
		},
	}
	if len(cv.PersonalDetails.Languages) == 0 {
		cv.PersonalDetails.Languages = []string{"English"}
	}

	return cv
}

func normalizeExperience(v any) []domain.ExperienceEntry {
	items, ok := v.([]any)
	if !ok {
		return []domain.ExperienceEntry{}
	}
	entries := make([]domain.ExperienceEntry, 0, len(items))
	for _, item := range items {
		// A non-object entry still yields a default-filled record: the
		// helpers tolerate a nil map, and entries are never dropped.
		obj, _ := item.(map[string]any)
		entries = append(entries, domain.ExperienceEntry{
			Company:          stringField(obj, "company", ""),
			Position:         stringField(obj, "position", ""),
			Duration:         stringField(obj, "duration", ""),
			Responsibilities: stringList(obj["responsibilities"]),
		})
	}
	return entries
}

func normalizeEducation(v any) []domain.EducationEntry {
	items, ok := v.([]any)
	if !ok {
		return []domain.EducationEntry{}
	}
	entries := make([]domain.EducationEntry, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		entries = append(entries, domain.EducationEntry{
			Institution: stringField(obj, "institution", ""),
			Degree:      stringField(obj, "degree", ""),
			Field:       stringField(obj, "field", ""),
			Year:        freeTextField(obj, "year"),
		})
	}
	return entries
}

// objectField returns obj[key] as a map, or an empty map when absent or of
// the wrong type, so callers can index it unconditionally.
func objectField(obj map[string]any, key string) map[string]any {
	if obj == nil {
		return map[string]any{}
	}
	if m, ok := obj[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func stringField(obj map[string]any, key, fallback string) string {
	if obj == nil {
		return fallback
	}
	if s, ok := obj[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// freeTextField coerces scalar values to strings for fields that are
// semantically free text. Models frequently emit years as numbers.
func freeTextField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// stringList keeps only string members of a decoded array. Anything that is
// not an array becomes an empty list.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
