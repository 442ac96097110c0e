package ai

import (
	"fmt"
	"sort"
	"strings"
)

// promptTemplate instructs the model to return only a JSON object matching
// the CV schema, formatted to the house style.
const promptTemplate = `You are a professional CV transformation assistant. Convert the CV text below into a JSON object with EXACTLY this structure:

{
  "header": {"name": "", "jobTitle": "", "photoUrl": ""},
  "personalDetails": {"nationality": "", "languages": [], "dateOfBirth": "", "maritalStatus": "", "contactInfo": {"email": "", "phone": "", "address": ""}},
  "profile": "",
  "experience": [{"company": "", "position": "", "duration": "", "responsibilities": []}],
  "education": [{"institution": "", "degree": "", "field": "", "year": ""}],
  "keySkills": [],
  "interests": []
}

Formatting rules:
- The target document uses Palatino Linotype with a 4.7cm photo slot; leave "photoUrl" empty unless a photo reference is present.
- Durations use three-letter month abbreviations (Jan 2020 - Mar 2023).
- Job titles are title-cased.
- Responsibilities are impersonal: write "Responsible for managing..." not "I am responsible for managing...".
- The output file will be named "FirstName (Candidate BH No) Client CV"; do not include the file name in the JSON.
- Return ONLY the JSON object, no commentary, no code fences.

CV text:
%s`

// BuildPrompt renders the shared transformation prompt for the extracted
// text. Preferences, when present, are appended as additional instructions
// in deterministic key order.
func BuildPrompt(text string, preferences map[string]any) string {
	prompt := fmt.Sprintf(promptTemplate, text)
	if len(preferences) == 0 {
		return prompt
	}

	keys := make([]string, 0, len(preferences))
	for k := range preferences {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\nAdditional preferences:\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("- %s: %v\n", k, preferences[k]))
	}
	return b.String()
}
