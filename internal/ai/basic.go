package ai

import (
	"regexp"
	"strings"

	"cvforge/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?[\d][\d\s().-]{7,}\d`)
)

// section keywords recognized by the heuristic scan.
var (
	experienceHeadings = []string{"experience", "employment", "work history", "career"}
	educationHeadings  = []string{"education", "qualifications", "academic"}
	skillsHeadings     = []string{"skills", "competencies", "expertise"}
)

// BasicParse is the last line of defense when every AI provider fails. It
// never errors and always yields a schema-complete record: the first
// non-blank line becomes the name, contact details come from regex scans and
// section headings seed minimal experience, education and skills blocks.
func BasicParse(text string) domain.CVData {
	lines := nonBlankLines(text)

	cv := domain.CVData{
		Header: domain.CVHeader{
			Name:     "Unknown Name",
			JobTitle: "Professional",
		},
		PersonalDetails: domain.PersonalDetails{
			Languages: []string{"English"},
		},
		Profile:    "Professional with experience in various fields.",
		Experience: []domain.ExperienceEntry{},
		Education:  []domain.EducationEntry{},
		KeySkills:  []string{},
		Interests:  []string{"Professional Development", "Technology", "Innovation"},
	}

	if len(lines) > 0 && looksLikeName(lines[0]) {
		cv.Header.Name = lines[0]
	}
	if email := emailPattern.FindString(text); email != "" {
		cv.PersonalDetails.ContactInfo.Email = email
	}
	if phone := phonePattern.FindString(text); phone != "" {
		cv.PersonalDetails.ContactInfo.Phone = strings.TrimSpace(phone)
	}

	cv.Experience = scanExperience(lines)
	cv.Education = scanEducation(lines)
	cv.KeySkills = scanSkills(lines)
	if len(cv.KeySkills) == 0 {
		cv.KeySkills = []string{"Communication", "Problem Solving", "Teamwork"}
	}

	ApplyStyleRules(&cv)
	return cv
}

func nonBlankLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// documentTitles are boilerplate first lines that are never a person's name.
var documentTitles = []string{"curriculum vitae", "resume"}

// looksLikeName rejects lines that are clearly contact details, document
// titles or section headings.
func looksLikeName(line string) bool {
	if len(line) > 60 {
		return false
	}
	if strings.Contains(line, "@") || phonePattern.MatchString(line) {
		return false
	}
	for _, headings := range [][]string{documentTitles, experienceHeadings, educationHeadings, skillsHeadings} {
		if matchesHeading(line, headings) {
			return false
		}
	}
	return true
}

func matchesHeading(line string, headings []string) bool {
	lower := strings.ToLower(line)
	if len(lower) > 40 {
		return false
	}
	for _, h := range headings {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

// sectionBody collects the lines following the first heading match, stopping
// at the next recognized heading.
func sectionBody(lines []string, headings []string) []string {
	start := -1
	for i, line := range lines {
		if matchesHeading(line, headings) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var body []string
	for _, line := range lines[start:] {
		if matchesHeading(line, experienceHeadings) ||
			matchesHeading(line, educationHeadings) ||
			matchesHeading(line, skillsHeadings) {
			break
		}
		body = append(body, line)
	}
	return body
}

func scanExperience(lines []string) []domain.ExperienceEntry {
	body := sectionBody(lines, experienceHeadings)
	if len(body) == 0 {
		return []domain.ExperienceEntry{}
	}
	entry := domain.ExperienceEntry{
		Position:         body[0],
		Responsibilities: []string{},
	}
	if len(body) > 1 {
		entry.Company = body[1]
	}
	if len(body) > 2 {
		for _, line := range body[2:] {
			if len(entry.Responsibilities) == 5 {
				break
			}
			entry.Responsibilities = append(entry.Responsibilities, line)
		}
	}
	return []domain.ExperienceEntry{entry}
}

func scanEducation(lines []string) []domain.EducationEntry {
	body := sectionBody(lines, educationHeadings)
	if len(body) == 0 {
		return []domain.EducationEntry{}
	}
	entry := domain.EducationEntry{Degree: body[0]}
	if len(body) > 1 {
		entry.Institution = body[1]
	}
	return []domain.EducationEntry{entry}
}

func scanSkills(lines []string) []string {
	body := sectionBody(lines, skillsHeadings)
	var skills []string
	for _, line := range body {
		for _, part := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == '|' || r == '•'
		}) {
			part = strings.TrimSpace(part)
			if part != "" && len(part) <= 40 {
				skills = append(skills, part)
			}
		}
		if len(skills) >= 10 {
			break
		}
	}
	if len(skills) > 10 {
		skills = skills[:10]
	}
	return skills
}
