package ai

import (
	"regexp"
	"strings"
	"unicode"

	"cvforge/internal/domain"
)

// styleRule is a single deterministic text correction. Rules are applied in
// order and each is idempotent, so the whole pass is idempotent.
type styleRule struct {
	name  string
	apply func(string) string
}

var styleRules = []styleRule{
	{"misused-words", fixMisusedWords},
	{"impersonal-phrasing", rewriteFirstPerson},
	{"role-title-case", titleCaseRoles},
	{"professional-tone", professionalTone},
	{"tidy", tidy},
}

var misusedWords = []struct {
	re  *regexp.Regexp
	sub string
}{
	{regexp.MustCompile(`\bPrinciple\b`), "Principal"},
	{regexp.MustCompile(`\bprinciple\b`), "principal"},
	{regexp.MustCompile(`\bDiscrete\b`), "Discreet"},
	{regexp.MustCompile(`\bdiscrete\b`), "discreet"},
}

func fixMisusedWords(s string) string {
	for _, w := range misusedWords {
		s = w.re.ReplaceAllString(s, w.sub)
	}
	return s
}

var firstPersonPhrases = []struct {
	re  *regexp.Regexp
	sub string
}{
	{regexp.MustCompile(`(?i)\bI am responsible for\b`), "Responsible for"},
	{regexp.MustCompile(`(?i)\bI was responsible for\b`), "Responsible for"},
	{regexp.MustCompile(`(?i)\bI am in charge of\b`), "In charge of"},
	{regexp.MustCompile(`(?i)\bI have experience in\b`), "Experienced in"},
}

func rewriteFirstPerson(s string) string {
	for _, p := range firstPersonPhrases {
		s = p.re.ReplaceAllString(s, p.sub)
	}
	return s
}

var roleNoun = regexp.MustCompile(`(?i)\b(manager|director|engineer|analyst|consultant|specialist|coordinator|assistant|supervisor|lead)\b`)

func titleCaseRoles(s string) string {
	return roleNoun.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[:1]) + strings.ToLower(m[1:])
	})
}

var (
	casualWord  = regexp.MustCompile(`(?i)\b(awesome|amazing|cool|fantastic|great)\b`)
	intensifier = regexp.MustCompile(`(?i)\b(very|really|quite)\s+`)
	aExcellent  = regexp.MustCompile(`\b(a|A) excellent\b`)
)

func professionalTone(s string) string {
	s = casualWord.ReplaceAllString(s, "excellent")
	// Strip intensifiers before fixing articles: removing "very " can put
	// an "a" directly in front of a substituted "excellent".
	s = intensifier.ReplaceAllString(s, "")
	return aExcellent.ReplaceAllString(s, "${1}n excellent")
}

func tidy(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CorrectText runs the full style rule chain over a single line.
func CorrectText(s string) string {
	for _, rule := range styleRules {
		s = rule.apply(s)
	}
	return s
}

// ApplyStyleRules corrects the free-text fields of a CV in place: the job
// title, the profile, and every experience position and responsibility line.
func ApplyStyleRules(cv *domain.CVData) {
	cv.Header.JobTitle = CorrectText(cv.Header.JobTitle)
	cv.Profile = CorrectText(cv.Profile)
	for i := range cv.Experience {
		cv.Experience[i].Position = CorrectText(cv.Experience[i].Position)
		for j := range cv.Experience[i].Responsibilities {
			cv.Experience[i].Responsibilities[j] = CorrectText(cv.Experience[i].Responsibilities[j])
		}
	}
}
