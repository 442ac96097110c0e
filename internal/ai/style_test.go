package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cvforge/internal/ai"
	"cvforge/internal/domain"
)

func TestCorrectText_FirstPersonRewrite(t *testing.T) {
	got := ai.CorrectText("I am responsible for managing the budget")
	assert.Equal(t, "Responsible for managing the budget", got)
}

func TestCorrectText_MisusedWords(t *testing.T) {
	assert.Equal(t, "Principal Engineer", ai.CorrectText("Principle engineer"))
	assert.Equal(t, "Handled discreet client matters", ai.CorrectText("Handled discrete client matters"))
}

func TestCorrectText_RoleNounsTitleCased(t *testing.T) {
	got := ai.CorrectText("senior manager and team lead")
	assert.Equal(t, "Senior Manager and team Lead", got)
}

func TestCorrectText_ProfessionalTone(t *testing.T) {
	got := ai.CorrectText("Built an awesome product with a really strong team")
	assert.Equal(t, "Built an excellent product with a strong team", got)
}

func TestCorrectText_ArticleFixedAfterIntensifierRemoval(t *testing.T) {
	// Stripping "very " exposes "a excellent"; the article must be fixed in
	// the same pass.
	got := ai.CorrectText("built a very great reporting pipeline")
	assert.Equal(t, "Built an excellent reporting pipeline", got)
}

func TestCorrectText_TrimAndCapitalize(t *testing.T) {
	assert.Equal(t, "Delivered projects on time", ai.CorrectText("  delivered projects on time  "))
	assert.Equal(t, "", ai.CorrectText("   "))
}

func TestCorrectText_Idempotent(t *testing.T) {
	inputs := []string{
		"I am responsible for managing the budget",
		"principle engineer with discrete judgment",
		"very awesome team lead",
		"built a very great reporting pipeline",
		"delivered a really amazing result",
		"I have experience in sales and I am in charge of the region",
		"senior manager, project coordinator and data analyst",
		"Responsible for excellent outcomes",
		"",
	}
	for _, input := range inputs {
		once := ai.CorrectText(input)
		twice := ai.CorrectText(once)
		assert.Equal(t, once, twice, "input %q not idempotent", input)
	}
}

func TestApplyStyleRules_CoversAllTargetFields(t *testing.T) {
	cv := domain.CVData{
		Header:  domain.CVHeader{Name: "Jane Doe", JobTitle: "project manager"},
		Profile: "I have experience in logistics",
		Experience: []domain.ExperienceEntry{
			{
				Position: "principle consultant",
				Responsibilities: []string{
					"I am responsible for client onboarding",
					"built a great reporting pipeline",
				},
			},
		},
	}

	ai.ApplyStyleRules(&cv)

	assert.Equal(t, "Project Manager", cv.Header.JobTitle)
	assert.Equal(t, "Experienced in logistics", cv.Profile)
	assert.Equal(t, "Principal Consultant", cv.Experience[0].Position)
	assert.Equal(t, "Responsible for client onboarding", cv.Experience[0].Responsibilities[0])
	assert.Equal(t, "Built an excellent reporting pipeline", cv.Experience[0].Responsibilities[1])
	// Name is left untouched.
	assert.Equal(t, "Jane Doe", cv.Header.Name)
}
