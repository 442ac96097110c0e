package ai_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cvforge/internal/ai"
)

func TestBuildPrompt_ContainsSchemaAndText(t *testing.T) {
	prompt := ai.BuildPrompt("Jane Doe\nEngineer", nil)

	assert.Contains(t, prompt, `"personalDetails"`)
	assert.Contains(t, prompt, "Jane Doe\nEngineer")
	assert.Contains(t, prompt, "Return ONLY the JSON object")
	assert.NotContains(t, prompt, "Additional preferences")
}

func TestBuildPrompt_PreferencesAppendedInOrder(t *testing.T) {
	prompt := ai.BuildPrompt("text", map[string]any{
		"tone":     "formal",
		"language": "German",
	})

	assert.Contains(t, prompt, "Additional preferences")
	// Keys are rendered in sorted order for deterministic prompts.
	langIdx := strings.Index(prompt, "language: German")
	toneIdx := strings.Index(prompt, "tone: formal")
	assert.Greater(t, toneIdx, langIdx)
	assert.Greater(t, langIdx, 0)
}
