package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCandidatePrompt(t *testing.T) {
	prompt := BuildCandidatePrompt("Jane Doe", "JD text here", "resume body")

	assert.Contains(t, prompt, "Candidate: Jane Doe")
	assert.Contains(t, prompt, "JD text here")
	assert.Contains(t, prompt, "resume body")
	assert.Contains(t, prompt, "Strengths:")
}

func TestParseFeedback(t *testing.T) {
	content := strings.Join([]string{
		"Strengths: Deep Go and SQL background.",
		"Weaknesses: No cloud exposure.",
		"Reasoning: Overall a good fit",
		"for the backend role.",
	}, "\n")

	fb := ParseFeedback(content)

	assert.Equal(t, "Deep Go and SQL background.", fb.Strengths)
	assert.Equal(t, "No cloud exposure.", fb.Weaknesses)
	assert.Equal(t, "Overall a good fit for the backend role.", fb.Reasoning)
}

func TestParseFeedbackMissingSections(t *testing.T) {
	fb := ParseFeedback("Strengths: Ships fast.")

	assert.Equal(t, "Ships fast.", fb.Strengths)
	assert.Equal(t, "Not provided.", fb.Weaknesses)
	assert.Equal(t, "Not provided.", fb.Reasoning)
}

func TestParseFeedbackEmpty(t *testing.T) {
	fb := ParseFeedback("")

	assert.Equal(t, "Not provided.", fb.Strengths)
	assert.Equal(t, "Not provided.", fb.Weaknesses)
	assert.Equal(t, "Not provided.", fb.Reasoning)
}

func TestFallbackFeedback(t *testing.T) {
	fb := FallbackFeedback("Built data pipelines. Led a small team. Shipped three products. Fourth sentence ignored.")

	assert.NotEmpty(t, fb.Strengths)
	assert.NotEmpty(t, fb.Weaknesses)
	assert.Contains(t, fb.Reasoning, "Built data pipelines")
	assert.NotContains(t, fb.Reasoning, "Fourth sentence")
}

func TestFallbackFeedbackEmptyResume(t *testing.T) {
	fb := FallbackFeedback("")

	assert.Equal(t, "Summary unavailable.", fb.Reasoning)
}
