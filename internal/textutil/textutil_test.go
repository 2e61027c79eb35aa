package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	skills := ExtractSkills("Senior engineer with Python, SQL and Docker. Some AWS too.")

	assert.Contains(t, skills, "python")
	assert.Contains(t, skills, "sql")
	assert.Contains(t, skills, "docker")
	assert.Contains(t, skills, "aws")
	assert.NotContains(t, skills, "react")
}

func TestExtractSkillsMultiWord(t *testing.T) {
	skills := ExtractSkills("Focus on machine learning and data analysis.")

	assert.Contains(t, skills, "machine learning")
	assert.Contains(t, skills, "data analysis")
}

func TestEstimateYears(t *testing.T) {
	cases := []struct {
		name string
		text string
		want float64
	}{
		{"simple", "5 years of experience", 5},
		{"takes the maximum", "2 years at Acme, then 7 years at Globex", 7},
		{"plus suffix", "10+ years building backends", 10},
		{"yrs abbreviation", "3 yrs in data engineering", 3},
		{"no match", "extensive experience in many roles", 0},
		{"case insensitive", "4 YEARS of ops work", 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EstimateYears(tc.text))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := SplitSentences("First sentence. Second one! Third? Trailing")

	assert.Equal(t, []string{"First sentence", "Second one", "Third", "Trailing"}, sentences)
}

func TestSanitizeLLMText(t *testing.T) {
	assert.Equal(t, "strong Go background", SanitizeLLMText("**strong**  Go\nbackground"))
	assert.Equal(t, "", SanitizeLLMText(""))
}

func TestCandidateName(t *testing.T) {
	assert.Equal(t, "Jane Doe", CandidateName("jane_doe.pdf"))
	assert.Equal(t, "John Smith Cv", CandidateName("john-smith-cv.txt"))
	assert.Equal(t, "Candidate", CandidateName("_.pdf"))
}
