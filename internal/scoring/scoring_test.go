package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roomanhq/resume-screener/internal/textutil"
)

func skillSet(skills ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}

func TestSkillOverlapHalf(t *testing.T) {
	jd := skillSet("python", "sql")
	resume := textutil.ExtractSkills("I mostly write python services.")

	assert.InDelta(t, 0.5, SkillOverlap(jd, resume), 1e-9)
}

func TestSkillOverlapEmptyJD(t *testing.T) {
	assert.Equal(t, 0.0, SkillOverlap(nil, skillSet("python")))
}

func TestSkillOverlapBounds(t *testing.T) {
	jd := skillSet("python", "sql", "docker")
	cases := []map[string]struct{}{
		nil,
		skillSet("python"),
		skillSet("python", "sql", "docker"),
		skillSet("python", "sql", "docker", "react"),
	}

	for _, resume := range cases {
		ratio := SkillOverlap(jd, resume)
		assert.GreaterOrEqual(t, ratio, 0.0)
		assert.LessOrEqual(t, ratio, 1.0)
	}
}

func TestExperienceScore(t *testing.T) {
	// Meets the JD's ask exactly: 1/1.2.
	assert.InDelta(t, 1.0/1.2, ExperienceScore(5, 5), 1e-9)
	// Over-qualification is capped.
	assert.InDelta(t, 1.0, ExperienceScore(2, 10), 1e-9)
	// No JD figure: 10 years saturates.
	assert.InDelta(t, 0.5, ExperienceScore(0, 5), 1e-9)
	assert.InDelta(t, 1.0, ExperienceScore(0, 15), 1e-9)
	// No resume figure: neutral.
	assert.InDelta(t, 0.4, ExperienceScore(5, 0), 1e-9)
}

func TestCompositeMonotonicInSimilarity(t *testing.T) {
	prev := Composite(-1, 0.5, 0.5)
	for sim := -0.9; sim <= 1.0; sim += 0.1 {
		cur := Composite(sim, 0.5, 0.5)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestCompositeWeights(t *testing.T) {
	assert.InDelta(t, 1.0, Composite(1, 1, 1), 1e-9)
	assert.InDelta(t, 0.55, Composite(1, 0, 0), 1e-9)
	assert.InDelta(t, 0.25, Composite(0, 1, 0), 1e-9)
	assert.InDelta(t, 0.20, Composite(0, 0, 1), 1e-9)
}

func TestCandidate(t *testing.T) {
	jdText := "Data engineer role. Requires python and sql, 5 years experience."
	jdSkills := textutil.ExtractSkills(jdText)
	jdYears := textutil.EstimateYears(jdText)
	vec := []float32{1, 0, 0}

	score := Candidate(jdSkills, jdYears, vec, "python developer, 5 years of experience", vec)

	assert.InDelta(t, 1.0, score.Similarity, 1e-6)
	assert.InDelta(t, 0.5, score.SkillOverlap, 1e-9)
	assert.Equal(t, 5.0, score.ExperienceYears)
	assert.InDelta(t, 1.0/1.2, score.ExperienceScore, 1e-9)
	assert.InDelta(t, Composite(score.Similarity, score.SkillOverlap, score.ExperienceScore), score.Composite, 1e-9)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 55.0, Percent(0.55))
	assert.Equal(t, 33.33, Percent(0.33333))
}
