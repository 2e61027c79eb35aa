// Package scoring blends embedding similarity with keyword and experience
// heuristics into one composite match score per candidate. Every function here
// is pure; the weights are fixed constants.
package scoring

import (
	"math"

	"github.com/roomanhq/resume-screener/internal/textutil"
	"github.com/roomanhq/resume-screener/internal/vectorstore"
)

const (
	weightSimilarity = 0.55
	weightSkills     = 0.25
	weightExperience = 0.20
)

// Score is the numeric outcome for one resume against one JD.
type Score struct {
	// Similarity is raw cosine similarity in [-1, 1].
	Similarity float64
	// SkillOverlap is |JD skills ∩ resume skills| / |JD skills|, in [0, 1].
	SkillOverlap float64
	// ExperienceYears is the largest "N years" figure found in the resume.
	ExperienceYears float64
	// ExperienceScore is ExperienceYears normalized against the JD's ask.
	ExperienceScore float64
	// Composite is the fixed-weight blend of the three signals.
	Composite float64
}

// Candidate scores one resume. jdSkills and jdYears are extracted once per run
// by the caller; resume text is scanned here.
func Candidate(jdSkills map[string]struct{}, jdYears float64, jdVec []float32, resumeText string, resumeVec []float32) Score {
	similarity := vectorstore.Cosine(jdVec, resumeVec)
	overlap := SkillOverlap(jdSkills, textutil.ExtractSkills(resumeText))
	years := textutil.EstimateYears(resumeText)
	expScore := ExperienceScore(jdYears, years)

	return Score{
		Similarity:      similarity,
		SkillOverlap:    overlap,
		ExperienceYears: years,
		ExperienceScore: expScore,
		Composite:       Composite(similarity, overlap, expScore),
	}
}

// SkillOverlap returns the intersection ratio. A JD with no recognized skills
// contributes 0, never a divide-by-zero.
func SkillOverlap(jdSkills, resumeSkills map[string]struct{}) float64 {
	if len(jdSkills) == 0 {
		return 0
	}

	overlap := 0
	for skill := range jdSkills {
		if _, ok := resumeSkills[skill]; ok {
			overlap++
		}
	}

	return float64(overlap) / float64(len(jdSkills))
}

// ExperienceScore maps raw years onto [0, 1]. With a JD requirement the ratio
// is capped at 1.2 and renormalized, so modest over-qualification still helps;
// without one, 10 years saturates the signal. A resume with no figure at all
// sits at a neutral 0.4.
func ExperienceScore(jdYears, resumeYears float64) float64 {
	if resumeYears > 0 && jdYears > 0 {
		return math.Min(resumeYears/jdYears, 1.2) / 1.2
	}
	if resumeYears > 0 {
		return math.Min(resumeYears/10, 1.0)
	}
	return 0.4
}

// Composite is the fixed weighted sum. Monotonically non-decreasing in each
// signal.
func Composite(similarity, skillOverlap, experienceScore float64) float64 {
	return weightSimilarity*similarity + weightSkills*skillOverlap + weightExperience*experienceScore
}

// Percent rounds a unit-interval signal to a two-decimal percentage for
// display and CSV export.
func Percent(v float64) float64 {
	return math.Round(v*10000) / 100
}
