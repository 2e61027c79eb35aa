// Package textutil holds the keyword and regex heuristics layered on top of
// embedding similarity: skill dictionary lookup, years-of-experience
// estimation, and sanitizers for model output.
package textutil

import (
	"regexp"
	"strings"
)

// CommonSkills is the fixed dictionary matched against JD and resume text.
// Deliberately small; extending it is a code change, not configuration.
var CommonSkills = []string{
	"python",
	"java",
	"c++",
	"sql",
	"aws",
	"azure",
	"gcp",
	"docker",
	"kubernetes",
	"pandas",
	"numpy",
	"tensorflow",
	"pytorch",
	"nlp",
	"machine learning",
	"data analysis",
	"react",
	"javascript",
	"django",
	"flask",
	"spark",
	"hadoop",
	"tableau",
}

var yearsPattern = regexp.MustCompile(`(?i)(\d{1,2})\+?\s*(?:years|yrs)`)

var sentenceBoundary = regexp.MustCompile(`(?:[.!?])\s+`)

// ExtractSkills returns the dictionary skills found in text via
// case-insensitive substring search.
func ExtractSkills(text string) map[string]struct{} {
	lowered := strings.ToLower(text)
	found := make(map[string]struct{})
	for _, skill := range CommonSkills {
		if strings.Contains(lowered, skill) {
			found[skill] = struct{}{}
		}
	}
	return found
}

// EstimateYears scans for patterns like "5 years" or "3+ yrs" and returns the
// largest matched value, or 0 when nothing matches.
func EstimateYears(text string) float64 {
	var max float64
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		var n int
		for _, c := range m[1] {
			n = n*10 + int(c-'0')
		}
		if float64(n) > max {
			max = float64(n)
		}
	}
	return max
}

// SplitSentences is a naive sentence splitter used for the heuristic
// commentary fallback.
func SplitSentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	var out []string
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CandidateName derives a display name from an uploaded file name: the stem
// with separators spaced out and words title-cased.
func CandidateName(fileName string) string {
	stem := fileName
	if idx := strings.LastIndex(stem, "."); idx > 0 {
		stem = stem[:idx]
	}
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)

	words := strings.Fields(stem)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	if len(words) == 0 {
		return "Candidate"
	}
	return strings.Join(words, " ")
}

// SanitizeLLMText strips markdown bold markers and collapses whitespace so
// model output is safe for table cells and CSV.
func SanitizeLLMText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "***", "")
	text = strings.ReplaceAll(text, "**", "")
	return strings.Join(strings.Fields(text), " ")
}
