package llm

import (
	"fmt"
	"strings"

	"github.com/roomanhq/resume-screener/internal/textutil"
)

// Feedback is the qualitative per-candidate commentary.
type Feedback struct {
	Strengths  string
	Weaknesses string
	Reasoning  string
}

const candidateFeedbackTemplate = `You are an expert technical recruiter.
Given the job description and a candidate resume, summarize:
1. Key strengths (bullet friendly sentence).
2. Potential weaknesses or red flags.
3. Provide a short reasoning paragraph (2-3 sentences) on overall fit.

Format response as:
Strengths: ...
Weaknesses: ...
Reasoning: ...

Candidate: %s
Job Description:
%s

Resume:
%s
`

// BuildCandidatePrompt fills the fixed feedback template.
func BuildCandidatePrompt(candidateName, jobDescription, resumeText string) string {
	return fmt.Sprintf(candidateFeedbackTemplate, candidateName, jobDescription, resumeText)
}

// ParseFeedback splits generated text into strengths/weaknesses/reasoning by
// section headers. Lines before a recognized header are ignored; continuation
// lines attach to the current section. Missing sections read "Not provided.".
func ParseFeedback(content string) Feedback {
	sections := map[string]string{"strengths": "", "weaknesses": "", "reasoning": ""}
	current := ""

	for _, line := range strings.Split(content, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "strength"):
			current = "strengths"
			sections[current] = afterColon(line)
		case strings.Contains(lower, "weakness"):
			current = "weaknesses"
			sections[current] = afterColon(line)
		case strings.Contains(lower, "reason"):
			current = "reasoning"
			sections[current] = afterColon(line)
		default:
			if current != "" {
				sections[current] += " " + strings.TrimSpace(line)
			}
		}
	}

	return Feedback{
		Strengths:  orNotProvided(sections["strengths"]),
		Weaknesses: orNotProvided(sections["weaknesses"]),
		Reasoning:  orNotProvided(sections["reasoning"]),
	}
}

// FallbackFeedback is the heuristic used when the model call fails: canned
// strengths/weaknesses plus the resume's opening sentences as reasoning.
func FallbackFeedback(resumeText string) Feedback {
	sentences := textutil.SplitSentences(resumeText)
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}

	reasoning := "Summary unavailable."
	if len(sentences) > 0 {
		reasoning = strings.Join(sentences, ". ")
	}

	return Feedback{
		Strengths:  "Solid baseline profile with relevant experience.",
		Weaknesses: "Needs deeper alignment verification via interview.",
		Reasoning:  reasoning,
	}
}

func afterColon(line string) string {
	if idx := strings.Index(line, ":"); idx != -1 {
		return strings.TrimSpace(line[idx+1:])
	}
	return strings.TrimSpace(line)
}

func orNotProvided(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Not provided."
	}
	return s
}
