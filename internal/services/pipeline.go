package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/roomanhq/resume-screener/internal/llm"
	"github.com/roomanhq/resume-screener/internal/parser"
	"github.com/roomanhq/resume-screener/internal/scoring"
	"github.com/roomanhq/resume-screener/internal/textutil"
	"github.com/roomanhq/resume-screener/internal/vectorstore"
)

// Pipeline runs the per-document scoring flow shared by the API worker and the
// batch CLI: parse, embed, store, score, comment. Resumes are processed one at
// a time; the only failure it absorbs itself is a dead LLM, which falls back
// to heuristic commentary.
type Pipeline struct {
	Parser    parser.DocumentParser
	Embedder  llm.Embedder
	Generator llm.Generator
	Store     vectorstore.Store
	Logger    *zap.Logger
}

// JDContext holds everything extracted from the job description once per run.
type JDContext struct {
	Text   string
	Vector []float32
	Skills map[string]struct{}
	Years  float64
}

// Evaluation is one scored candidate.
type Evaluation struct {
	CandidateName string
	FileName      string
	Score         scoring.Score
	Feedback      llm.Feedback
}

// PrepareJD normalizes and embeds the JD text and extracts the heuristic
// signals the scorer compares resumes against.
func (p *Pipeline) PrepareJD(ctx context.Context, jdText string) (*JDContext, error) {
	cleaned := parser.CleanText(jdText)
	if cleaned == "" {
		return nil, fmt.Errorf("job description: %w", parser.ErrUnparseable)
	}

	vector, err := p.Embedder.Embed(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	return &JDContext{
		Text:   cleaned,
		Vector: vector,
		Skills: textutil.ExtractSkills(cleaned),
		Years:  textutil.EstimateYears(cleaned),
	}, nil
}

// PrepareJDFromFile parses a JD file and delegates to PrepareJD.
func (p *Pipeline) PrepareJDFromFile(ctx context.Context, filePath string) (*JDContext, error) {
	text, err := p.Parser.ExtractText(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse job description: %w", err)
	}
	return p.PrepareJD(ctx, text)
}

// ScreenResume evaluates one resume file against the prepared JD. An
// unparseable file or a failed embedding returns an error and the resume must
// be marked failed by the caller; a failed commentary call degrades to the
// heuristic fallback and still yields a full evaluation.
func (p *Pipeline) ScreenResume(ctx context.Context, jd *JDContext, docID, candidateName, fileName, filePath string) (*Evaluation, error) {
	text, err := p.Parser.ExtractText(filePath)
	if err != nil {
		return nil, err
	}

	vector, err := p.Embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed resume: %w", err)
	}

	err = p.Store.Put(ctx, docID, vector, vectorstore.Metadata{
		"candidate_name": candidateName,
		"file_name":      fileName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store resume vector: %w", err)
	}

	score := scoring.Candidate(jd.Skills, jd.Years, jd.Vector, text, vector)

	feedback := p.commentary(ctx, jd.Text, candidateName, text)

	return &Evaluation{
		CandidateName: candidateName,
		FileName:      fileName,
		Score:         score,
		Feedback:      feedback,
	}, nil
}

func (p *Pipeline) commentary(ctx context.Context, jdText, candidateName, resumeText string) llm.Feedback {
	prompt := llm.BuildCandidatePrompt(candidateName, jdText, resumeText)

	content, err := p.Generator.Generate(ctx, prompt)
	if err != nil {
		p.Logger.Warn("llm commentary failed, using heuristic fallback",
			zap.String("candidate", candidateName),
			zap.Error(err))
		return llm.FallbackFeedback(resumeText)
	}

	feedback := llm.ParseFeedback(content)
	feedback.Strengths = textutil.SanitizeLLMText(feedback.Strengths)
	feedback.Weaknesses = textutil.SanitizeLLMText(feedback.Weaknesses)
	feedback.Reasoning = textutil.SanitizeLLMText(feedback.Reasoning)
	return feedback
}

// SortEvaluations orders by composite score descending. The sort is stable so
// tied candidates keep upload order.
func SortEvaluations(evals []*Evaluation) {
	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].Score.Composite > evals[j].Score.Composite
	})
}
