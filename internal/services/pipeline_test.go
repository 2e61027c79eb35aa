package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roomanhq/resume-screener/internal/parser"
	"github.com/roomanhq/resume-screener/internal/vectorstore"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0}, nil
}

type stubGenerator struct {
	content string
	err     error
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

func newTestPipeline(t *testing.T, embedder *stubEmbedder, generator *stubGenerator) *Pipeline {
	t.Helper()
	store, err := vectorstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return &Pipeline{
		Parser:    parser.NewDocumentParser(),
		Embedder:  embedder,
		Generator: generator,
		Store:     store,
		Logger:    zap.NewNop(),
	}
}

func writeResume(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPrepareJD(t *testing.T) {
	p := newTestPipeline(t, &stubEmbedder{}, &stubGenerator{})

	jd, err := p.PrepareJD(context.Background(), "Backend  role.\nRequires python and sql, 5 years experience.")
	require.NoError(t, err)

	assert.Equal(t, "Backend role. Requires python and sql, 5 years experience.", jd.Text)
	assert.Equal(t, []float32{1, 0, 0}, jd.Vector)
	assert.Contains(t, jd.Skills, "python")
	assert.Contains(t, jd.Skills, "sql")
	assert.Equal(t, 5.0, jd.Years)
}

func TestPrepareJDEmptyText(t *testing.T) {
	p := newTestPipeline(t, &stubEmbedder{}, &stubGenerator{})

	_, err := p.PrepareJD(context.Background(), "  \n\t ")
	assert.ErrorIs(t, err, parser.ErrUnparseable)
}

func TestPrepareJDEmbedFailure(t *testing.T) {
	p := newTestPipeline(t, &stubEmbedder{err: errors.New("ollama down")}, &stubGenerator{})

	_, err := p.PrepareJD(context.Background(), "some jd text")
	assert.Error(t, err)
}

func TestScreenResume(t *testing.T) {
	embedder := &stubEmbedder{}
	generator := &stubGenerator{content: "Strengths: Solid python.\nWeaknesses: No docker.\nReasoning: Decent fit."}
	p := newTestPipeline(t, embedder, generator)
	ctx := context.Background()

	jd, err := p.PrepareJD(ctx, "Requires python, 3 years experience.")
	require.NoError(t, err)

	path := writeResume(t, "jane_doe.txt", "python developer with 4 years of experience")

	eval, err := p.ScreenResume(ctx, jd, "doc-1", "Jane Doe", "jane_doe.txt", path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", eval.CandidateName)
	assert.InDelta(t, 1.0, eval.Score.Similarity, 1e-6)
	assert.InDelta(t, 1.0, eval.Score.SkillOverlap, 1e-9)
	assert.Equal(t, 4.0, eval.Score.ExperienceYears)
	assert.Equal(t, "Solid python.", eval.Feedback.Strengths)
	assert.Equal(t, "Decent fit.", eval.Feedback.Reasoning)

	// The resume vector lands in the store under the document id.
	vec, meta, err := p.Store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, vec)
	assert.Equal(t, "Jane Doe", meta["candidate_name"])
	assert.Equal(t, "jane_doe.txt", meta["file_name"])
}

func TestScreenResumeGeneratorFailureFallsBack(t *testing.T) {
	p := newTestPipeline(t, &stubEmbedder{}, &stubGenerator{err: errors.New("model not loaded")})
	ctx := context.Background()

	jd, err := p.PrepareJD(ctx, "Requires go.")
	require.NoError(t, err)

	path := writeResume(t, "r.txt", "Built go services. Shipped things. Did more things.")

	eval, err := p.ScreenResume(ctx, jd, "doc-2", "R", "r.txt", path)
	require.NoError(t, err)

	assert.NotEmpty(t, eval.Feedback.Strengths)
	assert.Contains(t, eval.Feedback.Reasoning, "Built go services")
}

func TestScreenResumeUnparseable(t *testing.T) {
	p := newTestPipeline(t, &stubEmbedder{}, &stubGenerator{})
	ctx := context.Background()

	jd, err := p.PrepareJD(ctx, "Requires go.")
	require.NoError(t, err)

	path := writeResume(t, "blank.txt", "   ")

	_, err = p.ScreenResume(ctx, jd, "doc-3", "Blank", "blank.txt", path)
	assert.ErrorIs(t, err, parser.ErrUnparseable)

	// Nothing is stored for a resume that never parsed.
	_, _, err = p.Store.Get(ctx, "doc-3")
	assert.ErrorIs(t, err, vectorstore.ErrNotFound)
}

func TestScreenResumeEmbedFailure(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{"Requires go.": {1, 0, 0}}}
	p := newTestPipeline(t, embedder, &stubGenerator{})
	ctx := context.Background()

	jd, err := p.PrepareJD(ctx, "Requires go.")
	require.NoError(t, err)

	embedder.err = errors.New("connection refused")
	path := writeResume(t, "r.txt", "go developer")

	_, err = p.ScreenResume(ctx, jd, "doc-4", "R", "r.txt", path)
	assert.Error(t, err)
}

func TestSortEvaluations(t *testing.T) {
	evals := []*Evaluation{
		{CandidateName: "low"},
		{CandidateName: "high"},
		{CandidateName: "tied-first"},
		{CandidateName: "tied-second"},
	}
	evals[0].Score.Composite = 0.2
	evals[1].Score.Composite = 0.9
	evals[2].Score.Composite = 0.5
	evals[3].Score.Composite = 0.5

	SortEvaluations(evals)

	assert.Equal(t, "high", evals[0].CandidateName)
	assert.Equal(t, "tied-first", evals[1].CandidateName)
	assert.Equal(t, "tied-second", evals[2].CandidateName)
	assert.Equal(t, "low", evals[3].CandidateName)
}
