// Command screen runs a screening batch headless: one JD file against a
// directory of resumes, results written to a CSV. Useful without the API
// server or a database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/roomanhq/resume-screener/internal/config"
	"github.com/roomanhq/resume-screener/internal/llm"
	"github.com/roomanhq/resume-screener/internal/logging"
	"github.com/roomanhq/resume-screener/internal/models"
	"github.com/roomanhq/resume-screener/internal/parser"
	"github.com/roomanhq/resume-screener/internal/scoring"
	"github.com/roomanhq/resume-screener/internal/services"
	"github.com/roomanhq/resume-screener/internal/textutil"
	"github.com/roomanhq/resume-screener/internal/vectorstore"
)

func main() {
	jdPath := flag.String("jd", "", "path to the job description file (pdf or txt)")
	resumeDir := flag.String("resumes", "", "directory containing resume files (pdf or txt)")
	outPath := flag.String("out", "resume_results.csv", "path of the CSV to write")
	flag.Parse()

	if *jdPath == "" || *resumeDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	zlog, err := logging.New(cfg.Log.Dir, true)
	if err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	ollamaClient := llm.NewOllamaClient(cfg.Ollama.URL, cfg.Ollama.Model, cfg.Ollama.EmbedModel)

	store, err := vectorstore.NewFileStore(cfg.Vector.Dir)
	if err != nil {
		zlog.Fatal("failed to open vector store", zap.Error(err))
	}

	pipeline := &services.Pipeline{
		Parser:    parser.NewDocumentParser(),
		Embedder:  ollamaClient,
		Generator: ollamaClient,
		Store:     store,
		Logger:    zlog,
	}

	zlog.Info("preparing job description", zap.String("path", *jdPath))
	jd, err := pipeline.PrepareJDFromFile(ctx, *jdPath)
	if err != nil {
		zlog.Fatal("failed to prepare job description", zap.Error(err))
	}

	resumeFiles, err := listResumeFiles(*resumeDir)
	if err != nil {
		zlog.Fatal("failed to list resumes", zap.Error(err))
	}
	if len(resumeFiles) == 0 {
		zlog.Fatal("no pdf or txt resumes found", zap.String("dir", *resumeDir))
	}

	var evals []*services.Evaluation
	var failed []models.CandidateRow

	for i, path := range resumeFiles {
		fileName := filepath.Base(path)
		zlog.Info("screening resume",
			zap.Int("n", i+1),
			zap.Int("total", len(resumeFiles)),
			zap.String("file", fileName))

		eval, err := pipeline.ScreenResume(ctx, jd, fileName, textutil.CandidateName(fileName), fileName, path)
		if err != nil {
			zlog.Warn("resume skipped", zap.String("file", fileName), zap.Error(err))
			failed = append(failed, models.CandidateRow{
				Candidate:     textutil.CandidateName(fileName),
				File:          fileName,
				Status:        string(models.CandidateFailed),
				FailureReason: err.Error(),
			})
			continue
		}

		evals = append(evals, eval)
	}

	services.SortEvaluations(evals)

	rows := make([]models.CandidateRow, 0, len(evals)+len(failed))
	for _, eval := range evals {
		match := scoring.Percent(eval.Score.Composite)
		similarity := scoring.Percent(eval.Score.Similarity)
		overlap := scoring.Percent(eval.Score.SkillOverlap)
		years := eval.Score.ExperienceYears
		rows = append(rows, models.CandidateRow{
			Candidate:       eval.CandidateName,
			File:            eval.FileName,
			Status:          string(models.CandidateScored),
			MatchPercent:    &match,
			SimilarityPct:   &similarity,
			SkillOverlapPct: &overlap,
			ExperienceYears: &years,
			Strengths:       eval.Feedback.Strengths,
			Weaknesses:      eval.Feedback.Weaknesses,
			Reasoning:       eval.Feedback.Reasoning,
		})
	}
	rows = append(rows, failed...)

	out, err := os.Create(*outPath)
	if err != nil {
		zlog.Fatal("failed to create output file", zap.Error(err))
	}
	defer out.Close()

	if err := services.WriteResultsCSV(out, rows); err != nil {
		zlog.Fatal("failed to write CSV", zap.Error(err))
	}

	zlog.Info("screening complete",
		zap.Int("scored", len(evals)),
		zap.Int("failed", len(failed)),
		zap.String("out", *outPath))

	if len(evals) == 0 {
		fmt.Fprintln(os.Stderr, "no candidates could be scored")
		os.Exit(1)
	}
}

func listResumeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf", ".txt":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
