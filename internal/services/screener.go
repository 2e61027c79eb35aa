package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roomanhq/resume-screener/internal/models"
	"github.com/roomanhq/resume-screener/internal/parser"
	"github.com/roomanhq/resume-screener/internal/repositories"
	"github.com/roomanhq/resume-screener/internal/scoring"
)

type ScreenerService interface {
	ProcessRun(ctx context.Context, runID uuid.UUID) error
}

type screenerService struct {
	screeningRepo repositories.ScreeningRepository
	docRepo       repositories.DocumentRepository
	pipeline      *Pipeline
	logger        *zap.Logger
}

func NewScreenerService(
	screeningRepo repositories.ScreeningRepository,
	docRepo repositories.DocumentRepository,
	pipeline *Pipeline,
	logger *zap.Logger,
) ScreenerService {
	return &screenerService{
		screeningRepo: screeningRepo,
		docRepo:       docRepo,
		pipeline:      pipeline,
		logger:        logger,
	}
}

// ProcessRun executes one screening run end to end. The JD failing to parse or
// embed fails the whole run; a single bad resume only fails that candidate and
// the batch continues in upload order.
func (s *screenerService) ProcessRun(ctx context.Context, runID uuid.UUID) error {
	if err := s.screeningRepo.UpdateRunStatus(runID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}

	s.logger.Info("starting screening run", zap.String("run_id", runID.String()))

	run, err := s.screeningRepo.FindRunByID(runID)
	if err != nil {
		s.screeningRepo.UpdateRunError(runID, err.Error())
		return fmt.Errorf("failed to load run: %w", err)
	}

	jd, err := s.prepareJD(ctx, run)
	if err != nil {
		s.screeningRepo.UpdateRunError(runID, err.Error())
		return err
	}

	candidates, err := s.screeningRepo.FindCandidates(runID)
	if err != nil {
		s.screeningRepo.UpdateRunError(runID, err.Error())
		return fmt.Errorf("failed to load candidates: %w", err)
	}

	scored := 0
	for _, candidate := range candidates {
		if err := s.screenCandidate(ctx, jd, &candidate); err != nil {
			s.logger.Warn("candidate failed",
				zap.String("run_id", runID.String()),
				zap.String("file", candidate.FileName),
				zap.Error(err))

			reason := failureReason(err)
			if ferr := s.screeningRepo.FailCandidate(candidate.ID, reason); ferr != nil {
				s.logger.Error("failed to record candidate failure", zap.Error(ferr))
			}
			continue
		}
		scored++
	}

	if err := s.screeningRepo.UpdateRunStatus(runID, models.StatusCompleted); err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	s.logger.Info("screening run completed",
		zap.String("run_id", runID.String()),
		zap.Int("scored", scored),
		zap.Int("failed", len(candidates)-scored))

	return nil
}

func (s *screenerService) prepareJD(ctx context.Context, run *models.ScreeningRun) (*JDContext, error) {
	if run.JDText != "" {
		return s.pipeline.PrepareJD(ctx, run.JDText)
	}

	if run.JDDocumentID == nil {
		return nil, fmt.Errorf("run has neither JD document nor JD text")
	}

	jdDoc, err := s.docRepo.FindByID(*run.JDDocumentID)
	if err != nil {
		return nil, fmt.Errorf("JD document not found: %w", err)
	}

	return s.pipeline.PrepareJDFromFile(ctx, jdDoc.FilePath)
}

func (s *screenerService) screenCandidate(ctx context.Context, jd *JDContext, candidate *models.CandidateResult) error {
	doc, err := s.docRepo.FindByID(candidate.DocumentID)
	if err != nil {
		return fmt.Errorf("resume document not found: %w", err)
	}

	eval, err := s.pipeline.ScreenResume(ctx, jd, doc.ID.String(), candidate.CandidateName, candidate.FileName, doc.FilePath)
	if err != nil {
		return err
	}

	return s.screeningRepo.SaveCandidateScore(candidate.ID, &repositories.CandidateScoreData{
		MatchPercent:    scoring.Percent(eval.Score.Composite),
		SimilarityPct:   scoring.Percent(eval.Score.Similarity),
		SkillOverlapPct: scoring.Percent(eval.Score.SkillOverlap),
		ExperienceYears: eval.Score.ExperienceYears,
		Strengths:       eval.Feedback.Strengths,
		Weaknesses:      eval.Feedback.Weaknesses,
		Reasoning:       eval.Feedback.Reasoning,
	})
}

func failureReason(err error) string {
	if errors.Is(err, parser.ErrUnparseable) {
		return "document produced no text"
	}
	if errors.Is(err, parser.ErrUnsupportedType) {
		return "unsupported file type"
	}
	return err.Error()
}
