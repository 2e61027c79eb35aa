package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roomanhq/resume-screener/internal/models"
)

type ScreeningRepository interface {
	CreateRun(run *models.ScreeningRun, candidates []models.CandidateResult) error
	FindRunByID(id uuid.UUID) (*models.ScreeningRun, error)
	FindCandidates(runID uuid.UUID) ([]models.CandidateResult, error)
	UpdateRunStatus(id uuid.UUID, status models.ScreeningStatus) error
	UpdateRunError(id uuid.UUID, errorMsg string) error
	SaveCandidateScore(id uuid.UUID, data *CandidateScoreData) error
	FailCandidate(id uuid.UUID, reason string) error
	FindPendingRuns(limit int) ([]models.ScreeningRun, error)
}

// CandidateScoreData carries a finished candidate evaluation into storage.
type CandidateScoreData struct {
	MatchPercent    float64
	SimilarityPct   float64
	SkillOverlapPct float64
	ExperienceYears float64
	Strengths       string
	Weaknesses      string
	Reasoning       string
}

type screeningRepository struct {
	db *gorm.DB
}

func NewScreeningRepository(db *gorm.DB) ScreeningRepository {
	return &screeningRepository{db: db}
}

func (r *screeningRepository) CreateRun(run *models.ScreeningRun, candidates []models.CandidateResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return fmt.Errorf("failed to create screening run: %w", err)
		}
		for i := range candidates {
			candidates[i].RunID = run.ID
		}
		if len(candidates) > 0 {
			if err := tx.Create(&candidates).Error; err != nil {
				return fmt.Errorf("failed to create candidate rows: %w", err)
			}
		}
		return nil
	})
}

func (r *screeningRepository) FindRunByID(id uuid.UUID) (*models.ScreeningRun, error) {
	var run models.ScreeningRun
	if err := r.db.Where("id = ?", id).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("screening run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find screening run: %w", err)
	}
	return &run, nil
}

func (r *screeningRepository) FindCandidates(runID uuid.UUID) ([]models.CandidateResult, error) {
	var candidates []models.CandidateResult
	err := r.db.
		Where("run_id = ?", runID).
		Order("position ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	return candidates, nil
}

func (r *screeningRepository) UpdateRunStatus(id uuid.UUID, status models.ScreeningStatus) error {
	result := r.db.Model(&models.ScreeningRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update run status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("screening run %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *screeningRepository) UpdateRunError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.ScreeningRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update run error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("screening run %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *screeningRepository) SaveCandidateScore(id uuid.UUID, data *CandidateScoreData) error {
	result := r.db.Model(&models.CandidateResult{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            models.CandidateScored,
			"match_percent":     data.MatchPercent,
			"similarity_pct":    data.SimilarityPct,
			"skill_overlap_pct": data.SkillOverlapPct,
			"experience_years":  data.ExperienceYears,
			"strengths":         data.Strengths,
			"weaknesses":        data.Weaknesses,
			"reasoning":         data.Reasoning,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to save candidate score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *screeningRepository) FailCandidate(id uuid.UUID, reason string) error {
	result := r.db.Model(&models.CandidateResult{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         models.CandidateFailed,
			"failure_reason": reason,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark candidate failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *screeningRepository) FindPendingRuns(limit int) ([]models.ScreeningRun, error) {
	var runs []models.ScreeningRun
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&runs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending runs: %w", err)
	}

	return runs, nil
}
