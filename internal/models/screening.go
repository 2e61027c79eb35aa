package models

import (
	"time"

	"github.com/google/uuid"
)

type ScreeningStatus string

const (
	StatusQueued     ScreeningStatus = "queued"
	StatusProcessing ScreeningStatus = "processing"
	StatusCompleted  ScreeningStatus = "completed"
	StatusFailed     ScreeningStatus = "failed"
)

type CandidateStatus string

const (
	CandidatePending CandidateStatus = "pending"
	CandidateScored  CandidateStatus = "scored"
	CandidateFailed  CandidateStatus = "failed"
)

// ScreeningRun is one screening of a batch of resumes against a single job
// description. The JD is either an uploaded document or pasted text.
type ScreeningRun struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JDDocumentID *uuid.UUID      `gorm:"type:uuid" json:"jd_document_id,omitempty"`
	JDText       string          `gorm:"type:text" json:"-"`
	Status       ScreeningStatus `gorm:"not null;default:'queued'" json:"status"`
	ErrorMessage *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	JDDocument *Document         `gorm:"foreignKey:JDDocumentID" json:"-"`
	Candidates []CandidateResult `gorm:"foreignKey:RunID" json:"-"`
}

func (ScreeningRun) TableName() string {
	return "screening_runs"
}

// CandidateResult is one resume's outcome within a run. Position records
// upload order; ties on match score keep this order.
type CandidateResult struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RunID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"run_id"`
	DocumentID      uuid.UUID       `gorm:"type:uuid;not null" json:"document_id"`
	Position        int             `gorm:"not null" json:"position"`
	Status          CandidateStatus `gorm:"not null;default:'pending'" json:"status"`
	CandidateName   string          `gorm:"type:text" json:"candidate_name"`
	FileName        string          `gorm:"type:text" json:"file_name"`
	MatchPercent    *float64        `gorm:"type:decimal(6,2)" json:"match_percent,omitempty"`
	SimilarityPct   *float64        `gorm:"type:decimal(6,2)" json:"similarity_percent,omitempty"`
	SkillOverlapPct *float64        `gorm:"type:decimal(6,2)" json:"skill_overlap_percent,omitempty"`
	ExperienceYears *float64        `gorm:"type:decimal(4,1)" json:"experience_years,omitempty"`
	Strengths       *string         `gorm:"type:text" json:"strengths,omitempty"`
	Weaknesses      *string         `gorm:"type:text" json:"weaknesses,omitempty"`
	Reasoning       *string         `gorm:"type:text" json:"reasoning,omitempty"`
	FailureReason   *string         `gorm:"type:text" json:"failure_reason,omitempty"`
	CreatedAt       time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (CandidateResult) TableName() string {
	return "candidate_results"
}
