package handlers

import (
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/roomanhq/resume-screener/internal/models"
	"github.com/roomanhq/resume-screener/internal/repositories"
	"github.com/roomanhq/resume-screener/internal/services"
	"github.com/roomanhq/resume-screener/internal/textutil"
)

type ScreeningHandler struct {
	screeningRepo repositories.ScreeningRepository
	docRepo       repositories.DocumentRepository
	worker        services.Worker
}

func NewScreeningHandler(
	screeningRepo repositories.ScreeningRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *ScreeningHandler {
	return &ScreeningHandler{
		screeningRepo: screeningRepo,
		docRepo:       docRepo,
		worker:        worker,
	}
}

// HandleCreateScreening handles POST /screenings. The JD comes either as an
// uploaded document id or as pasted text; resumes are document ids whose
// request order fixes the tie-break order.
func (h *ScreeningHandler) HandleCreateScreening(c *fiber.Ctx) error {
	var req models.ScreeningRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JDDocumentID == "" && strings.TrimSpace(req.JDText) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jd_document_id or jd_text is required",
		})
	}

	if len(req.ResumeDocumentIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_document_ids is required",
		})
	}

	var jdDocID *uuid.UUID
	if req.JDDocumentID != "" {
		parsed, err := uuid.Parse(req.JDDocumentID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid jd_document_id format",
			})
		}
		if _, err := h.docRepo.FindByID(parsed); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "JD document not found",
			})
		}
		jdDocID = &parsed
	}

	candidates := make([]models.CandidateResult, 0, len(req.ResumeDocumentIDs))
	for i, rawID := range req.ResumeDocumentIDs {
		docID, err := uuid.Parse(rawID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid resume document id: " + rawID,
			})
		}

		doc, err := h.docRepo.FindByID(docID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume document not found: " + rawID,
			})
		}

		candidates = append(candidates, models.CandidateResult{
			ID:            uuid.New(),
			DocumentID:    doc.ID,
			Position:      i,
			Status:        models.CandidatePending,
			CandidateName: textutil.CandidateName(doc.OriginalFileName),
			FileName:      doc.OriginalFileName,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		})
	}

	run := &models.ScreeningRun{
		ID:           uuid.New(),
		JDDocumentID: jdDocID,
		JDText:       strings.TrimSpace(req.JDText),
		Status:       models.StatusQueued,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.screeningRepo.CreateRun(run, candidates); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create screening run",
		})
	}

	h.worker.EnqueueRun(run.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ScreeningResponse{
		ID:     run.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleGetScreening handles GET /screenings/:id.
func (h *ScreeningHandler) HandleGetScreening(c *fiber.Ctx) error {
	runID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid screening run ID format",
		})
	}

	run, err := h.screeningRepo.FindRunByID(runID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Screening run not found",
		})
	}

	response := models.ScreeningResultResponse{
		ID:           run.ID.String(),
		Status:       string(run.Status),
		ErrorMessage: run.ErrorMessage,
	}

	if run.Status == models.StatusCompleted {
		rows, err := h.candidateRows(runID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load candidate results",
			})
		}
		response.Candidates = rows
	}

	return c.JSON(response)
}

// candidateRows builds the table: scored candidates sorted by match percent
// descending (stable, so ties keep upload order), failed ones after.
func (h *ScreeningHandler) candidateRows(runID uuid.UUID) ([]models.CandidateRow, error) {
	candidates, err := h.screeningRepo.FindCandidates(runID)
	if err != nil {
		return nil, err
	}

	var scored, failed []models.CandidateRow
	for _, cand := range candidates {
		row := models.CandidateRow{
			Candidate:       cand.CandidateName,
			File:            cand.FileName,
			Status:          string(cand.Status),
			MatchPercent:    cand.MatchPercent,
			SimilarityPct:   cand.SimilarityPct,
			SkillOverlapPct: cand.SkillOverlapPct,
			ExperienceYears: cand.ExperienceYears,
		}
		if cand.Strengths != nil {
			row.Strengths = *cand.Strengths
		}
		if cand.Weaknesses != nil {
			row.Weaknesses = *cand.Weaknesses
		}
		if cand.Reasoning != nil {
			row.Reasoning = *cand.Reasoning
		}
		if cand.FailureReason != nil {
			row.FailureReason = *cand.FailureReason
		}

		if cand.Status == models.CandidateScored {
			scored = append(scored, row)
		} else {
			failed = append(failed, row)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return matchOf(scored[i]) > matchOf(scored[j])
	})

	return append(scored, failed...), nil
}

func matchOf(row models.CandidateRow) float64 {
	if row.MatchPercent == nil {
		return 0
	}
	return *row.MatchPercent
}
