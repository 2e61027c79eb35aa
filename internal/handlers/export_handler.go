package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/roomanhq/resume-screener/internal/models"
	"github.com/roomanhq/resume-screener/internal/repositories"
	"github.com/roomanhq/resume-screener/internal/services"
)

type ExportHandler struct {
	screeningRepo repositories.ScreeningRepository
	screening     *ScreeningHandler
}

func NewExportHandler(screeningRepo repositories.ScreeningRepository, screening *ScreeningHandler) *ExportHandler {
	return &ExportHandler{
		screeningRepo: screeningRepo,
		screening:     screening,
	}
}

// HandleExportCSV handles GET /screenings/:id/export and streams the results
// table as an attachment.
func (h *ExportHandler) HandleExportCSV(c *fiber.Ctx) error {
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

	if run.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  "Screening run is not completed",
			"status": string(run.Status),
		})
	}

	rows, err := h.screening.candidateRows(runID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load candidate results",
		})
	}

	var buf bytes.Buffer
	if err := services.WriteResultsCSV(&buf, rows); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render CSV",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume_results.csv"`)
	return c.Send(buf.Bytes())
}
