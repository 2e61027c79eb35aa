package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/roomanhq/resume-screener/internal/llm"
	"github.com/roomanhq/resume-screener/internal/models"
)

type HealthHandler struct {
	ollama *llm.OllamaClient
}

func NewHealthHandler(ollama *llm.OllamaClient) *HealthHandler {
	return &HealthHandler{ollama: ollama}
}

// HandleHealth handles GET /health, reporting service liveness and whether the
// local model server is reachable.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	health := h.ollama.HealthCheck(ctx)

	return c.JSON(models.HealthResponse{
		Status: "healthy",
		Ollama: models.OllamaHealth{
			OK:      health.OK,
			Message: health.Message,
			Models:  health.Models,
		},
	})
}
