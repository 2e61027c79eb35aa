package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/roomanhq/resume-screener/internal/models"
	"github.com/roomanhq/resume-screener/internal/repositories"
	"github.com/roomanhq/resume-screener/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload. Accepts one "jd" file and any number of
// "resumes" files, pdf or txt.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File

	var responses []models.UploadResponse

	if jdFiles, exists := files["jd"]; exists && len(jdFiles) > 0 {
		resp, err := h.saveOne(jdFiles[0], models.RoleJobDescription)
		if err != nil {
			return err
		}
		responses = append(responses, *resp)
	}

	if resumeFiles, exists := files["resumes"]; exists {
		for _, resumeFile := range resumeFiles {
			resp, err := h.saveOne(resumeFile, models.RoleResume)
			if err != nil {
				return err
			}
			responses = append(responses, *resp)
		}
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid files uploaded. Please upload 'jd' and/or 'resumes' as PDF or TXT files.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}

func (h *UploadHandler) saveOne(file *multipart.FileHeader, role models.DocumentRole) (*models.UploadResponse, error) {
	if file.Size > h.maxFileSize {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("%s too large. Max size: %d bytes", file.Filename, h.maxFileSize))
	}

	filename, filePath, err := h.storageService.SaveFile(file, string(role))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("failed to save %s: %v", file.Filename, err))
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		Role:             role,
		FileType:         fileTypeOf(file.Filename),
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return nil, fiber.NewError(fiber.StatusInternalServerError,
			fmt.Sprintf("failed to save document record for %s", file.Filename))
	}

	return &models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		Role:         string(doc.Role),
		FileType:     doc.FileType,
	}, nil
}

func fileTypeOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}
