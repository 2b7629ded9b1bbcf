package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/talentbridge/backend/internal/models"
	"github.com/talentbridge/backend/internal/repositories"
	"github.com/talentbridge/backend/internal/services"
)

type CVHandler struct {
	resumeRepo     repositories.ResumeRepository
	ingestion      services.IngestionService
	storageService services.StorageService
	maxFileSize    int64
}

func NewCVHandler(
	resumeRepo repositories.ResumeRepository,
	ingestion services.IngestionService,
	storageService services.StorageService,
	maxFileSize int64,
) *CVHandler {
	return &CVHandler{
		resumeRepo:     resumeRepo,
		ingestion:      ingestion,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /cv/upload
func (h *CVHandler) HandleUpload(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	fileHeader, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A 'cv' file is required",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	resume, err := h.ingestion.Ingest(c.UserContext(), identity.UserID, data, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Only PDF files allowed.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to ingest CV: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ResumeID:   resume.ID.String(),
		Filename:   resume.OriginalFileName,
		ParsedInfo: resume.ParsedInfo,
		Message:    "CV uploaded successfully.",
	})
}

// HandleList handles GET /cv
func (h *CVHandler) HandleList(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	resumes, err := h.resumeRepo.FindByUser(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list CVs",
		})
	}

	return c.JSON(fiber.Map{"cvs": resumes})
}

// HandleDownload handles GET /cv/download/:id
func (h *CVHandler) HandleDownload(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	resume, err := h.resumeRepo.FindByID(resumeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV not found",
		})
	}

	if resume.UserID != identity.UserID && identity.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not your CV",
		})
	}

	data, err := h.storageService.ReadFile(resume.Filename)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV file not found",
		})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", resume.OriginalFileName))
	return c.Send(data)
}

// HandleDelete handles DELETE /cv/:id
func (h *CVHandler) HandleDelete(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	resume, err := h.resumeRepo.FindByID(resumeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV not found",
		})
	}

	if resume.UserID != identity.UserID && identity.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not your CV",
		})
	}

	if err := h.resumeRepo.Delete(resumeID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete CV",
		})
	}

	if err := h.storageService.DeleteFile(resume.Filename); err != nil {
		// record is gone; a stray file on disk is not worth failing over
		_ = err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
