package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/talentbridge/backend/internal/models"
	"github.com/talentbridge/backend/internal/repositories"
)

type JobOfferHandler struct {
	offerRepo repositories.JobOfferRepository
}

func NewJobOfferHandler(offerRepo repositories.JobOfferRepository) *JobOfferHandler {
	return &JobOfferHandler{offerRepo: offerRepo}
}

// HandleCreate handles POST /job-offers
func (h *JobOfferHandler) HandleCreate(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	var req models.CreateJobOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}
	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "description is required",
		})
	}

	offer := &models.JobOffer{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Criteria:    req.Criteria,
		CreatedBy:   identity.UserID,
		CreatedAt:   time.Now(),
	}

	if err := h.offerRepo.Create(offer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create job offer",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(offer)
}

// HandleList handles GET /job-offers
func (h *JobOfferHandler) HandleList(c *fiber.Ctx) error {
	offers, err := h.offerRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list job offers",
		})
	}

	return c.JSON(fiber.Map{"job_offers": offers})
}

// HandleGet handles GET /job-offers/:id
func (h *JobOfferHandler) HandleGet(c *fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job offer ID format",
		})
	}

	offer, err := h.offerRepo.FindByID(offerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job offer not found",
		})
	}

	return c.JSON(offer)
}

// HandleUpdate handles PUT /job-offers/:id
func (h *JobOfferHandler) HandleUpdate(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job offer ID format",
		})
	}

	offer, err := h.offerRepo.FindByID(offerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job offer not found",
		})
	}

	if offer.CreatedBy != identity.UserID && identity.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not your job offer",
		})
	}

	var req models.CreateJobOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}
	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "description is required",
		})
	}

	offer.Title = req.Title
	offer.Description = req.Description
	offer.Criteria = req.Criteria

	if err := h.offerRepo.Update(offer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update job offer",
		})
	}

	return c.JSON(offer)
}

// HandleDelete handles DELETE /job-offers/:id
func (h *JobOfferHandler) HandleDelete(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job offer ID format",
		})
	}

	offer, err := h.offerRepo.FindByID(offerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job offer not found",
		})
	}

	if offer.CreatedBy != identity.UserID && identity.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not your job offer",
		})
	}

	if err := h.offerRepo.Delete(offerID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete job offer",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
