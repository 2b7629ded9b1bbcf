package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/talentbridge/backend/internal/models"
	"github.com/talentbridge/backend/internal/repositories"
	"github.com/talentbridge/backend/internal/services"
)

type ApplicationHandler struct {
	appRepo    repositories.ApplicationRepository
	offerRepo  repositories.JobOfferRepository
	appService services.ApplicationService
}

func NewApplicationHandler(
	appRepo repositories.ApplicationRepository,
	offerRepo repositories.JobOfferRepository,
	appService services.ApplicationService,
) *ApplicationHandler {
	return &ApplicationHandler{
		appRepo:    appRepo,
		offerRepo:  offerRepo,
		appService: appService,
	}
}

// HandleGenerateFromMatches handles POST /applications/generate-from-matches
func (h *ApplicationHandler) HandleGenerateFromMatches(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	apps, err := h.appService.GenerateFromMatches(c.UserContext(), identity.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNoResumesFound) || errors.Is(err, services.ErrNoMatchesFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to generate applications",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"applications": apps})
}

// HandleCreate handles POST /applications
func (h *ApplicationHandler) HandleCreate(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	var req models.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	offerID, err := uuid.Parse(req.OfferID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid offer_id format",
		})
	}

	app := &models.Application{
		ID:            uuid.New(),
		UserID:        identity.UserID,
		OfferID:       offerID,
		CoverLetter:   req.CoverLetter,
		MatchingScore: req.MatchingScore,
		CreatedAt:     time.Now(),
	}

	if err := h.appRepo.Create(app); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create application",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// HandleListMine handles GET /applications
func (h *ApplicationHandler) HandleListMine(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	apps, err := h.appRepo.FindByUser(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list applications",
		})
	}

	return c.JSON(fiber.Map{"applications": apps})
}

// HandleListByOffer handles GET /applications/offer/:offerId
func (h *ApplicationHandler) HandleListByOffer(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	offerID, err := uuid.Parse(c.Params("offerId"))
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

	apps, err := h.appRepo.FindByOffer(offerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list applications",
		})
	}

	return c.JSON(fiber.Map{"applications": apps})
}

// HandleDelete handles DELETE /applications/:id
func (h *ApplicationHandler) HandleDelete(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	app, err := h.appRepo.FindByID(appID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	if app.UserID != identity.UserID && identity.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not your application",
		})
	}

	if err := h.appRepo.Delete(appID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete application",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
