package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/talentbridge/backend/internal/models"
	"github.com/talentbridge/backend/internal/services"
)

type MatchHandler struct {
	matcher services.MatcherService
}

func NewMatchHandler(matcher services.MatcherService) *MatchHandler {
	return &MatchHandler{matcher: matcher}
}

// HandleRun handles POST /match/run
func (h *MatchHandler) HandleRun(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	summary, err := h.matcher.RunMatching(c.UserContext(), identity.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNoResumesFound) || errors.Is(err, services.ErrNoJobOffersFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "matching run failed",
		})
	}

	return c.JSON(models.MatchRunResponse{
		Message:    "Matching complete",
		MatchedCVs: summary.MatchedResumes,
		Matches:    summary.Matches,
	})
}

// HandleResults handles GET /match/results
func (h *MatchHandler) HandleResults(c *fiber.Ctx) error {
	identity := CurrentIdentity(c)

	results, err := h.matcher.GetResults(c.UserContext(), identity.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNoResumesFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve matches",
		})
	}

	message := "Matches retrieved"
	if len(results) == 0 {
		message = "No matches found"
	}

	return c.JSON(models.MatchResultsResponse{
		Message: message,
		Matches: results,
	})
}
