package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-reviewer/internal/repositories"
	"alfredoptarigan/resume-reviewer/internal/services"
)

type ResultHandler struct {
	reviewRepo repositories.ReviewRepository
}

func NewResultHandler(reviewRepo repositories.ReviewRepository) *ResultHandler {
	return &ResultHandler{
		reviewRepo: reviewRepo,
	}
}

// HandleGetReview handles GET /reviews/:id
func (h *ResultHandler) HandleGetReview(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review ID format",
		})
	}

	review, err := h.reviewRepo.FindByID(reviewID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(review)
}

// HandleGetReport handles GET /reviews/:id/report and serves the markdown
// report as a download.
func (h *ResultHandler) HandleGetReport(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review ID format",
		})
	}

	review, err := h.reviewRepo.FindByID(reviewID)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", services.ReportFilename))
	return c.SendString(services.RenderReport(review.General, review.JDMatch))
}
