package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/logger"
	"alfredoptarigan/resume-reviewer/internal/repositories"
	"alfredoptarigan/resume-reviewer/internal/services"
)

var log = logger.New("handlers")

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrEmptyInput):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrUnsupportedFormat):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrDocumentParse):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrAnalysisUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, repositories.ErrReviewNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error("❌ Request failed")
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
