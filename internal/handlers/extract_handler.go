package handlers

import (
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

type ExtractHandler struct {
	reviewService services.ReviewService
	maxFileSize   int64
	previewChars  int
}

func NewExtractHandler(reviewService services.ReviewService, maxFileSize int64, previewChars int) *ExtractHandler {
	return &ExtractHandler{
		reviewService: reviewService,
		maxFileSize:   maxFileSize,
		previewChars:  previewChars,
	}
}

// HandleExtract handles POST /extract. It returns a preview of the normalized
// text so callers can check what the analysis will see.
func (h *ExtractHandler) HandleExtract(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	doc, err := readUpload(header, h.maxFileSize)
	if err != nil {
		return respondError(c, err)
	}

	text, err := h.reviewService.ExtractDocument(c.UserContext(), doc)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.ExtractResponse{
		Filename:   doc.Filename,
		Format:     doc.Format,
		Characters: utf8.RuneCountInString(text),
		Preview:    services.Preview(text, h.previewChars),
	})
}
