package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, extract *ExtractHandler, review *ReviewHandler, result *ResultHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/extract", extract.HandleExtract)
	api.Post("/review", review.HandleReview)
	api.Get("/reviews/:id", result.HandleGetReview)
	api.Get("/reviews/:id/report", result.HandleGetReport)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Resume Reviewer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/extract",
				"POST /api/v1/review",
				"GET /api/v1/reviews/:id",
				"GET /api/v1/reviews/:id/report",
			},
		})
	})
}
