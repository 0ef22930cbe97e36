package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/repositories"
	"alfredoptarigan/resume-reviewer/internal/services"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	reviewRepo    repositories.ReviewRepository
	reportStore   services.ReportStore
	maxFileSize   int64
}

// NewReviewHandler wires the review endpoint. reportStore may be nil when
// report archiving is disabled.
func NewReviewHandler(
	reviewService services.ReviewService,
	reviewRepo repositories.ReviewRepository,
	reportStore services.ReportStore,
	maxFileSize int64,
) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		reviewRepo:    reviewRepo,
		reportStore:   reportStore,
		maxFileSize:   maxFileSize,
	}
}

// HandleReview handles POST /review
func (h *ReviewHandler) HandleReview(c *fiber.Ctx) error {
	resumeHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	resume, err := readUpload(resumeHeader, h.maxFileSize)
	if err != nil {
		return respondError(c, err)
	}

	input := services.ReviewInput{
		Resume: resume,
		Role:   c.FormValue("role"),
	}

	if jdHeader, err := c.FormFile("job_description"); err == nil {
		jd, err := readUpload(jdHeader, h.maxFileSize)
		if err != nil {
			return respondError(c, err)
		}
		input.JobDescription = &jd
	}

	ctx := c.UserContext()
	outcome, err := h.reviewService.Review(ctx, input)
	if err != nil {
		return respondError(c, err)
	}

	review := &models.Review{
		ID:             uuid.New(),
		Role:           outcome.Role,
		ResumeFilename: resume.Filename,
		ResumeFormat:   resume.Format,
		General:        outcome.General,
		JDMatch:        outcome.JDMatch,
		Warnings:       outcome.Warnings,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if input.JobDescription != nil && outcome.JDMatch != nil {
		review.JobDescriptionFilename = input.JobDescription.Filename
	}

	if err := h.reviewRepo.Create(review); err != nil {
		return respondError(c, err)
	}

	if h.reportStore != nil {
		report := services.RenderReport(review.General, review.JDMatch)
		url, err := h.reportStore.Upload(ctx, review.ID.String(), report)
		if err != nil {
			log.WithError(err).WithField("review_id", review.ID).Warn("⚠️ Failed to archive report")
		} else if err := h.reviewRepo.UpdateReportURL(review.ID, url); err != nil {
			log.WithError(err).WithField("review_id", review.ID).Warn("⚠️ Failed to record report location")
		} else {
			review.ReportURL = url
		}
	}

	log.WithField("review_id", review.ID).
		WithField("overall_score", review.General.OverallScore).
		Info("✅ Review completed")

	return c.Status(fiber.StatusCreated).JSON(models.ReviewResponse{
		ID:                review.ID.String(),
		Role:              review.Role,
		General:           review.General,
		JDMatch:           review.JDMatch,
		Warnings:          review.Warnings,
		ResumePreview:     outcome.ResumePreview,
		JobDescPreview:    outcome.JobDescPreview,
		ReportURL:         review.ReportURL,
		ReportDownloadURL: "/api/v1/reviews/" + review.ID.String() + "/report",
	})
}
