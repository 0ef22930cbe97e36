package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-reviewer/internal/models"
)

type ReviewInput struct {
	Resume         models.UploadedDocument
	JobDescription *models.UploadedDocument
	Role           string
}

type ReviewOutcome struct {
	Role           string               `json:"role" yaml:"role"`
	General        models.GeneralReview `json:"general" yaml:"general"`
	JDMatch        *models.JDMatch      `json:"jd_match,omitempty" yaml:"jd_match,omitempty"`
	Warnings       []string             `json:"warnings" yaml:"warnings"`
	ResumePreview  string               `json:"resume_preview" yaml:"resume_preview"`
	JobDescPreview string               `json:"job_description_preview,omitempty" yaml:"job_description_preview,omitempty"`
}

type ReviewService interface {
	ExtractDocument(ctx context.Context, doc models.UploadedDocument) (string, error)
	Review(ctx context.Context, in ReviewInput) (*ReviewOutcome, error)
}

type reviewService struct {
	extractor    TextExtractor
	prompts      *PromptBuilder
	analyzer     AnalysisClient
	previewChars int
}

func NewReviewService(
	extractor TextExtractor,
	prompts *PromptBuilder,
	analyzer AnalysisClient,
	previewChars int,
) ReviewService {
	return &reviewService{
		extractor:    extractor,
		prompts:      prompts,
		analyzer:     analyzer,
		previewChars: previewChars,
	}
}

// ExtractDocument implements ReviewService.
func (s *reviewService) ExtractDocument(ctx context.Context, doc models.UploadedDocument) (string, error) {
	return s.extractor.Extract(ctx, doc.Content, doc.Format)
}

// Review extracts the resume and optional job description, then runs the
// general review and, when a job description is usable, the match analysis
// concurrently. A job description that cannot be read is dropped with a
// warning instead of failing the review.
func (s *reviewService) Review(ctx context.Context, in ReviewInput) (*ReviewOutcome, error) {
	resumeText, err := s.ExtractDocument(ctx, in.Resume)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume: %w", err)
	}
	if resumeText == "" {
		return nil, fmt.Errorf("%w: resume contains no extractable text", ErrEmptyInput)
	}

	outcome := &ReviewOutcome{
		Role:          ResolveRole(in.Role),
		Warnings:      []string{},
		ResumePreview: Preview(resumeText, s.previewChars),
	}

	jdText := s.extractJobDescription(ctx, in.JobDescription, outcome)

	log.WithField("role", outcome.Role).
		WithField("resume_chars", len([]rune(resumeText))).
		WithField("with_jd", jdText != "").
		Info("🤖 Running analysis")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := s.analyzer.Execute(gctx, s.prompts.BuildGeneralRequest(resumeText, in.Role))
		if err != nil {
			return fmt.Errorf("general review: %w", err)
		}
		outcome.General = *result.General
		return nil
	})

	if jdText != "" {
		g.Go(func() error {
			result, err := s.analyzer.Execute(gctx, s.prompts.BuildJDRequest(resumeText, jdText, in.Role))
			if err != nil {
				return fmt.Errorf("job description match: %w", err)
			}
			outcome.JDMatch = result.JDMatch
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcome, nil
}

func (s *reviewService) extractJobDescription(ctx context.Context, doc *models.UploadedDocument, outcome *ReviewOutcome) string {
	if doc == nil {
		return ""
	}

	text, err := s.ExtractDocument(ctx, *doc)
	if err != nil {
		log.WithError(err).WithField("filename", doc.Filename).Warn("⚠️ Failed to parse job description, continuing without it")
		outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("Failed to parse job description: %v", err))
		return ""
	}
	if text == "" {
		outcome.Warnings = append(outcome.Warnings, "The uploaded job description is empty. Proceeding with role-based review only.")
		return ""
	}

	outcome.JobDescPreview = Preview(text, s.previewChars)
	return text
}
