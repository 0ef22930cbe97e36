package services

import (
	"context"
	"fmt"
	"time"

	"alfredoptarigan/resume-reviewer/internal/models"
)

type AnalysisClient interface {
	Execute(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)
}

type analysisClient struct {
	llm         LLMClient
	retry       RetryPolicy
	callTimeout time.Duration
}

func NewAnalysisClient(llm LLMClient, retry RetryPolicy, callTimeout time.Duration) AnalysisClient {
	return &analysisClient{
		llm:         llm,
		retry:       retry,
		callTimeout: callTimeout,
	}
}

// Execute sends the request with retries and coerces the reply into the
// result shape for the request's mode. Only exhausted retries are an error.
func (c *analysisClient) Execute(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	if req.Mode != models.ModeGeneral && req.Mode != models.ModeJDMatch {
		return nil, fmt.Errorf("unknown analysis mode %q", req.Mode)
	}

	var raw map[string]any
	err := c.retry.Do(ctx, func(ctx context.Context, attempt int) error {
		callCtx := ctx
		if c.callTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.callTimeout)
			defer cancel()
		}

		out, err := c.llm.Complete(callCtx, req.SystemMessage, req.UserMessage)
		if err != nil {
			return err
		}
		raw = out
		return nil
	})
	if err != nil {
		log.WithError(err).WithField("mode", req.Mode).Error("❌ Analysis failed")
		return nil, fmt.Errorf("%w: %w", ErrAnalysisUnavailable, err)
	}

	result := &models.AnalysisResult{Mode: req.Mode}
	switch req.Mode {
	case models.ModeJDMatch:
		match := CoerceJDMatch(raw)
		result.JDMatch = &match
	default:
		review := CoerceGeneralReview(raw)
		result.General = &review
	}

	return result, nil
}
