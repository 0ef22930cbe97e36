package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ExtractDocument(ctx context.Context, doc models.UploadedDocument) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockReviewService) Review(ctx context.Context, in services.ReviewInput) (*services.ReviewOutcome, error) {
	args := m.Called(ctx, in)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*services.ReviewOutcome), args.Error(1)
}
