package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-reviewer/internal/models"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(id uuid.UUID) (*models.Review, error) {
	args := m.Called(id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) UpdateReportURL(id uuid.UUID, url string) error {
	args := m.Called(id, url)
	return args.Error(0)
}
