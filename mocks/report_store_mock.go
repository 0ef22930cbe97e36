package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) Upload(ctx context.Context, reviewID, report string) (string, error) {
	args := m.Called(ctx, reviewID, report)
	return args.String(0), args.Error(1)
}
