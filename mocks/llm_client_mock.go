package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, systemMessage, userMessage string) (map[string]any, error) {
	args := m.Called(ctx, systemMessage, userMessage)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[string]any), args.Error(1)
}
