package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"piiguard/internal/domain"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Extract(ctx context.Context, text string) (domain.ExtractionResult, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(domain.ExtractionResult), args.Error(1)
}
