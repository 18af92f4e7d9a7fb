package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"piiguard/internal/domain"
)

// MockIngestLogRepo is a mock implementation of port.IngestLogRepository.
type MockIngestLogRepo struct {
	mock.Mock
}

func (m *MockIngestLogRepo) Create(ctx context.Context, entry *domain.IngestEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
