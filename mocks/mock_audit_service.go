package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAuditService is a mock implementation of service.AuditService.
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, requestID, text string) {
	m.Called(ctx, requestID, text)
}

func (m *MockAuditService) Close() error {
	args := m.Called()
	return args.Error(0)
}
