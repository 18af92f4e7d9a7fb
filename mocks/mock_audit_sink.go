package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"piiguard/internal/domain"
)

// MockAuditSink is a mock implementation of port.AuditSink.
type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Append(ctx context.Context, entry *domain.IngestEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditSink) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAuditSink) Close() error {
	args := m.Called()
	return args.Error(0)
}
