package audit

import (
	"context"
	"fmt"
	"io"

	"piiguard/internal/domain"
	"piiguard/internal/port"
)

// RepositorySink writes ingested messages to a database table.
type RepositorySink struct {
	repo   port.IngestLogRepository
	closer io.Closer
}

// NewRepositorySink creates a sink backed by repo. closer, when non-nil, is
// released on Close (typically the connection pool).
func NewRepositorySink(repo port.IngestLogRepository, closer io.Closer) *RepositorySink {
	return &RepositorySink{repo: repo, closer: closer}
}

func (s *RepositorySink) Name() string { return "postgres:ingest_log" }

func (s *RepositorySink) Append(ctx context.Context, entry *domain.IngestEntry) error {
	if entry == nil {
		return nil
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("repositorySink.Append: %w", err)
	}
	return nil
}

func (s *RepositorySink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// NopSink discards entries. Used when auditing is disabled.
type NopSink struct{}

func (NopSink) Name() string { return "none" }

func (NopSink) Append(context.Context, *domain.IngestEntry) error { return nil }

func (NopSink) Close() error { return nil }
