package port

import (
	"context"

	"piiguard/internal/domain"
)

// AuditSink records ingested prompts. Implementations must be safe for
// concurrent use.
type AuditSink interface {
	Append(ctx context.Context, entry *domain.IngestEntry) error
	Name() string
	Close() error
}

// IngestLogRepository persists ingested prompts in a database.
type IngestLogRepository interface {
	Create(ctx context.Context, entry *domain.IngestEntry) error
}
