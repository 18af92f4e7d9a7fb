package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"piiguard/internal/domain"
	"piiguard/internal/port"
)

type ingestLogRepo struct {
	db *sqlx.DB
}

// NewIngestLogRepo creates a new PostgreSQL-backed IngestLogRepository.
func NewIngestLogRepo(db *sqlx.DB) port.IngestLogRepository {
	return &ingestLogRepo{db: db}
}

func (r *ingestLogRepo) Create(ctx context.Context, entry *domain.IngestEntry) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO ingest_log (id, request_id, text, received_at)
		 VALUES (:id, :request_id, :text, :received_at)`,
		entry)
	if err != nil {
		return fmt.Errorf("ingestLogRepo.Create: %w", err)
	}
	return nil
}
