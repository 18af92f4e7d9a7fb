package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"piiguard/internal/domain"
	"piiguard/internal/port"
)

// AuditService appends ingested prompts to the audit trail. Recording is
// fire-and-forget: failures are logged and never reach the caller.
type AuditService interface {
	Record(ctx context.Context, requestID, text string)
	// Close waits for pending writes and releases the sink.
	Close() error
}

type auditService struct {
	sink port.AuditSink

	mu      sync.RWMutex
	closed  bool
	pending sync.WaitGroup
}

// NewAuditService creates a new AuditService writing to sink.
func NewAuditService(sink port.AuditSink) AuditService {
	return &auditService{sink: sink}
}

func (s *auditService) Record(ctx context.Context, requestID, text string) {
	entry := &domain.IngestEntry{
		ID:         uuid.New(),
		RequestID:  requestID,
		Text:       text,
		ReceivedAt: time.Now().UTC(),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		log.Printf("[%s] service.AuditService: dropped entry, audit trail closed", requestID)
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[%s] service.AuditService: %s panicked: %v", requestID, s.sink.Name(), r)
			}
		}()
		if err := s.sink.Append(context.WithoutCancel(ctx), entry); err != nil {
			log.Printf("[%s] service.AuditService: %s append failed: %v", requestID, s.sink.Name(), err)
		}
	}()
}

func (s *auditService) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.pending.Wait()
	return s.sink.Close()
}
