package service

import (
	"context"
	"log"

	"piiguard/internal/domain"
	"piiguard/internal/extraction"
	"piiguard/internal/llm"
	"piiguard/internal/port"
)

// ExtractionService finds PII in free text using the configured model.
type ExtractionService interface {
	// Extract returns the PII found in text. Errors are *domain.ExtractionError
	// matching domain.ErrLLMUnavailable or domain.ErrLLMInvocation.
	Extract(ctx context.Context, text string) (domain.ExtractionResult, error)
}

type extractionService struct {
	model  port.ChatModel
	status llm.Availability
}

// NewExtractionService creates a new ExtractionService. status is the startup
// initialization outcome of model and is never re-evaluated.
func NewExtractionService(model port.ChatModel, status llm.Availability) ExtractionService {
	return &extractionService{model: model, status: status}
}

func (s *extractionService) Extract(ctx context.Context, text string) (domain.ExtractionResult, error) {
	if !s.status.OK() {
		return domain.ExtractionResult{}, domain.NewUnavailableError(s.status.Err())
	}
	if s.model == nil {
		return domain.ExtractionResult{}, domain.NewUnavailableError(nil)
	}

	resp, err := s.model.Chat(ctx, port.ChatRequest{Messages: llm.BuildPIIMessages(text)})
	if err != nil {
		log.Printf("service.ExtractionService: %s call failed: %v", s.model.Name(), err)
		return domain.ExtractionResult{}, domain.NewInvocationError(err)
	}

	result := extraction.ParseReply(resp.Text())
	if !resp.HasContent {
		log.Printf("service.ExtractionService: %s reply had no content field, parsed raw body", s.model.Name())
	}
	return result, nil
}
