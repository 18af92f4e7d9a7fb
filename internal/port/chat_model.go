package port

import (
	"context"

	"piiguard/internal/domain"
)

// ChatRequest carries the conversation sent to the model.
type ChatRequest struct {
	Messages []domain.ChatMessage
}

// ChatResponse is a model reply. Content is the assistant message text when
// the provider returned one; Raw is the undecoded response body.
type ChatResponse struct {
	Content    string
	HasContent bool
	Raw        string
	ModelUsed  string
}

// Text returns the message content, falling back to the raw body when the
// provider response carried no content field.
func (r *ChatResponse) Text() string {
	if r.HasContent {
		return r.Content
	}
	return r.Raw
}

// ChatModel abstracts a hosted language model.
type ChatModel interface {
	// Chat sends the messages and blocks until the model replies.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	// Validate checks that the configured model is reachable and installed.
	Validate(ctx context.Context) error
	// Name identifies the provider and model, e.g. "ollama/gemma3:4b".
	Name() string
}
