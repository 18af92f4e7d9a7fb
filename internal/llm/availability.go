package llm

import (
	"context"
	"errors"
	"log"

	"piiguard/internal/port"
)

// Availability is the outcome of the one-time model initialization done at
// startup. It is immutable and shared by every request.
type Availability struct {
	model string
	err   error
}

// Available returns an Availability for a model that initialized successfully.
func Available(model string) Availability {
	return Availability{model: model}
}

// Unavailable returns an Availability recording why the model could not be
// initialized.
func Unavailable(model string, err error) Availability {
	if err == nil {
		err = errors.New("model not initialized")
	}
	return Availability{model: model, err: err}
}

// Err returns the initialization error, or nil when the model is usable.
func (a Availability) Err() error { return a.err }

// OK reports whether the model initialized successfully.
func (a Availability) OK() bool { return a.err == nil }

// Model names the model this status describes.
func (a Availability) Model() string { return a.model }

// Probe initializes the model and records the outcome. A nil model or a
// failed constructor is passed in as initErr. When validate is false the
// model is assumed reachable.
func Probe(ctx context.Context, model port.ChatModel, initErr error, validate bool) Availability {
	name := "unknown"
	if model != nil {
		name = model.Name()
	}
	if initErr != nil {
		log.Printf("llm.Probe: %s failed to initialize: %v", name, initErr)
		return Unavailable(name, initErr)
	}
	if model == nil {
		return Unavailable(name, nil)
	}
	if !validate {
		return Available(name)
	}
	if err := model.Validate(ctx); err != nil {
		log.Printf("llm.Probe: %s validation failed: %v", name, err)
		return Unavailable(name, err)
	}
	log.Printf("llm.Probe: %s is available", name)
	return Available(name)
}
