package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyIndex is returned when the store is built from no vectors
	// or searched before any vectors were stored.
	ErrEmptyIndex = errors.New("vector index is empty")

	// ErrDimensionMismatch is returned when a query vector's dimension
	// differs from the stored vectors.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmptyQuery rejects empty or whitespace-only questions. The
	// caller may retry with new input.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrModelUnavailable indicates a model collaborator could not be
	// reached or is missing the requested model. Fatal at startup.
	ErrModelUnavailable = errors.New("model unavailable")
)

// RetrievalError wraps a failure of the retrieval infrastructure.
// It is fatal to the single request, not to the process.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string { return fmt.Sprintf("retrieval failed: %v", e.Err) }
func (e *RetrievalError) Unwrap() error { return e.Err }

// GenerationError wraps a failure of the generation collaborator.
// The orchestrator converts it into a returned message, never an
// unhandled fault.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("generation failed: %v", e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }
