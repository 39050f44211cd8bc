package services

import "skillpath-backend/internal/models"

// Custom errors
type ValidationError struct {
	Details []models.FieldError
}

func (e *ValidationError) Error() string { return "Dados inválidos" }

// Fields flattens the details for the v1 error body. The first message per
// field wins.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Details))
	for _, d := range e.Details {
		if _, ok := fields[d.Field]; !ok {
			fields[d.Field] = d.Message
		}
	}
	return fields
}

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

// UpstreamError wraps a failed LLM call. Message is safe to show users.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string { return e.Message + ": " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

const generationFailedMessage = "Falha ao gerar trilha de aprendizagem"
