package enhance

import (
	"context"
	"errors"

	"pixlift/internal/domain"
)

// Request describes a normalized enhancement request passed to any provider.
type Request struct {
	InputHandle string
	Quality     Quality
	Style       Style
	JobID       string
}

// Result represents a successfully enhanced image.
type Result struct {
	OutputHandle string
	Format       string
	Width        int
	Height       int
}

// Enhancer is the contract implemented by all enhancement providers.
type Enhancer interface {
	Enhance(ctx context.Context, req Request) (*Result, error)
}

// Error is the normalized failure every provider implementation returns.
// Raw provider errors never cross this boundary.
type Error struct {
	Kind    domain.ErrorKind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// NewError builds a classified provider failure.
func NewError(kind domain.ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Classify extracts the normalized kind from an adapter error. Deadline
// expiry that escaped the adapter still counts as a timeout.
func Classify(err error) domain.ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrorKindTimeout
	}
	return domain.ErrorKindUnknown
}
