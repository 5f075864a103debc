package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrDimensionMismatch marks a vector whose dimension disagrees with the
	// index configuration. Mixing embedding models silently corrupts
	// similarity rankings, so this is fatal for the affected call.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrModelUnavailable marks failures of the external embedding, rerank
	// and generation services. Callers decide whether to retry the request.
	ErrModelUnavailable = errors.New("model unavailable")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
