package types

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStrategy reports an unrecognized search_type discriminator.
	ErrUnknownStrategy = errors.New("unknown search strategy")

	// ErrNestedBatch reports a batch request appearing inside a batch.
	ErrNestedBatch = errors.New("batch strategy cannot be nested")
)

// ValidationError names the request field that failed validation. These are
// raised at the boundary, before any core logic runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Message)
}
