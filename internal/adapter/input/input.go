// Package input provides input adapters for alert request sources.
package input

import (
	"context"
	"os"
)

// Adapter streams alert requests from a source.
type Adapter interface {
	// Name returns the adapter identifier (e.g., "stdin").
	Name() string

	// Read calls fn for every request until the source is exhausted,
	// ctx is done, or fn returns an error.
	Read(ctx context.Context, fn func(Request) error) error
}

// NewAdapter creates an Adapter for the specified source.
// An empty source reads standard input.
func NewAdapter(source string) (Adapter, error) {
	switch source {
	case "", "stdin":
		return NewJSONLinesAdapter(os.Stdin), nil
	default:
		return nil, &AdapterError{
			Source:  source,
			Message: "unknown or unavailable adapter",
		}
	}
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
