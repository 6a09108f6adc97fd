// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/pack/internal/core/domain"
)

// TransformRequest is one unit of work for a Transformer.
type TransformRequest struct {
	// Path names the source for diagnostics and loader inference. It is never read.
	Path string
	// Code is the source text.
	Code string
	// Options are the transformer options from the build configuration.
	Options domain.TransformerOptions
}

// Transformer turns source text into CommonJS the runtime can execute.
//
//go:generate go run go.uber.org/mock/mockgen -source=transformer.go -destination=mocks/mock_transformer.go -package=mocks
type Transformer interface {
	// Transform returns the transformed code. Implementations must be safe for
	// concurrent use and must never fall back to returning the input on failure.
	Transform(ctx context.Context, req TransformRequest) (string, error)
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(ctx context.Context, req TransformRequest) (string, error)

// Transform calls f.
func (f TransformerFunc) Transform(ctx context.Context, req TransformRequest) (string, error) {
	return f(ctx, req)
}
