// Package telemetry holds telemetry adapters that need no backing service.
package telemetry

import (
	"context"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

var _ ports.Telemetry = (*Noop)(nil)

// Noop is a ports.Telemetry that records nothing.
type Noop struct{}

// NewNoop creates a new Noop.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns a vertex that discards everything.
func (n *Noop) Record(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	v := NoopVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (n *Noop) Close() error {
	return nil
}

// NoopVertex is a ports.Vertex that discards everything.
type NoopVertex struct{}

// Log does nothing.
func (NoopVertex) Log(domain.LogLevel, string) {}

// Complete does nothing.
func (NoopVertex) Complete(error) {}

// Cached does nothing.
func (NoopVertex) Cached() {}
