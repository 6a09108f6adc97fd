package npm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pack/internal/core/ports"
)

// NodeID is the unique identifier for the dependency locator Graft node.
const NodeID graft.ID = "adapter.npm.locator"

func init() {
	graft.Register(graft.Node[ports.DependencyLocator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DependencyLocator, error) {
			return NewLocator(), nil
		},
	})
}
