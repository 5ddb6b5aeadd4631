package inspector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/packager/internal/core/ports"
)

// NodeID is the unique identifier for the binary inspector Graft node.
const NodeID graft.ID = "adapter.inspector"

func init() {
	graft.Register(graft.Node[ports.BinaryInspector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BinaryInspector, error) {
			return New(), nil
		},
	})
}
