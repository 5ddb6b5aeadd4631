package policy

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/packager/internal/core/ports"
)

// NodeID is the unique identifier for the policy loader Graft node.
const NodeID graft.ID = "adapter.policy"

func init() {
	graft.Register(graft.Node[ports.PolicyLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PolicyLoader, error) {
			return NewLoader(), nil
		},
	})
}
