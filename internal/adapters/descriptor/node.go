package descriptor

import (
	"context"

	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the descriptor generator Graft node.
const NodeID graft.ID = "adapter.descriptor"

func init() {
	graft.Register(graft.Node[ports.DescriptorGenerator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DescriptorGenerator, error) {
			return NewGenerator(), nil
		},
	})
}
