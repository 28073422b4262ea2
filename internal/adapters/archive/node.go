package archive

import (
	"context"

	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the unpacker Graft node.
const NodeID graft.ID = "adapter.archive"

func init() {
	graft.Register(graft.Node[ports.Unpacker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Unpacker, error) {
			return NewUnpacker(), nil
		},
	})
}
