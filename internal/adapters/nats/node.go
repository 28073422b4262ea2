package nats

import (
	"context"

	"github.com/TopPano/providence-engine/internal/adapters/config"
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the message bus Graft node.
const NodeID graft.ID = "adapter.nats"

func init() {
	graft.Register(graft.Node[ports.Bus]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Bus, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return Connect(cfg.NATS)
		},
	})
}
