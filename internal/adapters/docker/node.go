package docker

import (
	"context"

	"github.com/TopPano/providence-engine/internal/adapters/config"
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the image engine Graft node.
const NodeID graft.ID = "adapter.docker"

func init() {
	graft.Register(graft.Node[ports.ImageEngine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ImageEngine, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			client, err := NewClient(cfg.Docker)
			if err != nil {
				return nil, err
			}
			return New(client, cfg.Registry.Host), nil
		},
	})
}
