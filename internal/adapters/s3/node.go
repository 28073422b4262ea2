package s3

import (
	"context"

	"github.com/TopPano/providence-engine/internal/adapters/config"
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the artifact store Graft node.
const NodeID graft.ID = "adapter.s3"

func init() {
	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ArtifactStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			client, err := NewClient(cfg.Store)
			if err != nil {
				return nil, err
			}
			return New(client, cfg.Store.Bucket), nil
		},
	})
}
