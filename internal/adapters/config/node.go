package config

import (
	"context"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the configuration Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[*domain.Config]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*domain.Config, error) {
			return NewLoader(PathFrom(ctx)).Load()
		},
	})
}
