package router

import (
	"context"

	"github.com/TopPano/providence-engine/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"github.com/TopPano/providence-engine/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"github.com/TopPano/providence-engine/internal/adapters/nats"   //nolint:depguard // Wired in engine wiring
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the router Graft node.
const NodeID graft.ID = "engine.router"

func init() {
	graft.Register(graft.Node[*Router]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			nats.NodeID,
		},
		Run: func(ctx context.Context) (*Router, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			bus, err := graft.Dep[ports.Bus](ctx)
			if err != nil {
				return nil, err
			}
			return New(bus, cfg.NATS.Subject, cfg.NATS.Queue, log), nil
		},
	})
}
