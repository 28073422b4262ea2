package logger

import (
	"context"
	"os"

	"github.com/TopPano/providence-engine/internal/adapters/config"
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			l := newLogger(os.Stderr)
			l.SetJSON(cfg.Log.JSON)
			l.SetLevel(cfg.Log.Level)
			return l, nil
		},
	})
}
