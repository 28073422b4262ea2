package telemetry

import (
	"context"

	"github.com/TopPano/providence-engine/internal/adapters/logger"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/grindlemire/graft"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NodeID is the unique identifier for the tracer provider Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[*sdktrace.TracerProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*sdktrace.TracerProvider, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(log), nil
		},
	})
}
