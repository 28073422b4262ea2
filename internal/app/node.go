package app

import (
	"context"
	"io"

	"github.com/TopPano/providence-engine/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"github.com/TopPano/providence-engine/internal/adapters/etcd"      //nolint:depguard // Wired in app layer
	"github.com/TopPano/providence-engine/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/TopPano/providence-engine/internal/adapters/nats"      //nolint:depguard // Wired in app layer
	"github.com/TopPano/providence-engine/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/TopPano/providence-engine/internal/engine/pipeline"
	"github.com/TopPano/providence-engine/internal/engine/router"
	"github.com/grindlemire/graft"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// WorkerNodeID is the unique identifier for the Worker Graft node.
	WorkerNodeID graft.ID = "app.worker"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pipeline.NodeID,
			etcd.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Worker]{
		ID:        WorkerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pipeline.NodeID,
			router.NodeID,
			nats.NodeID,
			etcd.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runWorkerNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	orch, err := graft.Dep[*pipeline.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}
	metadata, err := graft.Dep[ports.MetadataStore](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	provider, err := graft.Dep[*sdktrace.TracerProvider](ctx)
	if err != nil {
		return nil, err
	}

	return New(orch, metadata, log, closerOf(metadata), shutdownOf(provider)), nil
}

func runWorkerNode(ctx context.Context) (*Worker, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}
	orch, err := graft.Dep[*pipeline.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}
	r, err := graft.Dep[*router.Router](ctx)
	if err != nil {
		return nil, err
	}
	bus, err := graft.Dep[ports.Bus](ctx)
	if err != nil {
		return nil, err
	}
	metadata, err := graft.Dep[ports.MetadataStore](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	provider, err := graft.Dep[*sdktrace.TracerProvider](ctx)
	if err != nil {
		return nil, err
	}

	handler := NewBuildHandler(orch, bus, log)
	return NewWorker(cfg, r, handler, log, closerOf(bus), closerOf(metadata), shutdownOf(provider)), nil
}

func closerOf(v any) func() error {
	return func() error {
		if c, ok := v.(io.Closer); ok {
			return c.Close()
		}
		return nil
	}
}

func shutdownOf(provider *sdktrace.TracerProvider) func() error {
	return func() error {
		return provider.Shutdown(context.Background())
	}
}
