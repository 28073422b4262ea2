package pipeline

import (
	"context"

	"github.com/TopPano/providence-engine/internal/adapters/archive"    //nolint:depguard // Wired in engine wiring
	"github.com/TopPano/providence-engine/internal/adapters/descriptor" //nolint:depguard // Wired in engine wiring
	"github.com/TopPano/providence-engine/internal/adapters/docker"     //nolint:depguard // Wired in engine wiring
	"github.com/TopPano/providence-engine/internal/adapters/etcd"       //nolint:depguard // Wired in engine wiring
	"github.com/TopPano/providence-engine/internal/adapters/logger"     //nolint:depguard // Wired in engine wiring
	"github.com/TopPano/providence-engine/internal/adapters/registry"   //nolint:depguard // Wired in engine wiring
	"github.com/TopPano/providence-engine/internal/adapters/s3"         //nolint:depguard // Wired in engine wiring
	"github.com/TopPano/providence-engine/internal/adapters/telemetry"  //nolint:depguard // Wired in engine wiring
	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/grindlemire/graft"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			archive.NodeID,
			descriptor.NodeID,
			docker.NodeID,
			registry.NodeID,
			s3.NodeID,
			etcd.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runNode,
	})
}

func runNode(ctx context.Context) (*Orchestrator, error) {
	unpacker, err := graft.Dep[ports.Unpacker](ctx)
	if err != nil {
		return nil, err
	}
	gen, err := graft.Dep[ports.DescriptorGenerator](ctx)
	if err != nil {
		return nil, err
	}
	images, err := graft.Dep[ports.ImageEngine](ctx)
	if err != nil {
		return nil, err
	}
	publisher, err := graft.Dep[ports.RegistryPublisher](ctx)
	if err != nil {
		return nil, err
	}
	artifacts, err := graft.Dep[ports.ArtifactStore](ctx)
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

	return New(Dependencies{
		Unpacker:   unpacker,
		Descriptor: gen,
		Images:     images,
		Registry:   publisher,
		Artifacts:  artifacts,
		Metadata:   metadata,
		Logger:     log,
		Tracer:     telemetry.Tracer(provider),
	}), nil
}
