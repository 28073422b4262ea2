// Package pipeline runs an engine build through its stages and reports
// progress as a stream of events.
package pipeline

import (
	"context"
	"errors"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/zerr"
)

const (
	tracerName = "github.com/TopPano/providence-engine/internal/engine/pipeline"
	buildIDKey = attribute.Key("build.id")

	// DefaultEventBuffer is the capacity of a build's event channel.
	DefaultEventBuffer = 64
)

// Dependencies are the capabilities a build uses.
type Dependencies struct {
	Unpacker   ports.Unpacker
	Descriptor ports.DescriptorGenerator
	Images     ports.ImageEngine
	Registry   ports.RegistryPublisher
	Artifacts  ports.ArtifactStore
	Metadata   ports.MetadataStore
	Logger     ports.Logger

	// Tracer records one span per stage. Nil uses the global provider.
	Tracer trace.Tracer
	// NewID generates build identifiers. Nil uses domain.NewBuildID.
	NewID func() (domain.BuildID, error)
	// EventBuffer is the event channel capacity. Zero uses DefaultEventBuffer.
	EventBuffer int
}

// Orchestrator starts builds.
type Orchestrator struct {
	deps Dependencies
}

// New creates an Orchestrator.
func New(deps Dependencies) *Orchestrator {
	if deps.Tracer == nil {
		deps.Tracer = otel.Tracer(tracerName)
	}
	if deps.NewID == nil {
		deps.NewID = domain.NewBuildID
	}
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	if deps.EventBuffer <= 0 {
		deps.EventBuffer = DefaultEventBuffer
	}
	return &Orchestrator{deps: deps}
}

// Start launches a build of req in the background.
//
// The returned Build delivers its events in order and closes the channel
// after the terminal event. Events must be drained: once the buffer is full
// the build waits for the reader.
func (o *Orchestrator) Start(ctx context.Context, req domain.BuildRequest) *Build {
	id, idErr := o.deps.NewID()
	b := newBuild(id, o.deps.EventBuffer)
	go o.run(ctx, b, req, idErr)
	return b
}

// state is what the forward stages leave behind for cleanup.
type state struct {
	dir          string
	tag          string
	reachedImage bool
}

func (o *Orchestrator) run(ctx context.Context, b *Build, req domain.BuildRequest, idErr error) {
	log := o.deps.Logger.With("build_id", b.id.String())

	ctx, span := o.deps.Tracer.Start(ctx, "build", trace.WithAttributes(buildIDKey.String(b.id.String())))

	var (
		st  state
		err error
	)
	if idErr != nil {
		err = idErr
	} else {
		err = o.forward(ctx, b, req, &st, log)
	}

	cleanupErr := o.cleanup(context.WithoutCancel(ctx), b, &st, log)
	switch {
	case err != nil && cleanupErr != nil:
		// The pipeline error is what callers see.
		log.Error(cleanupErr)
	case cleanupErr != nil:
		err = cleanupErr
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.KindOf(err))
		span.End()
		log.Error(err)
		b.finish(domain.StageFailed, err)
		return
	}

	span.End()
	log.Info("built engine instance successfully")
	b.finish(domain.StageCompleted, nil)
}

// forward runs the stages in order and stops at the first failure.
func (o *Orchestrator) forward(ctx context.Context, b *Build, req domain.BuildRequest, st *state, log ports.Logger) error {
	progress := &progressWriter{build: b}
	var artifact domain.Artifact

	stages := []struct {
		stage domain.Stage
		msg   string
		run   func(ctx context.Context) error
	}{
		{domain.StageUnpacking, "unpacking the engine package", func(ctx context.Context) error {
			dir, err := o.deps.Unpacker.Unpack(ctx, req.EnginePackage)
			st.dir = dir
			return err
		}},
		{domain.StageGenerating, "generating engine Dockerfile", func(_ context.Context) error {
			_, err := o.deps.Descriptor.Generate(st.dir, req.Options)
			return err
		}},
		{domain.StageImageBuilding, "building docker image for the engine", func(ctx context.Context) error {
			st.reachedImage = true
			st.tag = o.deps.Images.Tag(b.id)
			tag, err := o.deps.Images.Build(ctx, st.dir, b.id, progress)
			if tag != "" {
				st.tag = tag
			}
			return err
		}},
		{domain.StagePublishing, "pushing docker image to the registry", func(ctx context.Context) error {
			return o.deps.Registry.Push(ctx, st.tag, progress)
		}},
		{domain.StagePersistingArtifact, "saving engine package", func(ctx context.Context) error {
			a, err := o.deps.Artifacts.Save(ctx, b.id, req.EnginePackage)
			if err != nil {
				return err
			}
			artifact = a
			return nil
		}},
		{domain.StagePersistingMetadata, "saving engine instance metadata", func(ctx context.Context) error {
			return o.deps.Metadata.Put(ctx, b.id, domain.Metadata{
				Status:   domain.StatusCompleted,
				BlobKey:  artifact.Key,
				BlobEtag: artifact.Etag,
			})
		}},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return domain.Tag(err, zerr.With(zerr.New("build canceled"), "stage", s.stage.String()))
		}

		b.enter(s.stage)
		log.Info(s.msg)

		if err := o.runStage(ctx, b.id, s.stage, s.run); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return errors.Join(ctxErr, err)
			}
			return err
		}
	}
	return nil
}

func (o *Orchestrator) runStage(ctx context.Context, id domain.BuildID, stage domain.Stage, run func(context.Context) error) error {
	ctx, span := o.deps.Tracer.Start(ctx, stage.String(), trace.WithAttributes(buildIDKey.String(id.String())))
	defer span.End()

	if err := run(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.KindOf(err))
		return err
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string)               {}
func (nopLogger) Warn(string)               {}
func (nopLogger) Error(error)               {}
func (l nopLogger) With(...any) ports.Logger { return l }
