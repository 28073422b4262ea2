package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"go.opentelemetry.io/otel/trace"
)

// cleanup removes the staging directory and the local image concurrently.
// Both compensations always run to completion. ctx must not be canceled
// by the build's caller.
func (o *Orchestrator) cleanup(ctx context.Context, b *Build, st *state, log ports.Logger) error {
	b.enter(domain.StageCleaningUp)
	log.Info("cleaning up")

	ctx, span := o.deps.Tracer.Start(ctx, domain.StageCleaningUp.String(), trace.WithAttributes(buildIDKey.String(b.id.String())))
	defer span.End()

	var (
		wg             sync.WaitGroup
		dirErr, imgErr error
	)
	if st.dir != "" {
		wg.Go(func() {
			dirErr = o.deps.Unpacker.Remove(st.dir)
		})
	}
	if st.reachedImage {
		wg.Go(func() {
			imgErr = o.deps.Images.RemoveIfPresent(ctx, st.tag)
		})
	}
	wg.Wait()

	if err := errors.Join(dirErr, imgErr); err != nil {
		span.RecordError(err)
		return domain.Tag(domain.ErrCleanup, err)
	}
	return nil
}
