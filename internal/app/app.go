// Package app implements the application layer of the engine build worker.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"go.trai.ch/zerr"
)

// App runs builds outside the message bus and reads their records.
type App struct {
	builds   Starter
	metadata ports.MetadataStore
	logger   ports.Logger
	closers  []func() error
}

// New creates an App. closers run on Close.
func New(builds Starter, metadata ports.MetadataStore, logger ports.Logger, closers ...func() error) *App {
	return &App{
		builds:   builds,
		metadata: metadata,
		logger:   logger,
		closers:  closers,
	}
}

// BuildLocal builds the engine package at path and writes every progress
// chunk to out as it arrives. The build id is returned even when the build fails.
func (a *App) BuildLocal(ctx context.Context, path string, opts domain.BuildOptions, out io.Writer) (domain.BuildID, error) {
	pkg, err := os.ReadFile(path)
	if err != nil {
		return "", domain.Tag(domain.ErrInvalidInput, zerr.With(zerr.Wrap(err, "failed to read engine package"), "path", path))
	}

	b := a.builds.Start(ctx, domain.BuildRequest{EnginePackage: pkg, Options: opts})
	a.logger.With("build_id", b.ID().String()).Info("build started")

	for ev := range b.Events() {
		if ev.Kind != domain.EventMessage {
			continue
		}
		if _, err := out.Write(ev.Data); err != nil {
			a.logger.Error(zerr.Wrap(err, "failed to write build output"))
		}
	}
	return b.ID(), b.Wait()
}

// Inspect returns the completion record of the build named by id.
func (a *App) Inspect(ctx context.Context, id string) (domain.Metadata, error) {
	buildID, err := domain.ParseBuildID(id)
	if err != nil {
		return domain.Metadata{}, domain.Tag(domain.ErrInvalidInput, err)
	}
	return a.metadata.Get(ctx, buildID)
}

// Close releases the connections held by the App.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
