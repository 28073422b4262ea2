package ports

import (
	"context"
	"io"

	"github.com/TopPano/providence-engine/internal/core/domain"
)

// ImageBuilder runs the container build engine against a staging directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=image.go -destination=mocks/mock_image.go -package=mocks
type ImageBuilder interface {
	// Tag returns the tag the image of the given build is assigned.
	Tag(id domain.BuildID) string

	// Build submits dir as the build context and returns the image tag.
	// Every progress chunk emitted by the engine is written to progress as
	// soon as it arrives.
	Build(ctx context.Context, dir string, id domain.BuildID, progress io.Writer) (string, error)
}

// ImageRemover deletes local images.
type ImageRemover interface {
	// RemoveIfPresent deletes the image with the given tag. An image that does
	// not exist is treated as already removed.
	RemoveIfPresent(ctx context.Context, tag string) error
}

// ImageEngine is the local container engine used by a build.
type ImageEngine interface {
	ImageBuilder
	ImageRemover
}

// RegistryPublisher pushes images to the remote registry.
type RegistryPublisher interface {
	// Push publishes the image, writing push progress to progress in the order
	// it is produced.
	Push(ctx context.Context, tag string, progress io.Writer) error
}
