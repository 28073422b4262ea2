package ports

import (
	"context"

	"github.com/TopPano/providence-engine/internal/core/domain"
)

// ArtifactStore persists the original engine package.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Save uploads pkg under the build's artifact key.
	Save(ctx context.Context, id domain.BuildID, pkg []byte) (domain.Artifact, error)
}

// MetadataStore records build completion in the distributed metadata store.
type MetadataStore interface {
	// Put writes the record under the build's metadata key.
	Put(ctx context.Context, id domain.BuildID, md domain.Metadata) error

	// Get reads the record of a build. It returns domain.ErrMetadataNotFound
	// when no record exists.
	Get(ctx context.Context, id domain.BuildID) (domain.Metadata, error)
}
