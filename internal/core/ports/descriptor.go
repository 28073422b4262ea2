package ports

import "github.com/TopPano/providence-engine/internal/core/domain"

// DescriptorGenerator derives the container build descriptor from the manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=descriptor.go -destination=mocks/mock_descriptor.go -package=mocks
type DescriptorGenerator interface {
	// Generate parses the manifest in dir, writes the descriptor into dir and
	// returns its text.
	Generate(dir string, opts domain.BuildOptions) (string, error)
}
