package ports

import "context"

// Unpacker materializes an engine package on the local filesystem.
//
//go:generate go run go.uber.org/mock/mockgen -source=unpacker.go -destination=mocks/mock_unpacker.go -package=mocks
type Unpacker interface {
	// Unpack decompresses and extracts pkg into a fresh staging directory and
	// returns its absolute path.
	//
	// When extraction fails after the directory was created, the path is
	// returned together with the error so the caller can still remove it.
	Unpack(ctx context.Context, pkg []byte) (string, error)

	// Remove deletes a staging directory recursively. An empty dir is a no-op.
	Remove(dir string) error
}
