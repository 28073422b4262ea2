package domain

import (
	"context"
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidInput is returned when a build request is malformed, e.g. an empty engine package.
	ErrInvalidInput = zerr.New("invalid input")

	// ErrExtractionFailed is returned when the engine package cannot be decompressed or extracted.
	ErrExtractionFailed = zerr.New("failed to extract engine package")

	// ErrManifestNotFound is returned when the Enginefile is missing from the staging directory.
	ErrManifestNotFound = zerr.New("enginefile not found")

	// ErrManifestParse is returned when the Enginefile exists but cannot be parsed.
	ErrManifestParse = zerr.New("failed to parse enginefile")

	// ErrChainCycle is returned when the forward_to relation of the manifest loops back on itself.
	ErrChainCycle = zerr.New("cycle detected in component chain")

	// ErrFilesystem is returned when a filesystem operation on the staging directory fails.
	ErrFilesystem = zerr.New("filesystem operation failed")

	// ErrBuildEngine is returned when the container engine rejects a build or the build stream fails.
	ErrBuildEngine = zerr.New("image build failed")

	// ErrPublishFailed is returned when pushing the image to the registry exits unsuccessfully.
	ErrPublishFailed = zerr.New("failed to push image to registry")

	// ErrStorage is returned when the engine package cannot be uploaded to the blob store.
	ErrStorage = zerr.New("failed to save engine package")

	// ErrMetadataStore is returned when the metadata record cannot be written or read.
	ErrMetadataStore = zerr.New("failed to access engine metadata")

	// ErrMetadataNotFound is returned when no metadata record exists for a build.
	ErrMetadataNotFound = zerr.New("engine metadata not found")

	// ErrCleanup is returned when removing the staging directory or the local image fails.
	ErrCleanup = zerr.New("cleanup failed")

	// ErrInvalidBuildID is returned when a string is not a well-formed build identifier.
	ErrInvalidBuildID = zerr.New("invalid build id")

	// ErrConfigRead is returned when the configuration file cannot be read.
	ErrConfigRead = zerr.New("failed to read config file")

	// ErrConfigParse is returned when the configuration file cannot be parsed.
	ErrConfigParse = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a required configuration value is missing.
	ErrConfigInvalid = zerr.New("invalid configuration")
)

// Tag marks err as belonging to kind so that errors.Is(err, kind) reports true
// no matter how the cause was wrapped.
func Tag(kind, err error) error {
	if err == nil {
		return kind
	}
	return errors.Join(kind, err)
}

// kinds maps the error taxonomy to the names reported to message consumers.
// Order matters: more specific kinds come first.
var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidInput, "InvalidInput"},
	{ErrExtractionFailed, "ExtractionFailed"},
	{ErrManifestNotFound, "ManifestNotFound"},
	{ErrManifestParse, "ManifestParseError"},
	{ErrFilesystem, "Filesystem"},
	{ErrBuildEngine, "BuildEngineError"},
	{ErrPublishFailed, "PublishFailed"},
	{ErrStorage, "StorageError"},
	{ErrMetadataStore, "MetadataStoreError"},
	{ErrCleanup, "CleanupError"},
}

// KindOf returns the taxonomy name of err, or "Unknown" when err carries
// none of the known kinds. Context cancellation anywhere in the chain wins
// and is reported as "Canceled".
func KindOf(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "Canceled"
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Unknown"
}
