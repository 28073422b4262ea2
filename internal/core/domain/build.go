// Package domain contains the core domain models of the engine build pipeline.
package domain

import (
	"crypto/rand"
	"math/big"

	"go.trai.ch/zerr"
)

const (
	// BuildIDLength is the number of characters in a build identifier.
	BuildIDLength = 10

	buildIDAlphabet = "abcdefghijklmnopqrstuvwxyz"
)

// BuildID identifies a single build. It is used as the image tag suffix,
// the registry path segment and the metadata store key.
type BuildID string

// NewBuildID returns a random lowercase alphabetic identifier of BuildIDLength characters.
func NewBuildID() (BuildID, error) {
	buf := make([]byte, BuildIDLength)
	limit := big.NewInt(int64(len(buildIDAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", zerr.Wrap(err, "failed to generate build id")
		}
		buf[i] = buildIDAlphabet[n.Int64()]
	}
	return BuildID(buf), nil
}

// ParseBuildID validates s and returns it as a BuildID.
func ParseBuildID(s string) (BuildID, error) {
	if len(s) != BuildIDLength {
		return "", zerr.With(ErrInvalidBuildID, "build_id", s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return "", zerr.With(ErrInvalidBuildID, "build_id", s)
		}
	}
	return BuildID(s), nil
}

// String returns the identifier as a string.
func (id BuildID) String() string {
	return string(id)
}

// BuildOptions holds the recognized per-request build options.
type BuildOptions struct {
	EnginefileName string `json:"enginefileName,omitempty"`
}

// Enginefile returns the manifest filename, falling back to DefaultEnginefileName.
func (o BuildOptions) Enginefile() string {
	if o.EnginefileName == "" {
		return DefaultEnginefileName
	}
	return o.EnginefileName
}

// BuildRequest is the input of a single build. It must not be mutated once accepted.
type BuildRequest struct {
	EnginePackage []byte
	Options       BuildOptions
}

// Stage is a state of the build pipeline.
type Stage int

const (
	// StageCreated is the initial state before any work has been done.
	StageCreated Stage = iota
	// StageUnpacking extracts the engine package into the staging directory.
	StageUnpacking
	// StageGenerating derives the build descriptor from the manifest.
	StageGenerating
	// StageImageBuilding runs the container build engine.
	StageImageBuilding
	// StagePublishing pushes the image to the registry.
	StagePublishing
	// StagePersistingArtifact uploads the engine package to the blob store.
	StagePersistingArtifact
	// StagePersistingMetadata writes the completion record.
	StagePersistingMetadata
	// StageCleaningUp removes the staging directory and the local image.
	StageCleaningUp
	// StageCompleted is the terminal success state.
	StageCompleted
	// StageFailed is the terminal failure state.
	StageFailed
)

var stageNames = [...]string{
	StageCreated:            "Created",
	StageUnpacking:          "Unpacking",
	StageGenerating:         "Generating",
	StageImageBuilding:      "ImageBuilding",
	StagePublishing:         "Publishing",
	StagePersistingArtifact: "PersistingArtifact",
	StagePersistingMetadata: "PersistingMetadata",
	StageCleaningUp:         "CleaningUp",
	StageCompleted:          "Completed",
	StageFailed:             "Failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "Unknown"
	}
	return stageNames[s]
}
