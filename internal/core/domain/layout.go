package domain

import "path"

const (
	// DefaultEnginefileName is the manifest filename used when the request does not override it.
	DefaultEnginefileName = "Enginefile"

	// DefaultBaseImage is the base image used when the manifest declares none.
	DefaultBaseImage = "provbase"

	// DescriptorFileName is the name of the generated container build descriptor.
	DescriptorFileName = "Dockerfile"

	// ComponentsDirName is the directory holding the component source trees.
	ComponentsDirName = "components"

	// ComponentBuildFile is the build-system project file of a buildable component,
	// relative to the component directory.
	ComponentBuildFile = "src/CMakeLists.txt"

	// EngineDir is the working directory of the engine inside the image.
	EngineDir = "/engine"

	// StagingDirPattern is the os.MkdirTemp pattern for staging directories.
	StagingDirPattern = "engine-"

	// ArtifactContentType is the content type of the stored engine package.
	ArtifactContentType = "application/tar"

	// StatusCompleted is the metadata status of a finished build.
	StatusCompleted = "completed"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	keyPrefix = "engine"
)

// ArtifactKey returns the blob store key of the engine package of a build.
func ArtifactKey(id BuildID) string {
	return path.Join(keyPrefix, id.String()+".tgz")
}

// MetadataKey returns the metadata store key of a build.
func MetadataKey(id BuildID) string {
	return path.Join(keyPrefix, id.String())
}
