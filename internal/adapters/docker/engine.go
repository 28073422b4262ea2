// Package docker builds and removes images through the Docker engine API.
package docker

import (
	"context"
	"errors"
	"io"

	"github.com/TopPano/providence-engine/internal/adapters/archive"
	"github.com/TopPano/providence-engine/internal/core/domain"
	docker "github.com/fsouza/go-dockerclient"
	"go.trai.ch/zerr"
)

// Client is the subset of the go-dockerclient API the engine uses.
type Client interface {
	BuildImage(opts docker.BuildImageOptions) error
	InspectImage(name string) (*docker.Image, error)
	RemoveImageExtended(name string, opts docker.RemoveImageOptions) error
}

// Engine implements ports.ImageEngine.
type Engine struct {
	client   Client
	registry string
}

// New creates an Engine that tags images for registry.
func New(client Client, registry string) *Engine {
	return &Engine{client: client, registry: registry}
}

// NewClient connects to the engine selected by cfg: the unix socket when
// set, then the host, then the DOCKER_* environment.
func NewClient(cfg domain.DockerConfig) (*docker.Client, error) {
	var (
		client *docker.Client
		err    error
	)
	switch {
	case cfg.SocketPath != "":
		client, err = docker.NewClient("unix://" + cfg.SocketPath)
	case cfg.Host != "":
		client, err = docker.NewClient(cfg.Host)
	default:
		client, err = docker.NewClientFromEnv()
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create docker client")
	}
	return client, nil
}

// Tag returns the image reference of a build.
func (e *Engine) Tag(id domain.BuildID) string {
	return e.registry + "/" + id.String()
}

// Build submits dir as the build context and relays every output chunk to
// progress as the engine emits it. It returns the image tag.
func (e *Engine) Build(ctx context.Context, dir string, id domain.BuildID, progress io.Writer) (string, error) {
	tag := e.Tag(id)

	buildContext := archive.PackContext(dir)
	defer func() { _ = buildContext.Close() }()

	if progress == nil {
		progress = io.Discard
	}

	err := e.client.BuildImage(docker.BuildImageOptions{
		Context:        ctx,
		Name:           tag,
		Dockerfile:     domain.DescriptorFileName,
		InputStream:    buildContext,
		OutputStream:   progress,
		RmTmpContainer: true,
	})
	if err != nil {
		return "", domain.Tag(domain.ErrBuildEngine, zerr.With(zerr.Wrap(err, "docker build failed"), "tag", tag))
	}
	return tag, nil
}

// RemoveIfPresent deletes the local image tag. An absent image is not an error.
func (e *Engine) RemoveIfPresent(ctx context.Context, tag string) error {
	if tag == "" {
		return nil
	}

	if _, err := e.client.InspectImage(tag); err != nil {
		if errors.Is(err, docker.ErrNoSuchImage) {
			return nil
		}
		return domain.Tag(domain.ErrCleanup, zerr.With(zerr.Wrap(err, "failed to inspect image"), "tag", tag))
	}

	if err := e.client.RemoveImageExtended(tag, docker.RemoveImageOptions{Context: ctx}); err != nil {
		if errors.Is(err, docker.ErrNoSuchImage) {
			return nil
		}
		return domain.Tag(domain.ErrCleanup, zerr.With(zerr.Wrap(err, "failed to remove image"), "tag", tag))
	}
	return nil
}
