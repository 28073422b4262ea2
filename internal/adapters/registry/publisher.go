// Package registry pushes built images with the docker CLI.
package registry

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/creack/pty"
	"go.trai.ch/zerr"
)

// Publisher implements ports.RegistryPublisher by running "<cli> push <tag>".
// The command runs under a pseudo-terminal so the CLI reports layer progress.
type Publisher struct {
	cli string
}

// NewPublisher creates a Publisher invoking cli. Empty selects "docker".
func NewPublisher(cli string) *Publisher {
	if cli == "" {
		cli = domain.DefaultDockerCLI
	}
	return &Publisher{cli: cli}
}

// Push uploads tag to its registry, relaying the CLI output to progress in order.
func (p *Publisher) Push(ctx context.Context, tag string, progress io.Writer) error {
	if tag == "" {
		return domain.Tag(domain.ErrPublishFailed, zerr.New("image tag is empty"))
	}
	if progress == nil {
		progress = io.Discard
	}

	cmd := exec.CommandContext(ctx, p.cli, "push", tag) //nolint:gosec // cli comes from operator configuration

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return domain.Tag(domain.ErrPublishFailed, zerr.With(zerr.Wrap(err, "failed to start push"), "cli", p.cli))
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// The pty reports EIO once the child exits; that ends the copy.
		_, _ = io.Copy(progress, ptmx)
	}()

	waitErr := cmd.Wait()
	<-ioDone
	_ = ptmx.Close()

	if waitErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return domain.Tag(domain.ErrPublishFailed, zerr.With(zerr.With(zerr.Wrap(waitErr, "docker push failed"), "tag", tag), "exit_code", exitCode))
	}
	return nil
}
