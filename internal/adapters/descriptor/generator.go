// Package descriptor turns an unpacked engine package into a container
// build descriptor.
package descriptor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"go.trai.ch/zerr"
)

// Generator implements ports.DescriptorGenerator.
type Generator struct{}

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate reads the Enginefile in dir, writes dir/Dockerfile and returns its text.
// Both files are accessed through an os.Root, so links in the package cannot
// point them outside dir.
func (g *Generator) Generate(dir string, opts domain.BuildOptions) (string, error) {
	name := opts.Enginefile()
	if !filepath.IsLocal(name) {
		return "", domain.Tag(domain.ErrInvalidInput, zerr.With(zerr.New("enginefile name must be a local path"), "enginefile", name))
	}

	root, err := openRoot(dir)
	if err != nil {
		return "", err
	}
	defer func() { _ = root.Close() }()

	data, err := root.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.Tag(domain.ErrManifestNotFound, zerr.With(zerr.Wrap(err, "failed to read enginefile"), "enginefile", name))
		}
		return "", domain.Tag(domain.ErrFilesystem, zerr.With(zerr.Wrap(err, "failed to read enginefile"), "enginefile", name))
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return "", err
	}

	text, err := render(root, manifest)
	if err != nil {
		return "", err
	}

	if err := root.WriteFile(domain.DescriptorFileName, []byte(text), domain.FilePerm); err != nil {
		target := filepath.Join(dir, domain.DescriptorFileName)
		return "", domain.Tag(domain.ErrFilesystem, zerr.With(zerr.Wrap(err, "failed to write descriptor"), "path", target))
	}
	return text, nil
}

func openRoot(dir string) (*os.Root, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, domain.Tag(domain.ErrFilesystem, zerr.With(zerr.Wrap(err, "failed to open package directory"), "dir", dir))
	}
	return root, nil
}

// render produces the descriptor text for manifest. Components without a
// build file in root are skipped.
func render(root *os.Root, manifest *domain.Manifest) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "FROM %s\n\n", manifest.BaseImage())
	fmt.Fprintf(&b, "RUN mkdir %s\n", domain.EngineDir)
	b.WriteString("ADD . engine\n")
	fmt.Fprintf(&b, "WORKDIR %s\n\n", domain.EngineDir)

	for _, c := range manifest.Buildable() {
		ok, err := hasBuildFile(root, c.Name)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}

		buildDir := fmt.Sprintf("%s/%s/%s/build", domain.EngineDir, domain.ComponentsDirName, c.Name)
		fmt.Fprintf(&b, "RUN mkdir %s\n", buildDir)
		fmt.Fprintf(&b, "RUN cd %s && \\\n", buildDir)
		b.WriteString("    cmake ../src && \\\n")
		b.WriteString("    make\n\n")
	}
	return b.String(), nil
}

func hasBuildFile(root *os.Root, component string) (bool, error) {
	path := filepath.Join(domain.ComponentsDirName, component, filepath.FromSlash(domain.ComponentBuildFile))
	if _, err := root.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, domain.Tag(domain.ErrFilesystem, zerr.With(zerr.Wrap(err, "failed to stat build file"), "component", component))
	}
	return true, nil
}
