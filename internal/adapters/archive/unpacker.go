// Package archive extracts engine packages into staging directories and
// packs directories back into tar streams for the container engine.
package archive

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/klauspost/compress/gzip"
	"go.trai.ch/zerr"
)

// Unpacker implements ports.Unpacker for gzip-compressed tar packages.
type Unpacker struct {
	// TempDir is the parent of staging directories. Empty uses os.TempDir.
	TempDir string
}

// NewUnpacker creates an Unpacker staging under the system temp directory.
func NewUnpacker() *Unpacker {
	return &Unpacker{}
}

// Unpack creates a fresh staging directory and extracts pkg into it.
// When extraction fails after the directory was created, its path is
// returned together with the error so the caller can remove it.
func (u *Unpacker) Unpack(ctx context.Context, pkg []byte) (string, error) {
	if len(pkg) == 0 {
		return "", domain.Tag(domain.ErrInvalidInput, zerr.New("engine package is empty"))
	}

	dir, err := os.MkdirTemp(u.TempDir, domain.StagingDirPattern)
	if err != nil {
		return "", domain.Tag(domain.ErrFilesystem, zerr.Wrap(err, "failed to create staging directory"))
	}

	if err := extract(ctx, bytes.NewReader(pkg), dir); err != nil {
		return dir, domain.Tag(domain.ErrExtractionFailed, err)
	}
	return dir, nil
}

// Remove deletes a staging directory. An empty path is a no-op.
func (u *Unpacker) Remove(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return domain.Tag(domain.ErrCleanup, zerr.With(zerr.Wrap(err, "failed to remove staging directory"), "dir", dir))
	}
	return nil
}

func extract(ctx context.Context, r io.Reader, dest string) error {
	root, err := os.OpenRoot(dest)
	if err != nil {
		return zerr.Wrap(err, "failed to open staging directory")
	}
	defer func() { _ = root.Close() }()

	gz, err := gzip.NewReader(r)
	if err != nil {
		return zerr.Wrap(err, "failed to open gzip stream")
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.Wrap(err, "failed to read tar entry")
		}

		if err := extractEntry(tr, hdr, root); err != nil {
			return zerr.With(err, "entry", hdr.Name)
		}
	}
}

// extractEntry writes one entry through root. Every path is resolved by the
// root, including links created by earlier entries, so nothing lands outside.
func extractEntry(tr *tar.Reader, hdr *tar.Header, root *os.Root) error {
	name, skip, err := localName(hdr.Name)
	if err != nil || skip {
		return err
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		return root.MkdirAll(name, domain.DirPerm)
	case tar.TypeReg:
		return writeFile(tr, root, name, hdr)
	case tar.TypeSymlink:
		if err := checkLink(name, hdr.Linkname); err != nil {
			return err
		}
		if err := mkdirParent(root, name); err != nil {
			return err
		}
		if err := root.Symlink(hdr.Linkname, name); err != nil {
			return zerr.Wrap(err, "failed to create symlink")
		}
		return nil
	default:
		// Devices, fifos and hard links have no place in a build context.
		return nil
	}
}

func writeFile(tr *tar.Reader, root *os.Root, name string, hdr *tar.Header) error {
	if err := mkdirParent(root, name); err != nil {
		return err
	}

	mode := os.FileMode(hdr.Mode).Perm() //nolint:gosec // tar modes fit in 32 bits
	if mode == 0 {
		mode = domain.FilePerm
	}

	out, err := root.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return zerr.Wrap(err, "failed to create file")
	}

	if _, err := io.Copy(out, tr); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func mkdirParent(root *os.Root, name string) error {
	parent := filepath.Dir(name)
	if parent == "." {
		return nil
	}
	if err := root.MkdirAll(parent, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create parent directory")
	}
	return nil
}

// localName cleans an entry name into a path relative to the staging
// directory. skip reports the archive root entry.
func localName(name string) (clean string, skip bool, err error) {
	clean = filepath.Clean(filepath.FromSlash(strings.TrimSpace(name)))
	if clean == "." || clean == "" {
		return "", true, nil
	}
	if filepath.IsAbs(clean) {
		return "", false, zerr.New("absolute path in archive")
	}
	if !filepath.IsLocal(clean) {
		return "", false, zerr.New("path escapes staging directory")
	}
	return clean, false, nil
}

// checkLink rejects link targets that leave the staging directory as written.
// Targets reached through other links are confined when the root resolves them.
func checkLink(name, linkname string) error {
	if filepath.IsAbs(linkname) {
		return zerr.New("absolute symlink in archive")
	}
	if !filepath.IsLocal(filepath.Join(filepath.Dir(name), linkname)) {
		return zerr.New("symlink escapes staging directory")
	}
	return nil
}
