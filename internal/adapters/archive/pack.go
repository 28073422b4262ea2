package archive

import (
	"archive/tar"
	"io"
	"io/fs"
	"os"

	"github.com/klauspost/compress/gzip"
	"go.trai.ch/zerr"
)

// PackContext streams dir as an uncompressed tar archive rooted at ".".
// The returned reader must be closed; closing it early aborts the walk.
func PackContext(dir string) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		tw := tar.NewWriter(pw)
		err := writeDirToTar(tw, dir, walker{})
		if cerr := tw.Close(); err == nil {
			err = cerr
		}
		_ = pw.CloseWithError(err)
	}()
	return pr
}

// Pack writes dir to w as a gzip-compressed tar archive, the format Unpack
// reads. Version control directories are left out.
func Pack(w io.Writer, dir string) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	if err := writeDirToTar(tw, dir, walker{ignores: vcsDirs}); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return zerr.Wrap(err, "failed to close tar stream")
	}
	if err := gz.Close(); err != nil {
		return zerr.Wrap(err, "failed to close gzip stream")
	}
	return nil
}

func writeDirToTar(tw *tar.Writer, dir string, w walker) error {
	for e, err := range w.entries(dir) {
		if err != nil {
			return err
		}
		if err := writeTarEntry(tw, e.path, e.name, e.d); err != nil {
			return err
		}
	}
	return nil
}

func writeTarEntry(tw *tar.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	var link string
	if info.Mode()&os.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return err
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	header.Name = name
	if info.IsDir() {
		header.Name += "/"
	}

	if err := tw.WriteHeader(header); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write tar header"), "path", name)
	}

	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(path) //nolint:gosec // path comes from walking dir
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = io.Copy(tw, f)
	return err
}
