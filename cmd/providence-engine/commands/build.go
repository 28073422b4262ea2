package commands

import (
	"fmt"
	"os"

	"github.com/TopPano/providence-engine/internal/adapters/archive"
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <package.tgz|dir>",
		Short: "Build a local engine package",
		Long:  "Build a local engine package. A directory is packed into a package first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := configContext(cmd)
			a, err := c.provider.App(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := a.Close(); err == nil {
					err = closeErr
				}
			}()

			pkg, remove, err := packageFile(args[0])
			if err != nil {
				return err
			}
			defer remove()

			enginefile, _ := cmd.Flags().GetString("enginefile")
			out := cmd.OutOrStdout()

			id, err := a.BuildLocal(ctx, pkg, domain.BuildOptions{EnginefileName: enginefile}, out)
			if err != nil {
				if id != "" {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "build %s failed\n", id)
				}
				return err
			}
			_, _ = fmt.Fprintf(out, "built engine %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringP("enginefile", "f", "", "Manifest filename inside the package (default "+domain.DefaultEnginefileName+")")
	return cmd
}

// packageFile returns the package to build for path. A directory is packed
// into a temporary tgz that remove deletes; other paths are used as they are.
func packageFile(path string) (pkg string, remove func(), err error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		// BuildLocal reports unreadable packages.
		return path, func() {}, nil
	}

	f, err := os.CreateTemp("", "engine-package-*.tgz")
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to create package file")
	}
	remove = func() { _ = os.Remove(f.Name()) }

	if err := archive.Pack(f, path); err != nil {
		_ = f.Close()
		remove()
		return "", nil, zerr.With(zerr.Wrap(err, "failed to pack directory"), "dir", path)
	}
	if err := f.Close(); err != nil {
		remove()
		return "", nil, zerr.Wrap(err, "failed to write package file")
	}
	return f.Name(), remove, nil
}
