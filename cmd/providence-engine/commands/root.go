// Package commands implements the CLI commands of the engine build worker.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/TopPano/providence-engine/internal/adapters/config" //nolint:depguard // Config path is CLI input
	"github.com/TopPano/providence-engine/internal/build"
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/spf13/cobra"
)

// Application is the local build and inspection surface.
type Application interface {
	BuildLocal(ctx context.Context, path string, opts domain.BuildOptions, out io.Writer) (domain.BuildID, error)
	Inspect(ctx context.Context, id string) (domain.Metadata, error)
	Close() error
}

// WorkerRunner serves build requests from the message bus until ctx ends.
type WorkerRunner interface {
	Run(ctx context.Context) error
}

// Provider resolves application components once the config path is known.
type Provider interface {
	App(ctx context.Context) (Application, error)
	Worker(ctx context.Context) (WorkerRunner, error)
}

// CLI represents the command line interface of the worker.
type CLI struct {
	provider Provider
	rootCmd  *cobra.Command
}

// New creates a new CLI instance resolving components through p.
func New(p Provider) *CLI {
	rootCmd := &cobra.Command{
		Use:           "providence-engine",
		Short:         "Builds engine packages into container images",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (default: "+config.DefaultPath()+")")

	c := &CLI{
		provider: p,
		rootCmd:  rootCmd,
	}

	rootCmd.AddCommand(c.newWorkerCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newInspectCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// configContext carries the --config value to the component nodes.
func configContext(cmd *cobra.Command) context.Context {
	path, _ := cmd.Flags().GetString("config")
	return config.WithPath(cmd.Context(), path)
}
