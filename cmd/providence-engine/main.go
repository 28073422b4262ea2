// Package main is the entry point of the engine build worker.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/TopPano/providence-engine/cmd/providence-engine/commands"
	"github.com/TopPano/providence-engine/internal/adapters/logger"
	"github.com/TopPano/providence-engine/internal/app"
	_ "github.com/TopPano/providence-engine/internal/wiring"
	"github.com/grindlemire/graft"
)

// graftProvider resolves components from the registered Graft nodes.
type graftProvider struct{}

func (graftProvider) App(ctx context.Context) (commands.Application, error) {
	a, _, err := graft.ExecuteFor[*app.App](ctx)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (graftProvider) Worker(ctx context.Context) (commands.WorkerRunner, error) {
	w, _, err := graft.ExecuteFor[*app.Worker](ctx)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, graftProvider{}))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, provider commands.Provider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli := commands.New(provider)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		logger.NewWithOutput(stderr).Error(err)
		return 1
	}
	return 0
}
