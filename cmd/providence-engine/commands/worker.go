package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Serve build requests from the message bus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := configContext(cmd)
			w, err := c.provider.Worker(ctx)
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}
}
