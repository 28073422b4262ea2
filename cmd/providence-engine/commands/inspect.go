package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <build-id>",
		Short: "Print the metadata record of a build",
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

			md, err := a.Inspect(ctx, args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(md)
		},
	}
}
