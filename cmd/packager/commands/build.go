package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Validate the release tree, build bundles and publish the feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := runOptions(cmd)
			if err != nil {
				return err
			}
			return c.app.Build(cmd.Context(), opts)
		},
	}
}
