// Package app implements the stacctl commands.
package app

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the stacctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "stacctl",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "STAC Index administration tool",
		Long: `stacctl manages the STAC Index database schema and checks STAC documents
the same way the API server does.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().String("config", "", "Path to a JSON configuration file (defaults to $STACINDEX_CONFIG)")

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newProxyCmd())
	return root
}
