package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/hdkit/internal/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return GetCmdContext(cmd).Fmt.Print(version.Get())
		},
	}
}
