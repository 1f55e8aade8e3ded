package cmd

import (
	"github.com/spf13/cobra"

	"shireesh.com/cutter/internal/output"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of cutter",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			output.Println(Version)
		},
	}
}
