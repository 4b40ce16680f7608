package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridable at build time with -ldflags "-X ivsremote/internal/cli.Version=...".
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rcmd version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rcmd %s\n", Version)
		},
	}
}
