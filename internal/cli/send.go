package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ivsremote/internal/app"
)

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send [command]",
		Short: "Send one command and print the reply",
		Long: `Performs a single request/reply exchange with the remote command
server. Without an argument the configured default command ("Swing") is sent.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := cfg.ClientConf.Command
			if len(args) == 1 {
				command = args[0]
			}

			// An interrupt must be able to break the blocking receive.
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := app.New(cfg, cmd.OutOrStdout())
			_, err := runner.Run(ctx, command)
			return err
		},
	}
}
