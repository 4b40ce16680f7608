package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"ivsremote/internal/rcmd"
	"ivsremote/internal/shared/logger"
	"ivsremote/internal/shared/types"
)

// Runner wires configuration, client and output for one command exchange.
// The three human-readable protocol lines go to out (stdout in the CLI);
// diagnostics are structured log events.
type Runner struct {
	cfg *types.Config
	out io.Writer
}

// New creates a Runner writing its protocol lines to out.
func New(cfg *types.Config, out io.Writer) *Runner {
	return &Runner{cfg: cfg, out: out}
}

// Run performs one request/reply exchange with the configured endpoint and
// returns the reply text. The client is released on every path.
func (r *Runner) Run(ctx context.Context, command string) (string, error) {
	if err := rcmd.ValidateCommand(command); err != nil {
		return "", err
	}

	client, err := rcmd.New(r.cfg)
	if err != nil {
		return "", err
	}
	defer client.Close()

	start := time.Now()

	fmt.Fprintf(r.out, "Connecting to %s\n", client.Endpoint())
	if err := client.Connect(ctx); err != nil {
		return "", err
	}

	fmt.Fprintf(r.out, "Sending command: %s\n", command)
	if err := client.Send(ctx, []byte(command)); err != nil {
		return "", err
	}

	reply, err := client.Receive(ctx)
	if err != nil {
		return "", err
	}

	replyText := rcmd.TrimReply(reply)
	fmt.Fprintf(r.out, "Received reply: %s\n", replyText)
	logger.Info().
		Str("command", command).
		Str("reply", replyText).
		Dur("elapsed", time.Since(start)).
		Msg("exchange complete")
	return replyText, nil
}
