package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"ivsremote/internal/rcmd"
	"ivsremote/internal/shared/config"
	"ivsremote/internal/shared/logger"
	"ivsremote/internal/shared/types"
)

var (
	flagConfig   string
	flagHost     string
	flagPort     int
	flagScheme   string
	flagTimeout  int
	flagMaxReply int
	flagLogLevel string
)

// cfg is assembled in the root PersistentPreRunE and consumed by the
// subcommands. Precedence: flags > environment > ini file > defaults.
var cfg *types.Config

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rcmd",
		Short:         "Remote command client for the IV Swinger 2 application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "configs/rcmd.ini", "path to ini configuration file")
	root.PersistentFlags().StringVar(&flagHost, "host", "", "remote command server host")
	root.PersistentFlags().IntVar(&flagPort, "port", 0, "remote command server port")
	root.PersistentFlags().StringVar(&flagScheme, "scheme", "", "endpoint scheme: tcp, ipc or inproc")
	root.PersistentFlags().IntVar(&flagTimeout, "recv-timeout-ms", 0, "reply deadline in milliseconds")
	root.PersistentFlags().IntVar(&flagMaxReply, "max-reply-bytes", 0, "reject replies above this size")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(
		newSendCmd(),
		newVersionCmd(),
	)
	return root
}

func setup(cmd *cobra.Command) error {
	cfg = types.NewDefaultConfig()

	if _, err := os.Stat(flagConfig); err == nil {
		if err := config.LoadIni(cfg, flagConfig); err != nil {
			return err
		}
	} else {
		// Config file is optional; defaults plus environment are enough
		// to reach the stock IV Swinger 2 setup.
		config.ApplyEnv(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.EndpointConf.Host = flagHost
	}
	if flags.Changed("port") {
		cfg.EndpointConf.Port = flagPort
	}
	if flags.Changed("scheme") {
		cfg.EndpointConf.Scheme = flagScheme
	}
	if flags.Changed("recv-timeout-ms") {
		cfg.ClientConf.RecvTimeoutMs = flagTimeout
	}
	if flags.Changed("max-reply-bytes") {
		cfg.ClientConf.MaxReplyBytes = flagMaxReply
	}
	if flags.Changed("log-level") {
		cfg.LogConf.Level = flagLogLevel
	}

	return logger.Init(cfg.LogConf)
}

// Exit codes of the rcmd binary. The original sample exited 0 even on
// failure; here every failure class gets its own non-zero code.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitConnectFailed  = 2
	ExitSendFailed     = 3
	ExitReceiveTimeout = 4
	ExitReplyTooLarge  = 5
)

// ExitCode maps an exchange error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, rcmd.ErrConnectFailed):
		return ExitConnectFailed
	case errors.Is(err, rcmd.ErrSendFailed):
		return ExitSendFailed
	case errors.Is(err, rcmd.ErrReceiveTimeout):
		return ExitReceiveTimeout
	case errors.Is(err, rcmd.ErrReplyTooLarge):
		return ExitReplyTooLarge
	default:
		return ExitFailure
	}
}
