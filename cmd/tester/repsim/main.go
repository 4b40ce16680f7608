// repsim is a REP-side simulator of the IV Swinger 2 remote command server.
// It answers "Swing" with "OK" and has knobs to delay, mute or pad its
// replies, for exercising the client's timeout and capacity handling
// without the real application.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-zeromq/zmq4"

	"ivsremote/internal/rcmd"
	"ivsremote/internal/shared/logger"
	"ivsremote/internal/shared/types"
)

func main() {
	port := flag.Int("port", 5100, "port to bind the REP socket on")
	reply := flag.String("reply", rcmd.ReplyOK, "reply for accepted commands")
	delayMs := flag.Int("delay-ms", 0, "delay before each reply")
	mute := flag.Bool("mute", false, "receive commands but never reply")
	padBytes := flag.Int("pad-bytes", 0, "pad replies to this size")
	once := flag.Bool("once", false, "exit after one exchange")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	if err := logger.Init(types.LogConf{Level: *logLevel}); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	sock := zmq4.NewRep(context.Background())
	defer sock.Close()

	ep := fmt.Sprintf("tcp://*:%d", *port)
	if err := sock.Listen(ep); err != nil {
		logger.Fatal().Err(err).Str("endpoint", ep).Msg("listen failed")
	}
	logger.Info().Str("endpoint", ep).Msg("simulator listening")

	for {
		msg, err := sock.Recv()
		if err != nil {
			logger.Error().Err(err).Msg("receive failed")
			return
		}
		command := string(msg.Bytes())
		logger.Info().Str("command", command).Msg("command received")

		if *mute {
			logger.Info().Msg("muted, withholding reply")
			// A REP socket must reply before the next receive, so a
			// muted simulator serves exactly one request.
			select {}
		}

		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}

		out := *reply
		if command != rcmd.CommandSwing {
			out = "NAK: unknown command: " + command
		}
		if *padBytes > len(out) {
			out += strings.Repeat("\x00", *padBytes-len(out))
		}

		if err := sock.Send(zmq4.NewMsgString(out)); err != nil {
			logger.Error().Err(err).Msg("send failed")
			return
		}
		logger.Info().Int("reply_bytes", len(out)).Msg("reply sent")

		if *once {
			return
		}
	}
}
