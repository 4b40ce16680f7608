package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/go-zeromq/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ivsremote/internal/rcmd"
	"ivsremote/internal/shared/types"
)

func startEchoPeer(t *testing.T, reply string) *types.Config {
	t.Helper()

	sock := zmq4.NewRep(context.Background())
	require.NoError(t, sock.Listen("tcp://127.0.0.1:0"))
	t.Cleanup(func() { _ = sock.Close() })

	go func() {
		for {
			if _, err := sock.Recv(); err != nil {
				return
			}
			if err := sock.Send(zmq4.NewMsgString(reply)); err != nil {
				return
			}
		}
	}()

	addr := sock.Addr().(*net.TCPAddr)
	cfg := types.NewDefaultConfig()
	cfg.EndpointConf = types.EndpointConf{Scheme: "tcp", Host: "127.0.0.1", Port: addr.Port}
	cfg.ClientConf.DialRetries = 0
	cfg.ClientConf.RecvTimeoutMs = 2000
	return cfg
}

func TestRunnerRun(t *testing.T) {
	cfg := startEchoPeer(t, rcmd.ReplyOK)

	var out bytes.Buffer
	runner := New(cfg, &out)

	reply, err := runner.Run(context.Background(), rcmd.CommandSwing)
	require.NoError(t, err)
	assert.Equal(t, rcmd.ReplyOK, reply)

	lines := out.String()
	assert.Contains(t, lines, fmt.Sprintf("Connecting to tcp://127.0.0.1:%d\n", cfg.EndpointConf.Port))
	assert.Contains(t, lines, "Sending command: Swing\n")
	assert.Contains(t, lines, "Received reply: OK\n")
}

func TestRunnerRejectsBadCommand(t *testing.T) {
	var out bytes.Buffer
	runner := New(types.NewDefaultConfig(), &out)

	_, err := runner.Run(context.Background(), "")
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRunnerConnectFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	cfg := types.NewDefaultConfig()
	cfg.EndpointConf = types.EndpointConf{Scheme: "tcp", Host: "127.0.0.1", Port: port}
	cfg.ClientConf.DialRetries = 0

	var out bytes.Buffer
	runner := New(cfg, &out)

	_, err = runner.Run(context.Background(), rcmd.CommandSwing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rcmd.ErrConnectFailed))
}
