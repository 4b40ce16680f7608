package rcmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-zeromq/zmq4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ivsremote/internal/shared/logger"
	"ivsremote/internal/shared/types"
)

// State is the position of a Client in its linear exchange lifecycle.
type State int

const (
	StateUnconnected State = iota
	StateConnected
	StateSent
	StateReceived
	// StateSpent marks a socket whose exchange failed after the send:
	// timed out, canceled, errored or over-capacity. REQ alternation is
	// broken at that point, so the only valid operation left is Close.
	StateSpent
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnected:
		return "connected"
	case StateSent:
		return "sent"
	case StateReceived:
		return "received"
	case StateSpent:
		return "spent"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Client performs one synchronous request/reply exchange over a REQ socket.
// The lifecycle is strictly linear: Connect, Send, Receive, Close. REQ
// semantics permit exactly one outstanding request, so a Client is not for
// concurrent use; after a failed or timed out exchange the socket is spent
// and the only valid operation is Close.
type Client struct {
	cfg        *types.Config
	ep         Endpoint
	exchangeID string
	log        zerolog.Logger

	mu    sync.Mutex
	state State
	sock  zmq4.Socket
}

// New builds a Client from the configuration. The endpoint is validated
// here and held for the socket's lifetime.
func New(cfg *types.Config) (*Client, error) {
	ep, err := EndpointFromConf(cfg.EndpointConf)
	if err != nil {
		return nil, err
	}
	if cfg.ClientConf.RecvTimeoutMs <= 0 {
		return nil, fmt.Errorf("recv_timeout_ms must be positive, got %d", cfg.ClientConf.RecvTimeoutMs)
	}
	exchangeID := uuid.NewString()
	return &Client{
		cfg:        cfg,
		ep:         ep,
		exchangeID: exchangeID,
		log: logger.WithComponent("rcmd-client").With().
			Str("exchange_id", exchangeID).
			Str("endpoint", ep.String()).Logger(),
		state: StateUnconnected,
	}, nil
}

// Endpoint returns the endpoint this client dials.
func (c *Client) Endpoint() Endpoint {
	return c.ep
}

// State returns the client's current lifecycle position.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect creates the REQ socket and dials the endpoint. With dial_retries
// set to zero the dial is a single attempt, so an unreachable peer fails
// deterministically instead of hanging.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return &OpError{Op: "connect", Endpoint: c.ep.String(), Kind: ErrClosed}
	}
	if c.state != StateUnconnected {
		return c.stateError("connect")
	}

	sock := zmq4.NewReq(ctx,
		zmq4.WithDialerTimeout(time.Duration(c.cfg.DialTimeoutMs)*time.Millisecond),
		zmq4.WithDialerRetry(time.Duration(c.cfg.DialRetryDelayMs)*time.Millisecond),
		zmq4.WithDialerMaxRetries(c.cfg.DialRetries),
	)

	c.log.Debug().Msg("dialing")
	if err := sock.Dial(c.ep.String()); err != nil {
		_ = sock.Close()
		c.log.Error().Err(err).Msg("dial failed")
		return &OpError{Op: "connect", Endpoint: c.ep.String(), Kind: ErrConnectFailed, Err: err}
	}

	c.sock = sock
	c.state = StateConnected
	c.log.Debug().Msg("connected")
	return nil
}

// Send writes the command payload to the socket. The write either succeeds
// or surfaces ErrSendFailed; there is no retry and no delivery confirmation
// beyond the transport accepting it.
func (c *Client) Send(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return &OpError{Op: "send", Endpoint: c.ep.String(), Kind: ErrClosed}
	}
	if c.state != StateConnected {
		err := c.stateError("send")
		c.mu.Unlock()
		return err
	}
	sock := c.sock
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send canceled: %w", err)
	}

	if err := sock.Send(zmq4.NewMsg(payload)); err != nil {
		c.log.Error().Err(err).Msg("send failed")
		return &OpError{Op: "send", Endpoint: c.ep.String(), Kind: ErrSendFailed, Err: err}
	}

	c.setState(StateSent)
	c.log.Debug().Int("payload_bytes", len(payload)).Msg("command sent")
	return nil
}

// Receive blocks until the reply arrives, the configured deadline passes,
// or ctx is canceled. Replies longer than max_reply_bytes are rejected with
// ErrReplyTooLarge rather than truncated. After a timeout the REQ socket
// cannot be reused; the caller must Close.
func (c *Client) Receive(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return nil, &OpError{Op: "receive", Endpoint: c.ep.String(), Kind: ErrClosed}
	}
	if c.state != StateSent {
		err := c.stateError("receive")
		c.mu.Unlock()
		return nil, err
	}
	sock := c.sock
	c.mu.Unlock()

	type recvResult struct {
		msg zmq4.Msg
		err error
	}
	// Buffered so the receiving goroutine never leaks past socket close.
	resultCh := make(chan recvResult, 1)
	go func() {
		msg, err := sock.Recv()
		resultCh <- recvResult{msg: msg, err: err}
	}()

	deadline := time.Duration(c.cfg.RecvTimeoutMs) * time.Millisecond
	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		if res.err != nil {
			c.setState(StateSpent)
			c.log.Error().Err(res.err).Msg("receive failed")
			return nil, &OpError{Op: "receive", Endpoint: c.ep.String(), Kind: ErrReceiveFailed, Err: res.err}
		}
		reply := res.msg.Bytes()
		if max := c.cfg.MaxReplyBytes; max > 0 && len(reply) > max {
			c.setState(StateSpent)
			c.log.Error().Int("reply_bytes", len(reply)).Int("max_reply_bytes", max).Msg("reply rejected")
			return nil, &OpError{Op: "receive", Endpoint: c.ep.String(), Kind: ErrReplyTooLarge,
				Err: fmt.Errorf("%d bytes, capacity %d", len(reply), max)}
		}
		c.setState(StateReceived)
		c.log.Debug().Int("reply_bytes", len(reply)).Msg("reply received")
		return reply, nil

	case <-timer.C:
		c.setState(StateSpent)
		c.log.Error().Dur("deadline", deadline).Msg("receive deadline passed")
		return nil, &OpError{Op: "receive", Endpoint: c.ep.String(), Kind: ErrReceiveTimeout}

	case <-ctx.Done():
		c.setState(StateSpent)
		return nil, fmt.Errorf("receive canceled: %w", ctx.Err())
	}
}

// setState never leaves the closed state; a concurrent Close wins over a
// late receive outcome.
func (c *Client) setState(s State) {
	c.mu.Lock()
	if c.state != StateClosed {
		c.state = s
	}
	c.mu.Unlock()
}

// Close releases the socket. It is idempotent and must run on every exit
// path, normal or failed; closing also unblocks a pending receive.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return nil
	}

	var err error
	if c.sock != nil {
		err = c.sock.Close()
		c.sock = nil
	}
	c.state = StateClosed
	c.log.Debug().Msg("closed")
	return err
}

// Execute runs the whole linear exchange for a single text command and
// returns the trimmed reply text. The client is closed afterwards
// regardless of outcome.
func (c *Client) Execute(ctx context.Context, command string) (string, error) {
	if err := ValidateCommand(command); err != nil {
		return "", err
	}
	defer c.Close()

	if err := c.Connect(ctx); err != nil {
		return "", err
	}
	if err := c.Send(ctx, []byte(command)); err != nil {
		return "", err
	}
	reply, err := c.Receive(ctx)
	if err != nil {
		return "", err
	}
	return TrimReply(reply), nil
}

// stateError is called with c.mu held.
func (c *Client) stateError(op string) error {
	return &OpError{Op: op, Endpoint: c.ep.String(), Kind: ErrInvalidState,
		Err: fmt.Errorf("client is %s", c.state)}
}
