package rcmd

import (
	"errors"
	"fmt"
)

// Failure classes of one request/reply exchange. Each transport boundary
// call surfaces exactly one of these; nothing is recovered silently.
var (
	// ErrConnectFailed covers socket creation and dialing. The zmq4
	// transport has no separately failable context or socket allocation,
	// so those failure modes collapse into this one.
	ErrConnectFailed = errors.New("rcmd: connect failed")

	// ErrSendFailed means the transport rejected the write. Not retried.
	ErrSendFailed = errors.New("rcmd: send failed")

	// ErrReceiveFailed means the transport errored while waiting for the reply.
	ErrReceiveFailed = errors.New("rcmd: receive failed")

	// ErrReceiveTimeout means no reply arrived within the configured deadline.
	ErrReceiveTimeout = errors.New("rcmd: receive timed out")

	// ErrReplyTooLarge means the reply exceeds the configured capacity.
	// The reply is rejected, never truncated.
	ErrReplyTooLarge = errors.New("rcmd: reply exceeds capacity")

	// ErrInvalidState means an operation was called out of the strict
	// connect/send/receive/close order.
	ErrInvalidState = errors.New("rcmd: operation not valid in current state")

	// ErrClosed means the client has already been closed.
	ErrClosed = errors.New("rcmd: client closed")
)

// OpError carries the failing operation, its failure class and the
// underlying transport error, if any. errors.Is matches the class.
type OpError struct {
	Op       string // "connect", "send" or "receive"
	Endpoint string
	Kind     error
	Err      error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Endpoint, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Endpoint, e.Kind, e.Err)
}

// Is supports errors.Is against the sentinel failure classes.
func (e *OpError) Is(target error) bool {
	return target == e.Kind
}

func (e *OpError) Unwrap() error {
	return e.Err
}
