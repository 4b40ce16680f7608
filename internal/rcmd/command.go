package rcmd

import (
	"bytes"
	"fmt"
)

// CommandSwing triggers one IV curve swing on the remote application.
// It is the command of the original sample client and the configured default.
const CommandSwing = "Swing"

// ReplyOK is the acknowledgement the remote application sends for an
// accepted command.
const ReplyOK = "OK"

// ValidateCommand rejects payloads the peer cannot represent: empty
// commands and embedded NUL bytes (the peer treats commands as C strings).
func ValidateCommand(command string) error {
	if command == "" {
		return fmt.Errorf("command must not be empty")
	}
	if bytes.ContainsRune([]byte(command), 0) {
		return fmt.Errorf("command must not contain NUL bytes")
	}
	return nil
}

// TrimReply strips trailing NUL bytes from a reply. The original peer
// speaks null-terminated text; the terminator is transport padding, not
// payload.
func TrimReply(reply []byte) string {
	return string(bytes.TrimRight(reply, "\x00"))
}
