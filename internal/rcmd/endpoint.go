package rcmd

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"ivsremote/internal/shared/types"
)

// Endpoint is the address of a remote command server. It is immutable once
// constructed and held for the lifetime of the socket that dials it.
type Endpoint struct {
	Scheme string
	Host   string
	Port   int
}

// supported transport schemes of the underlying zmq4 sockets. The original
// client only speaks tcp; ipc and inproc are accepted so tests and local
// setups can avoid the network stack.
var validSchemes = map[string]bool{
	"tcp":    true,
	"ipc":    true,
	"inproc": true,
}

// EndpointFromConf builds and validates an Endpoint from the [endpoint]
// configuration section.
func EndpointFromConf(conf types.EndpointConf) (Endpoint, error) {
	ep := Endpoint{Scheme: conf.Scheme, Host: conf.Host, Port: conf.Port}
	if err := ep.Validate(); err != nil {
		return Endpoint{}, err
	}
	return ep, nil
}

// ParseEndpoint parses a connection string such as "tcp://localhost:5100"
// or "ipc:///tmp/rcmd.sock".
func ParseEndpoint(raw string) (Endpoint, error) {
	scheme, rest, found := strings.Cut(raw, "://")
	if !found || rest == "" {
		return Endpoint{}, fmt.Errorf("malformed endpoint %q: expected scheme://address", raw)
	}

	ep := Endpoint{Scheme: scheme}
	if scheme == "tcp" {
		host, portStr, err := net.SplitHostPort(rest)
		if err != nil {
			return Endpoint{}, fmt.Errorf("malformed tcp endpoint %q: %w", raw, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Endpoint{}, fmt.Errorf("malformed port in endpoint %q: %w", raw, err)
		}
		ep.Host = host
		ep.Port = port
	} else {
		ep.Host = rest
	}

	if err := ep.Validate(); err != nil {
		return Endpoint{}, err
	}
	return ep, nil
}

// Validate checks the scheme, host and (for tcp) port range.
func (e Endpoint) Validate() error {
	if !validSchemes[e.Scheme] {
		return fmt.Errorf("unsupported endpoint scheme %q", e.Scheme)
	}
	if e.Host == "" {
		return fmt.Errorf("endpoint host must not be empty")
	}
	if e.Scheme == "tcp" && (e.Port < 1 || e.Port > 65535) {
		return fmt.Errorf("endpoint port %d out of range", e.Port)
	}
	return nil
}

// String renders the connection string the transport dials.
func (e Endpoint) String() string {
	if e.Scheme == "tcp" {
		return fmt.Sprintf("tcp://%s", net.JoinHostPort(e.Host, strconv.Itoa(e.Port)))
	}
	return fmt.Sprintf("%s://%s", e.Scheme, e.Host)
}
