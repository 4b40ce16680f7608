package types

// EndpointConf describes where the remote command server listens.
type EndpointConf struct {
	Scheme string `ini:"scheme"` // "tcp", "ipc" or "inproc"
	Host   string `ini:"host"`
	Port   int    `ini:"port"`
}

// ClientConf contains the behavior knobs for one request/reply exchange.
type ClientConf struct {
	Command          string `ini:"command"`             // default command payload
	MaxReplyBytes    int    `ini:"max_reply_bytes"`     // replies above this are rejected
	DialTimeoutMs    int    `ini:"dial_timeout_ms"`     // per-attempt TCP dial timeout
	DialRetries      int    `ini:"dial_retries"`        // extra dial attempts after the first
	DialRetryDelayMs int    `ini:"dial_retry_delay_ms"` // pause between dial attempts
	RecvTimeoutMs    int    `ini:"recv_timeout_ms"`     // deadline for the reply
}

// LogConf contains logging specific configuration
type LogConf struct {
	Level string `ini:"level"`
}

// Config is the unified configuration for the rcmd client.
type Config struct {
	EndpointConf `ini:"endpoint"`
	ClientConf   `ini:"client"`
	LogConf      `ini:"log"`
}

// NewDefaultConfig returns a Config preloaded with the values of the original
// IV Swinger 2 sample client: localhost:5100, the "Swing" command and a
// 512 byte reply cap. An ini file or flags overlay these.
func NewDefaultConfig() *Config {
	return &Config{
		EndpointConf: EndpointConf{
			Scheme: "tcp",
			Host:   "localhost",
			Port:   5100,
		},
		ClientConf: ClientConf{
			Command:          "Swing",
			MaxReplyBytes:    512,
			DialTimeoutMs:    5000,
			DialRetries:      3,
			DialRetryDelayMs: 250,
			RecvTimeoutMs:    10000,
		},
		LogConf: LogConf{
			Level: "info",
		},
	}
}
