package config

// Config is the root configuration for the thenvoi-mcp server.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig describes the remote Thenvoi platform connection.
type APIConfig struct {
	// Key is the Thenvoi API key. Its prefix determines the credential
	// scope: tv_agent_* keys expose the agent tool surface, tv_user_*
	// keys the human one. Supports ${ENV_VAR} expansion.
	Key     string `yaml:"key"`
	BaseURL string `yaml:"baseUrl"`
}

// ServerConfig controls the transport bindings.
type ServerConfig struct {
	// Transport selects the binding: "stdio" (default), "sse", or "ws".
	Transport string `yaml:"transport"`
	Port      int    `yaml:"port"`
	Bind      string `yaml:"bind"` // "loopback" | "lan"

	// MaxPending bounds the per-session inbound queue on the network
	// bindings. Requests past the bound are rejected with a
	// backpressure error.
	MaxPending int `yaml:"maxPending"`
}

// LoggingConfig controls log output. Logs always go to stderr.
type LoggingConfig struct {
	Level string `yaml:"level"`
}
