package config

import (
	"fmt"
	"strings"
)

// Error is a configuration problem with a human-readable message.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

var validTransports = map[string]bool{
	"stdio": true,
	"sse":   true,
	"ws":    true,
}

// Validate checks a loaded Config for problems the server cannot start
// with. It returns all problems found, not just the first.
func Validate(cfg Config) []error {
	var errs []error

	if cfg.API.Key == "" {
		errs = append(errs, &Error{Message: "api.key is required (or set THENVOI_API_KEY)"})
	}
	if cfg.API.BaseURL == "" {
		errs = append(errs, &Error{Message: "api.baseUrl is required"})
	} else if !strings.HasPrefix(cfg.API.BaseURL, "http://") && !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		errs = append(errs, &Error{Message: "api.baseUrl must start with http:// or https://"})
	}

	if !validTransports[cfg.Server.Transport] {
		errs = append(errs, &Error{Message: fmt.Sprintf("server.transport %q is not one of stdio, sse, ws", cfg.Server.Transport)})
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, &Error{Message: fmt.Sprintf("server.port %d is out of range", cfg.Server.Port)})
	}
	if cfg.Server.Bind != "loopback" && cfg.Server.Bind != "lan" {
		errs = append(errs, &Error{Message: fmt.Sprintf("server.bind %q is not one of loopback, lan", cfg.Server.Bind)})
	}
	if cfg.Server.MaxPending < 1 {
		errs = append(errs, &Error{Message: "server.maxPending must be at least 1"})
	}

	return errs
}
