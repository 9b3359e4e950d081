package config

import (
	"fmt"
	"strings"
)

// knownProviders are the provider names accepted in providers.default.
var knownProviders = map[string]bool{
	"openai": true,
	"azure":  true,
	"ollama": true,
	"mock":   true,
}

// Validate checks the configuration for internal consistency. Per-request
// provider requirements (keys, endpoints) are not checked here: a gateway
// with no credentials at all is valid and falls back to the mock backend.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Server.MaxBodySize <= 0 {
		return fmt.Errorf("server.max_body_size must be positive")
	}

	if d := c.Providers.Default; d != "" && !knownProviders[strings.ToLower(d)] {
		return fmt.Errorf("providers.default %q is not one of openai, azure, ollama, mock", d)
	}

	if c.Providers.Mock.TokenDelay < 0 {
		return fmt.Errorf("providers.mock.token_delay must not be negative")
	}

	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		return fmt.Errorf("observability.metrics.path must start with /")
	}

	return nil
}
