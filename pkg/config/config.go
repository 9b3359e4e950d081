// Package config provides unified configuration for the concierge chat
// gateway.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (CONCIERGE_ prefix plus the
//     conventional provider variables such as OPENAI_API_KEY)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the concierge gateway.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Providers     ProvidersConfig     `yaml:"providers"`
	Tools         ToolsConfig         `yaml:"tools"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
//
// There is deliberately no write timeout: an SSE stream may legitimately
// outlive any fixed deadline, so stream lifetime is governed by the
// request context instead.
type ServerConfig struct {
	Port              int           `yaml:"port"`                // default: 8080
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"` // default: 10s
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`    // default: 10s
	MaxBodySize       int64         `yaml:"max_body_size"`       // default: 1 MiB
}

// ProvidersConfig holds per-backend settings plus the optional default
// provider override.
type ProvidersConfig struct {
	// Default forces a provider for requests that carry no explicit
	// provider field, bypassing auto-detection. Empty means detect.
	Default string `yaml:"default"`

	OpenAI OpenAIConfig `yaml:"openai"`
	Azure  AzureConfig  `yaml:"azure"`
	Ollama OllamaConfig `yaml:"ollama"`
	Mock   MockConfig   `yaml:"mock"`
}

// OpenAIConfig holds settings for the OpenAI backend.
type OpenAIConfig struct {
	APIKey     string `yaml:"api_key"`
	APIKeyFile string `yaml:"api_key_file"` // _file variant for api_key
	BaseURL    string `yaml:"base_url"`     // optional, for compatible endpoints
	Model      string `yaml:"model"`        // default: "gpt-4o-mini"
}

// AzureConfig holds settings for the Azure OpenAI backend. Endpoint,
// Deployment, and APIVersion are all required to use it; auth material
// is either a static APIKey or a managed-identity ClientID.
type AzureConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
	APIKey     string `yaml:"api_key"`
	APIKeyFile string `yaml:"api_key_file"` // _file variant for api_key
	ClientID   string `yaml:"client_id"`    // managed identity client id
	Scope      string `yaml:"scope"`        // token audience, default cognitive services
}

// Complete reports whether the Azure configuration is sufficient for
// auto-detection: endpoint, deployment, api version, and at least one
// of key or managed-identity client id.
func (a AzureConfig) Complete() bool {
	if a.Endpoint == "" || a.Deployment == "" || a.APIVersion == "" {
		return false
	}
	return a.APIKey != "" || a.ClientID != ""
}

// OllamaConfig holds settings for a local Ollama server.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"` // default: "http://localhost:11434"
	Model   string `yaml:"model"`    // default: "llama3.2"
}

// MockConfig holds settings for the credential-free mock backend.
type MockConfig struct {
	// TokenDelay is the pause between emitted characters, purely to
	// exercise the streaming path. Default: 10ms.
	TokenDelay time.Duration `yaml:"token_delay"`
}

// ToolsConfig carries the tool-calling toggle. The toggle is part of
// the configuration surface but no tools are executed by the gateway;
// it is forwarded so that deployments can flip it without a rebuild.
type ToolsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig holds log level and debug category settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // ERROR, WARN, INFO, DEBUG, TRACE; default: INFO
	Debug string `yaml:"debug"` // comma-separated debug categories
}

// ObservabilityConfig holds monitoring settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:              8080,
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxBodySize:       1 << 20, // 1 MiB
		},
		Providers: ProvidersConfig{
			OpenAI: OpenAIConfig{
				Model: "gpt-4o-mini",
			},
			Azure: AzureConfig{
				Scope: "https://cognitiveservices.azure.com/.default",
			},
			Ollama: OllamaConfig{
				BaseURL: "http://localhost:11434",
				Model:   "llama3.2",
			},
			Mock: MockConfig{
				TokenDelay: 10 * time.Millisecond,
			},
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
