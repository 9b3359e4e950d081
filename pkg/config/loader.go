package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, CONCIERGE_CONFIG env,
//     ./config.yaml, /etc/concierge/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// explicit path, CONCIERGE_CONFIG env var, ./config.yaml,
// /etc/concierge/config.yaml. Returns empty string if none is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("CONCIERGE_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/concierge/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields. The
// gateway's own settings use the CONCIERGE_ prefix; provider credentials
// use the conventional variable names their ecosystems established.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CONCIERGE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("CONCIERGE_PROVIDER"); v != "" {
		cfg.Providers.Default = v
	}
	if v := os.Getenv("CONCIERGE_TOOLS"); v != "" {
		cfg.Tools.Enabled = parseBool(v)
	}
	if v := os.Getenv("CONCIERGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CONCIERGE_DEBUG"); v != "" {
		cfg.Logging.Debug = v
	}

	// OpenAI.
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Providers.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Providers.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Providers.OpenAI.Model = v
	}

	// Azure OpenAI.
	if v := os.Getenv("AZURE_OPENAI_ENDPOINT"); v != "" {
		cfg.Providers.Azure.Endpoint = v
	}
	if v := os.Getenv("AZURE_OPENAI_DEPLOYMENT"); v != "" {
		cfg.Providers.Azure.Deployment = v
	}
	if v := os.Getenv("AZURE_OPENAI_API_VERSION"); v != "" {
		cfg.Providers.Azure.APIVersion = v
	}
	if v := os.Getenv("AZURE_OPENAI_API_KEY"); v != "" {
		cfg.Providers.Azure.APIKey = v
	}
	if v := os.Getenv("AZURE_CLIENT_ID"); v != "" {
		cfg.Providers.Azure.ClientID = v
	}
	if v := os.Getenv("AZURE_OPENAI_SCOPE"); v != "" {
		cfg.Providers.Azure.Scope = v
	}

	// Ollama.
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.Providers.Ollama.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.Providers.Ollama.Model = v
	}
}

// resolveFileReferences loads secrets referenced via _file fields.
// A populated direct value takes precedence over its _file variant.
func resolveFileReferences(cfg *Config) error {
	if cfg.Providers.OpenAI.APIKey == "" && cfg.Providers.OpenAI.APIKeyFile != "" {
		key, err := readSecretFile(cfg.Providers.OpenAI.APIKeyFile)
		if err != nil {
			return fmt.Errorf("openai api_key_file: %w", err)
		}
		cfg.Providers.OpenAI.APIKey = key
	}
	if cfg.Providers.Azure.APIKey == "" && cfg.Providers.Azure.APIKeyFile != "" {
		key, err := readSecretFile(cfg.Providers.Azure.APIKeyFile)
		if err != nil {
			return fmt.Errorf("azure api_key_file: %w", err)
		}
		cfg.Providers.Azure.APIKey = key
	}
	return nil
}

func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
