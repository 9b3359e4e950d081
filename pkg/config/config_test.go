package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Providers.Ollama.BaseURL != "http://localhost:11434" {
		t.Errorf("default ollama base_url = %q", cfg.Providers.Ollama.BaseURL)
	}
	if cfg.Providers.Azure.Scope != "https://cognitiveservices.azure.com/.default" {
		t.Errorf("default azure scope = %q", cfg.Providers.Azure.Scope)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
providers:
  default: mock
  openai:
    api_key: sk-test
  azure:
    endpoint: https://example.openai.azure.com
    deployment: gpt-4o
    api_version: 2024-06-01
    api_key: azure-key
tools:
  enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Providers.Default != "mock" {
		t.Errorf("default provider = %q, want mock", cfg.Providers.Default)
	}
	if cfg.Providers.OpenAI.APIKey != "sk-test" {
		t.Errorf("openai key = %q", cfg.Providers.OpenAI.APIKey)
	}
	if !cfg.Providers.Azure.Complete() {
		t.Error("azure config should be complete")
	}
	if !cfg.Tools.Enabled {
		t.Error("tools should be enabled")
	}

	// Values not present in the file keep their defaults.
	if cfg.Providers.Ollama.BaseURL != "http://localhost:11434" {
		t.Errorf("ollama base_url = %q, want default", cfg.Providers.Ollama.BaseURL)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CONCIERGE_PORT", "7070")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://env.openai.azure.com")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama.internal:11434")

	cfg := Defaults()
	applyEnvOverrides(&cfg)

	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Providers.OpenAI.APIKey != "sk-env" {
		t.Errorf("openai key = %q, want sk-env", cfg.Providers.OpenAI.APIKey)
	}
	if cfg.Providers.Azure.Endpoint != "https://env.openai.azure.com" {
		t.Errorf("azure endpoint = %q", cfg.Providers.Azure.Endpoint)
	}
	if cfg.Providers.Ollama.BaseURL != "http://ollama.internal:11434" {
		t.Errorf("ollama base_url = %q", cfg.Providers.Ollama.BaseURL)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONCIERGE_PORT", "7071")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 7071 {
		t.Errorf("port = %d, want env override 7071", cfg.Server.Port)
	}
}

func TestAPIKeyFileReference(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "openai.key")
	if err := os.WriteFile(keyPath, []byte("sk-from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	cfg.Providers.OpenAI.APIKeyFile = keyPath
	if err := resolveFileReferences(&cfg); err != nil {
		t.Fatalf("resolveFileReferences error: %v", err)
	}
	if cfg.Providers.OpenAI.APIKey != "sk-from-file" {
		t.Errorf("key = %q, want sk-from-file", cfg.Providers.OpenAI.APIKey)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for port 0")
	}

	cfg = Defaults()
	cfg.Providers.Default = "claude"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown default provider")
	}

	cfg = Defaults()
	cfg.Observability.Metrics.Path = "metrics"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for metrics path without leading slash")
	}
}

func TestAzureComplete(t *testing.T) {
	azure := AzureConfig{
		Endpoint:   "https://example.openai.azure.com",
		Deployment: "gpt-4o",
		APIVersion: "2024-06-01",
	}
	if azure.Complete() {
		t.Error("azure config without auth material should be incomplete")
	}

	withKey := azure
	withKey.APIKey = "key"
	if !withKey.Complete() {
		t.Error("azure config with key should be complete")
	}

	withIdentity := azure
	withIdentity.ClientID = "11111111-2222-3333-4444-555555555555"
	if !withIdentity.Complete() {
		t.Error("azure config with managed identity should be complete")
	}

	missingVersion := withKey
	missingVersion.APIVersion = ""
	if missingVersion.Complete() {
		t.Error("azure config without api version should be incomplete")
	}
}
