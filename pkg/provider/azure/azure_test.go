package azure

import (
	"context"
	"errors"
	"testing"

	ai "github.com/sashabaranov/go-openai"

	"github.com/airtrek/concierge/pkg/api"
)

func validConfig() Config {
	return Config{
		Endpoint:   "https://example.openai.azure.com",
		Deployment: "gpt-4o",
		APIVersion: "2024-06-01",
		APIKey:     "azure-key",
	}
}

func TestNewRejectsIncompleteConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing endpoint", func(c *Config) { c.Endpoint = "" }},
		{"missing deployment", func(c *Config) { c.Deployment = "" }},
		{"missing api version", func(c *Config) { c.APIVersion = "" }},
		{"missing auth material", func(c *Config) { c.APIKey = ""; c.ClientID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			_, err := New(context.Background(), cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			var apiErr *api.APIError
			if !errors.As(err, &apiErr) || apiErr.Type != api.ErrorTypeConfiguration {
				t.Errorf("error = %v, want configuration_error", err)
			}
		})
	}
}

func TestNewWithKeySucceeds(t *testing.T) {
	p, err := New(context.Background(), validConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if p.Name() != "azure" {
		t.Errorf("Name = %q, want azure", p.Name())
	}
}

func TestBuildClientConfigManagedIdentity(t *testing.T) {
	cfg := validConfig()
	cfg.APIKey = ""
	cfg.ClientID = "11111111-2222-3333-4444-555555555555"
	cfg.Scope = DefaultScope

	var gotScope, gotClientID string
	fetch := func(ctx context.Context, clientID, scope string) (string, error) {
		gotClientID = clientID
		gotScope = scope
		return "bearer-token", nil
	}

	clientCfg, err := buildClientConfig(context.Background(), cfg, fetch)
	if err != nil {
		t.Fatalf("buildClientConfig error: %v", err)
	}

	if gotClientID != cfg.ClientID {
		t.Errorf("client id = %q, want %q", gotClientID, cfg.ClientID)
	}
	if gotScope != DefaultScope {
		t.Errorf("scope = %q, want %q", gotScope, DefaultScope)
	}
	if clientCfg.APIType != ai.APITypeAzureAD {
		t.Errorf("api type = %q, want %q", clientCfg.APIType, ai.APITypeAzureAD)
	}
	if clientCfg.APIVersion != cfg.APIVersion {
		t.Errorf("api version = %q, want %q", clientCfg.APIVersion, cfg.APIVersion)
	}
	if mapped := clientCfg.AzureModelMapperFunc("anything"); mapped != "gpt-4o" {
		t.Errorf("deployment mapping = %q, want gpt-4o", mapped)
	}
}

func TestBuildClientConfigTokenFailureIsAuthError(t *testing.T) {
	cfg := validConfig()
	cfg.APIKey = ""
	cfg.ClientID = "11111111-2222-3333-4444-555555555555"
	cfg.Scope = DefaultScope

	fetch := func(ctx context.Context, clientID, scope string) (string, error) {
		return "", errors.New("identity endpoint unreachable")
	}

	_, err := buildClientConfig(context.Background(), cfg, fetch)
	if err == nil {
		t.Fatal("expected auth error")
	}
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != api.ErrorTypeAuth {
		t.Errorf("error = %v, want auth_error", err)
	}
}

func TestBuildClientConfigStaticKey(t *testing.T) {
	clientCfg, err := buildClientConfig(context.Background(), validConfig(), nil)
	if err != nil {
		t.Fatalf("buildClientConfig error: %v", err)
	}
	if clientCfg.APIType != ai.APITypeAzure {
		t.Errorf("api type = %q, want %q", clientCfg.APIType, ai.APITypeAzure)
	}
}
