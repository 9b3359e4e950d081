package provider

import (
	"fmt"
	"strings"

	"github.com/airtrek/concierge/pkg/api"
	"github.com/airtrek/concierge/pkg/config"
)

// Recognized provider names.
const (
	NameOpenAI = "openai"
	NameAzure  = "azure"
	NameOllama = "ollama"
	NameMock   = "mock"
)

// Detect selects the provider for a request.
//
// Order: the request's explicit provider field (case-insensitive) wins;
// then the configured default provider; then configured availability
// (complete Azure settings, then an OpenAI key); finally the mock.
//
// Ollama is never auto-detected. It is reachable only through an
// explicit provider field or a configured default.
func Detect(explicit string, providers config.ProvidersConfig) (string, *api.APIError) {
	if name := strings.ToLower(strings.TrimSpace(explicit)); name != "" {
		switch name {
		case NameOpenAI, NameAzure, NameOllama, NameMock:
			return name, nil
		default:
			return "", api.NewInvalidRequestError("provider",
				fmt.Sprintf("unknown provider %q: must be one of openai, azure, ollama, mock", explicit))
		}
	}

	// Config default counts as explicit; it is validated at load time.
	if providers.Default != "" {
		return strings.ToLower(providers.Default), nil
	}

	if providers.Azure.Complete() {
		return NameAzure, nil
	}

	if providers.OpenAI.APIKey != "" {
		return NameOpenAI, nil
	}

	return NameMock, nil
}
