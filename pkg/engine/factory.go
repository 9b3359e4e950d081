package engine

import (
	"context"
	"fmt"

	"github.com/airtrek/concierge/pkg/api"
	"github.com/airtrek/concierge/pkg/config"
	"github.com/airtrek/concierge/pkg/provider"
	"github.com/airtrek/concierge/pkg/provider/azure"
	"github.com/airtrek/concierge/pkg/provider/mock"
	"github.com/airtrek/concierge/pkg/provider/ollama"
	"github.com/airtrek/concierge/pkg/provider/openai"
)

// newProvider is the default ProviderFactory. Constructor failures are
// configuration errors by definition: the name already passed detection,
// so the only way to fail here is missing or inconsistent settings.
func newProvider(ctx context.Context, name string, providers config.ProvidersConfig) (provider.Provider, error) {
	switch name {
	case provider.NameOpenAI:
		return openai.New(openai.Config{
			APIKey:  providers.OpenAI.APIKey,
			BaseURL: providers.OpenAI.BaseURL,
			Model:   providers.OpenAI.Model,
		})
	case provider.NameAzure:
		return azure.New(ctx, azure.Config{
			Endpoint:   providers.Azure.Endpoint,
			Deployment: providers.Azure.Deployment,
			APIVersion: providers.Azure.APIVersion,
			APIKey:     providers.Azure.APIKey,
			ClientID:   providers.Azure.ClientID,
			Scope:      providers.Azure.Scope,
		})
	case provider.NameOllama:
		return ollama.New(ollama.Config{
			BaseURL: providers.Ollama.BaseURL,
			Model:   providers.Ollama.Model,
		})
	case provider.NameMock:
		return mock.New(mock.Config{
			TokenDelay: providers.Mock.TokenDelay,
		}), nil
	default:
		return nil, api.NewServerError(fmt.Sprintf("no backend registered for provider %q", name))
	}
}
