// Package azure adapts the Azure OpenAI streaming API to the provider
// contract. It differs from the plain openai adapter only in client
// construction: endpoint plus deployment mapping, versioned API, and
// either key or managed-identity bearer auth.
package azure

import (
	"context"

	ai "github.com/sashabaranov/go-openai"

	"github.com/airtrek/concierge/pkg/api"
	"github.com/airtrek/concierge/pkg/debug"
	"github.com/airtrek/concierge/pkg/provider"
	"github.com/airtrek/concierge/pkg/provider/openaicompat"
)

// AzureProvider implements provider.Provider against Azure OpenAI.
type AzureProvider struct {
	cfg    Config
	client *ai.Client
}

var _ provider.Provider = (*AzureProvider)(nil)

// New creates a new AzureProvider. Missing endpoint, deployment, or
// api version are configuration errors; a failed managed-identity
// token acquisition is an auth error. Both are request-time failures
// surfaced before any stream is opened.
//
// New takes a context because managed-identity tokens are acquired per
// request, at adapter construction time.
func New(ctx context.Context, cfg Config) (*AzureProvider, error) {
	if cfg.Endpoint == "" {
		return nil, api.NewConfigurationError("azure: endpoint is not set")
	}
	if cfg.Deployment == "" {
		return nil, api.NewConfigurationError("azure: deployment is not set")
	}
	if cfg.APIVersion == "" {
		return nil, api.NewConfigurationError("azure: api version is not set")
	}
	if cfg.Scope == "" {
		cfg.Scope = DefaultScope
	}

	clientCfg, err := buildClientConfig(ctx, cfg, fetchManagedIdentityToken)
	if err != nil {
		return nil, err
	}

	return &AzureProvider{
		cfg:    cfg,
		client: ai.NewClientWithConfig(clientCfg),
	}, nil
}

// buildClientConfig resolves auth material and assembles the SDK client
// configuration. Managed identity wins over a static key when both are
// configured, matching the detection rule that either one completes the
// Azure setup.
func buildClientConfig(ctx context.Context, cfg Config, fetch tokenFetcher) (ai.ClientConfig, error) {
	var clientCfg ai.ClientConfig

	switch {
	case cfg.ClientID != "":
		token, err := fetch(ctx, cfg.ClientID, cfg.Scope)
		if err != nil {
			return clientCfg, api.NewAuthError("azure: acquiring managed identity token: " + err.Error())
		}
		clientCfg = ai.DefaultAzureConfig(token, cfg.Endpoint)
		clientCfg.APIType = ai.APITypeAzureAD
	case cfg.APIKey != "":
		clientCfg = ai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	default:
		return clientCfg, api.NewConfigurationError("azure: no api key or managed identity client id is set")
	}

	clientCfg.APIVersion = cfg.APIVersion
	deployment := cfg.Deployment
	clientCfg.AzureModelMapperFunc = func(string) string { return deployment }
	return clientCfg, nil
}

// Name returns the provider identifier.
func (p *AzureProvider) Name() string {
	return provider.NameAzure
}

// Stream opens one streaming completion call against the deployment.
func (p *AzureProvider) Stream(ctx context.Context, req *provider.Request) (<-chan provider.Event, error) {
	// The SDK maps any model name to the configured deployment; the
	// request's model is kept for logging fidelity only.
	model := req.Model
	if model == "" {
		model = p.cfg.Deployment
	}

	debug.Log("providers", "opening stream", "provider", p.Name(), "deployment", p.cfg.Deployment)

	stream, err := p.client.CreateChatCompletionStream(ctx, openaicompat.ChatRequest(model, req))
	if err != nil {
		return nil, api.NewUpstreamError("azure: opening stream: " + err.Error())
	}

	ch := make(chan provider.Event)
	go func() {
		defer close(ch)
		defer stream.Close()
		openaicompat.Forward(ctx, p.Name(), stream, ch)
	}()
	return ch, nil
}

// Close releases provider resources.
func (p *AzureProvider) Close() error {
	return nil
}
