package azure

// Config holds configuration for the Azure OpenAI provider adapter.
// Endpoint, Deployment, and APIVersion are required; auth material is
// either a static APIKey or a managed-identity ClientID.
type Config struct {
	// Endpoint is the Azure OpenAI resource URL
	// (e.g. "https://myresource.openai.azure.com").
	Endpoint string

	// Deployment is the model deployment name on the resource.
	Deployment string

	// APIVersion selects the Azure OpenAI API version
	// (e.g. "2024-06-01").
	APIVersion string

	// APIKey is the static resource key (optional when ClientID is set).
	APIKey string

	// ClientID selects a user-assigned managed identity. When set, a
	// bearer token is acquired per request instead of using APIKey.
	ClientID string

	// Scope is the token audience for managed-identity auth.
	// Defaults to the cognitive-services audience.
	Scope string
}

// DefaultScope is the token audience used when Config.Scope is empty.
const DefaultScope = "https://cognitiveservices.azure.com/.default"
