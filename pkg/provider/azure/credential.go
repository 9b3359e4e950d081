package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// tokenFetcher acquires a bearer token for the given scope. Split out
// as a function value so tests can run without platform identity
// infrastructure.
type tokenFetcher func(ctx context.Context, clientID, scope string) (string, error)

// fetchManagedIdentityToken acquires a short-lived bearer token from
// the platform's managed identity endpoint, scoped to the configured
// audience. Called once per request; the platform endpoint caches
// tokens internally, so no caching layer is kept here.
func fetchManagedIdentityToken(ctx context.Context, clientID, scope string) (string, error) {
	cred, err := azidentity.NewManagedIdentityCredential(&azidentity.ManagedIdentityCredentialOptions{
		ID: azidentity.ClientID(clientID),
	})
	if err != nil {
		return "", err
	}

	token, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{scope}})
	if err != nil {
		return "", err
	}
	return token.Token, nil
}
