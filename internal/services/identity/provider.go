package identity

import "context"

// ProviderToken is the result of exchanging an authorization code with an
// external OAuth provider
type ProviderToken struct {
	AccessToken    string
	ExternalUserID string
}

// Profile is the provider's view of the authenticated user
type Profile struct {
	ExternalUserID string
	FirstName      string
	LastName       string
	Domain         string
	PhotoURL       string
}

// Provider abstracts an external OAuth identity provider
type Provider interface {
	// Name is a short provider code used to derive usernames and
	// federated ids (e.g. "vk")
	Name() string

	// ExchangeCode exchanges an authorization code for an access token
	ExchangeCode(ctx context.Context, code string) (*ProviderToken, error)

	// FetchProfile fetches the provider profile for the token's user
	FetchProfile(ctx context.Context, token *ProviderToken) (*Profile, error)
}
