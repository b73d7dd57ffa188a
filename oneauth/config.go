// Package oneauth is the client for the ONE identity provider: it builds
// authorization requests for the external user-agent and exchanges the
// resulting authorization response for provider tokens.
package oneauth

// Config holds the immutable ONE provider settings, supplied once at
// construction.
type Config struct {
	// BaseURL is the provider root; authorize and token paths are fixed
	// relative to it.
	BaseURL string `yaml:"base_url"`

	// ClientID and ClientSecret identify this integration at the token
	// endpoint.
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// RedirectURI receives the authorization response.
	RedirectURI string `yaml:"redirect_uri"`

	// Nonce is reused as both the OIDC nonce and the CSRF state value.
	Nonce string `yaml:"nonce"`

	// Salt is the substring embedded in fetched private keys that must be
	// stripped before the key parses.
	Salt string `yaml:"salt"`

	// Brand identifies the caller at the private-key endpoints.
	Brand string `yaml:"brand"`

	// PrivateKeyEndpoint is the base URL of the private-key token and
	// private-key endpoints used for registration request signing.
	PrivateKeyEndpoint string `yaml:"private_key_endpoint"`

	// PrivateKeyAuthorization is the client secret for the private-key
	// token endpoint.
	PrivateKeyAuthorization string `yaml:"private_key_authorization"`
}
