// Package authmodel defines the typed wire payloads exchanged with the ONE
// identity provider and the TWO federation backend. Field names are
// backend-fixed and must round-trip exactly; optional fields are pointers so
// absent and zero values stay distinguishable.
package authmodel

// OneTokenRequest is the authorization-code grant sent to the ONE token
// endpoint after the user-agent flow completes.
type OneTokenRequest struct {
	Code         string `json:"code"`
	GrantType    string `json:"grant_type"`
	RedirectURI  string `json:"redirect_uri"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Scope        string `json:"scope"`
	CodeVerifier string `json:"code_verifier"`
}

// OneTokenData is the ONE token endpoint response. Every field is optional:
// the provider omits what it did not issue.
type OneTokenData struct {
	AccessToken  *string `json:"access_token,omitempty"`
	RefreshToken *string `json:"refresh_token,omitempty"`
	IDToken      *string `json:"id_token,omitempty"`
	TokenType    *string `json:"token_type,omitempty"`
	ExpiresIn    *int64  `json:"expires_in,omitempty"`
}
