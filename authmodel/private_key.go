package authmodel

// PrivateKeyTokenRequest obtains the short-lived access token that gates the
// brand private-key endpoint.
type PrivateKeyTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// PrivateKeyTokenData is the private-key-token endpoint response. Success is a
// business-level flag: the call can fail on a 200.
type PrivateKeyTokenData struct {
	AccessToken *string `json:"access_token,omitempty"`
	ExpiresIn   *int    `json:"expires_in,omitempty"`
	GrantType   *string `json:"grant_type,omitempty"`
	Success     *bool   `json:"success,omitempty"`
	Error       *string `json:"error,omitempty"`
}

// PrivateKeyData is the brand private-key endpoint response. PrivateKey is a
// base64 wrapping of a salted PEM body.
type PrivateKeyData struct {
	PrivateKey *string `json:"private_key,omitempty"`
	Success    *bool   `json:"success,omitempty"`
	Error      *string `json:"error,omitempty"`
}
