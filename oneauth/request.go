package oneauth

import (
	"strings"

	"golang.org/x/oauth2"
)

// Provider endpoint paths and protocol constants, fixed by the backend.
const (
	pathAuthorize       = "login/direct/one/authorize"
	pathToken           = "login/direct/one/token"
	pathPrivateKeyToken = "get_token"
	pathPrivateKey      = "get_brand_pk"

	// LoginScopes is the scope set for the plain login flow.
	LoginScopes = "openid offline_access"
	// RegisterScopes is the scope set claimed inside the registration
	// request object.
	RegisterScopes = "openid login offline_access"

	// RegisterState is the fixed state marker claimed inside the
	// registration request object.
	RegisterState = "register"

	responseTypeCode  = "code"
	responseModeQuery = "query"
	grantType         = "authorization_code"
	registerPrompt    = "create"
	registerMaxAge    = "86400"
)

// AuthorizationRequest describes an authorization request for the external
// user-agent capability. It carries values only; AuthorizationURL renders it
// into a launchable URL.
type AuthorizationRequest struct {
	ClientID     string
	RedirectURI  string
	Scope        string
	Nonce        string
	State        string
	ResponseMode string
	ExtraParams  map[string]string
}

// AuthorizationURL renders req into the provider authorize URL. Additional
// options (for example a PKCE challenge) are appended last and may override
// earlier parameters.
func (c *Client) AuthorizationURL(req AuthorizationRequest, opts ...oauth2.AuthCodeOption) string {
	conf := oauth2.Config{
		ClientID:    req.ClientID,
		RedirectURL: req.RedirectURI,
		Scopes:      strings.Fields(req.Scope),
		Endpoint: oauth2.Endpoint{
			AuthURL:  joinURL(c.cfg.BaseURL, pathAuthorize),
			TokenURL: joinURL(c.cfg.BaseURL, pathToken),
		},
	}

	options := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("nonce", req.Nonce),
		oauth2.SetAuthURLParam("response_mode", req.ResponseMode),
	}
	for k, v := range req.ExtraParams {
		options = append(options, oauth2.SetAuthURLParam(k, v))
	}
	options = append(options, opts...)

	return conf.AuthCodeURL(req.State, options...)
}

func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
