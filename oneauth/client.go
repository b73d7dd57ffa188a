package oneauth

import (
	"context"
	"net/url"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/devconsole/go-auth-sdk/authmodel"
	"github.com/devconsole/go-auth-sdk/internal/httpx"
	"github.com/devconsole/go-auth-sdk/internal/utils"
)

// Client talks to the ONE identity provider. Transport failures never escape
// as panics or raw HTTP details; every operation returns an error the engine
// can surface as a failed state.
type Client struct {
	cfg      Config
	http     *httpx.Client
	pkTokens *ttlcache.Cache[string, string]
	nowTime  func() time.Time
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport helper.
func WithHTTPClient(hc *httpx.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Client) {
		c.nowTime = nowFunc
	}
}

// NewClient creates a ONE provider client.
func NewClient(cfg Config, options ...Option) *Client {
	c := &Client{
		cfg:      cfg,
		http:     httpx.New(),
		pkTokens: ttlcache.New(ttlcache.WithDisableTouchOnHit[string, string]()),
		nowTime:  time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// BuildLoginRequest builds the deterministic login authorization request. The
// configured nonce doubles as the CSRF state value.
func (c *Client) BuildLoginRequest() AuthorizationRequest {
	return AuthorizationRequest{
		ClientID:     c.cfg.ClientID,
		RedirectURI:  c.cfg.RedirectURI,
		Scope:        LoginScopes,
		Nonce:        c.cfg.Nonce,
		State:        c.cfg.Nonce,
		ResponseMode: responseModeQuery,
	}
}

// BuildRegistrationRequest builds the registration authorization request. It
// first fetches the brand private key (a token fetch then a bearer-gated key
// fetch) and signs the registration request object with it; failure at either
// step fails the whole operation, no request is returned without a signed
// object.
func (c *Client) BuildRegistrationRequest(ctx context.Context) (*AuthorizationRequest, error) {
	pkToken, err := c.fetchPrivateKeyToken(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[BuildRegistrationRequest] fetch private key token")
	}

	keyResource, err := c.fetchPrivateKey(ctx, pkToken)
	if err != nil {
		return nil, errors.Wrap(err, "[BuildRegistrationRequest] fetch private key")
	}

	requestObject, err := c.signRequestObject(keyResource, c.registerExtraParams())
	if err != nil {
		return nil, errors.Wrap(err, "[BuildRegistrationRequest] sign request object")
	}

	return &AuthorizationRequest{
		ClientID:     c.cfg.ClientID,
		RedirectURI:  c.cfg.RedirectURI,
		Scope:        LoginScopes,
		Nonce:        c.cfg.Nonce,
		State:        c.cfg.Nonce,
		ResponseMode: responseModeQuery,
		ExtraParams:  map[string]string{"request": requestObject},
	}, nil
}

// ExchangeAuthorizationResponse exchanges an authorization response for
// provider tokens via the authorization-code grant. The PKCE verifier and the
// authorization code must both be present; each absence is a distinct error.
func (c *Client) ExchangeAuthorizationResponse(ctx context.Context, response *AuthorizationResponse) (*authmodel.OneTokenData, error) {
	if response == nil {
		return nil, ErrEmptyAuthorizationResponse
	}
	if response.CodeVerifier == "" {
		return nil, ErrMissingCodeVerifier
	}
	if response.AuthorizationCode == "" {
		return nil, ErrMissingAuthorizationCode
	}

	request := authmodel.OneTokenRequest{
		Code:         response.AuthorizationCode,
		GrantType:    grantType,
		RedirectURI:  c.cfg.RedirectURI,
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		Scope:        LoginScopes,
		CodeVerifier: response.CodeVerifier,
	}

	var tokens authmodel.OneTokenData
	if err := c.http.PostJSON(ctx, joinURL(c.cfg.BaseURL, pathToken), "", request, &tokens); err != nil {
		return nil, errors.Wrap(err, "[ExchangeAuthorizationResponse] token endpoint")
	}
	return &tokens, nil
}

// fetchPrivateKeyToken obtains the short-lived access token for the
// private-key endpoint. Tokens are cached per brand for their advertised
// lifetime so a register retry does not repeat the first step.
func (c *Client) fetchPrivateKeyToken(ctx context.Context) (string, error) {
	if item := c.pkTokens.Get(c.cfg.Brand); item != nil {
		return item.Value(), nil
	}

	request := authmodel.PrivateKeyTokenRequest{
		ClientID:     c.cfg.Brand,
		ClientSecret: c.cfg.PrivateKeyAuthorization,
	}

	var data authmodel.PrivateKeyTokenData
	if err := c.http.PostJSON(ctx, joinURL(c.cfg.PrivateKeyEndpoint, pathPrivateKeyToken), "", request, &data); err != nil {
		return "", err
	}
	if !utils.Value(data.Success) {
		if msg := utils.Value(data.Error); msg != "" {
			return "", errors.Wrap(ErrPrivateKeyTokenRejected, msg)
		}
		return "", ErrPrivateKeyTokenRejected
	}

	token := utils.Value(data.AccessToken)
	if ttl := utils.Value(data.ExpiresIn); ttl > 0 {
		c.pkTokens.Set(c.cfg.Brand, token, time.Duration(ttl)*time.Second)
	}
	return token, nil
}

// fetchPrivateKey obtains the brand signing key, bearer-authenticated with
// the private-key token.
func (c *Client) fetchPrivateKey(ctx context.Context, bearerToken string) (string, error) {
	query := url.Values{"client_id": []string{c.cfg.Brand}}

	var data authmodel.PrivateKeyData
	if err := c.http.GetJSON(ctx, joinURL(c.cfg.PrivateKeyEndpoint, pathPrivateKey), "Bearer "+bearerToken, query, &data); err != nil {
		return "", err
	}
	if !utils.Value(data.Success) {
		if msg := utils.Value(data.Error); msg != "" {
			return "", errors.Wrap(ErrPrivateKeyRejected, msg)
		}
		return "", ErrPrivateKeyRejected
	}
	return utils.Value(data.PrivateKey), nil
}
