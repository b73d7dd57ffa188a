package twoauth

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/devconsole/go-auth-sdk/authmodel"
	"github.com/devconsole/go-auth-sdk/internal/httpx"
	"github.com/devconsole/go-auth-sdk/internal/utils"
)

// Backend endpoint paths, fixed by the backend.
const (
	pathLogin        = "user/login"
	pathLogout       = "user/logout"
	pathRenewToken   = "user/renew_token"
	pathReceiptLogin = "iap/googleplay_receipt_login"
	pathReceiptLink  = "iap/submit_googleplay_receipt_and_link_account"
	pathReceipt      = "iap/submit_googleplay_receipt"
)

// Client talks to the TWO federation backend. Transport failures are caught
// here and returned as errors; nothing crosses the boundary as a panic.
type Client struct {
	cfg  Config
	http *httpx.Client
	log  zerolog.Logger
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

// NewClient creates a TWO backend client.
func NewClient(cfg Config, options ...Option) *Client {
	c := &Client{
		cfg:  cfg,
		http: httpx.New(),
		log:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Authorization returns the client credential persisted with every session
// record.
func (c *Client) Authorization() string {
	return c.cfg.Authorization
}

// LoginWithOneToken federates a ONE access token into a TWO session. A
// payload reporting success=false is a failure even on HTTP 200.
func (c *Client) LoginWithOneToken(ctx context.Context, accessToken string) (*authmodel.TwoTokenData, error) {
	request := authmodel.TwoLoginRequest{
		AccessToken:         accessToken,
		Brand:               c.cfg.Brand,
		Source:              c.cfg.Source,
		RespondWithJWT:      true,
		DeviceID:            c.cfg.DeviceID,
		RespondWithUsername: true,
	}

	var tokens authmodel.TwoTokenData
	if err := c.http.PostJSON(ctx, c.url(pathLogin), c.cfg.Authorization, request, &tokens); err != nil {
		return nil, errors.Wrap(err, "[LoginWithOneToken] login endpoint")
	}
	if !utils.Value(tokens.Success) {
		return nil, &BackendError{Status: utils.Value(tokens.Status)}
	}
	return &tokens, nil
}

// Logout posts the logout request. Callers clear the local session regardless
// of the result; the error only says whether the backend acknowledged.
func (c *Client) Logout(ctx context.Context, request authmodel.TwoLogoutRequest) error {
	if err := c.http.PostJSON(ctx, c.url(pathLogout), c.cfg.Authorization, request, nil); err != nil {
		return errors.Wrap(err, "[Logout] logout endpoint")
	}
	return nil
}

// RenewToken exchanges the current flat token for fresh session sub-fields.
// An empty current token means nothing is persisted and fails fast with
// ErrNoCurrentSession.
func (c *Client) RenewToken(ctx context.Context, currentFlatToken string) (*authmodel.TwoRenewTokenData, error) {
	if currentFlatToken == "" {
		return nil, ErrNoCurrentSession
	}

	request := authmodel.TwoRenewTokenRequest{
		CurrentFlatToken: &currentFlatToken,
		DeviceID:         c.cfg.DeviceID,
	}

	var renewed authmodel.TwoRenewTokenData
	if err := c.http.PostJSON(ctx, c.url(pathRenewToken), c.cfg.Authorization, request, &renewed); err != nil {
		return nil, errors.Wrap(err, "[RenewToken] renew endpoint")
	}
	return &renewed, nil
}

func (c *Client) url(path string) string {
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + path
}
