// Package auth implements the federated authentication engine: the state
// machine that sequences identity-provider authorization, cross-system token
// federation, refresh, receipt linking and session persistence behind one
// observable state.
package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/devconsole/go-auth-sdk/authmodel"
	"github.com/devconsole/go-auth-sdk/internal/stream"
	"github.com/devconsole/go-auth-sdk/internal/utils"
	"github.com/devconsole/go-auth-sdk/oneauth"
	"github.com/devconsole/go-auth-sdk/session"
	"github.com/devconsole/go-auth-sdk/twoauth"
)

// ErrNullResult is published when the user-agent reported success but handed
// back no payload at all.
var ErrNullResult = errors.New("null authorization result")

// Authorization error tags the engine routes on. Register and sign-in tags
// re-invoke the matching flow; everything else is terminal for the operation.
const (
	tagRegister       = "register"
	tagSignIn         = "signIn"
	tagUsername       = "username"
	tagCancelRegister = "cancel_register"
)

// IdentityClient is the identity-provider capability the engine drives.
type IdentityClient interface {
	BuildLoginRequest() oneauth.AuthorizationRequest
	BuildRegistrationRequest(ctx context.Context) (*oneauth.AuthorizationRequest, error)
	ExchangeAuthorizationResponse(ctx context.Context, response *oneauth.AuthorizationResponse) (*authmodel.OneTokenData, error)
}

// FederationClient is the TWO backend capability the engine drives.
type FederationClient interface {
	Authorization() string
	LoginWithOneToken(ctx context.Context, accessToken string) (*authmodel.TwoTokenData, error)
	Logout(ctx context.Context, request authmodel.TwoLogoutRequest) error
	RenewToken(ctx context.Context, currentFlatToken string) (*authmodel.TwoRenewTokenData, error)
	LoginWithGoogleReceipt(ctx context.Context, purchaseToken string) (*authmodel.SubmitReceiptData, error)
	SubmitGoogleReceipt(ctx context.Context, params twoauth.SubmitReceiptParams) (*authmodel.SubmitReceiptData, error)
	SubmitGoogleReceiptAndLinkAccount(ctx context.Context, params twoauth.LinkAccountParams) (*authmodel.SubmitReceiptData, error)
}

var (
	_ IdentityClient   = (*oneauth.Client)(nil)
	_ FederationClient = (*twoauth.Client)(nil)
)

// Deps holds the engine's injected capabilities.
type Deps struct {
	Identity   IdentityClient
	Federation FederationClient
	Sessions   *session.Manager
}

// Engine is the federated authentication state machine. Operations run in the
// calling goroutine; the published state and the session signals are safe for
// concurrent observation. A second concurrent invocation of an operation is
// neither cancelled nor queued: the last completion wins on the published
// state.
type Engine struct {
	identity   IdentityClient
	federation FederationClient
	sessions   *session.Manager
	state      *stream.Value[State]
	receipts   receiptResultHandler
	log        zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates an Engine from its injected capabilities.
func New(deps Deps, options ...Option) (*Engine, error) {
	if deps.Identity == nil {
		return nil, errors.New("[auth.New] Identity client is required")
	}
	if deps.Federation == nil {
		return nil, errors.New("[auth.New] Federation client is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("[auth.New] Sessions manager is required")
	}

	e := &Engine{
		identity:   deps.Identity,
		federation: deps.Federation,
		sessions:   deps.Sessions,
		state:      stream.NewValue(uninitializedState()),
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(e)
	}
	e.receipts = receiptResultHandler{
		onSession: e.saveSession,
		onError:   e.fail,
	}
	return e, nil
}

// Bootstrap runs the construction-time session check: an expired persisted
// session is refreshed once, and the outcome decides the initial active
// signal.
func (e *Engine) Bootstrap(ctx context.Context) {
	active := true
	if e.sessions.HasExpired() {
		active = e.RefreshSession(ctx)
	}
	e.sessions.SetActive(active)
}

// State returns the current state snapshot.
func (e *Engine) State() State {
	return e.state.Load()
}

// WatchState subscribes to state transitions. The channel receives the
// current state immediately; the cancel function releases the watcher.
func (e *Engine) WatchState() (<-chan State, func()) {
	return e.state.Watch()
}

// CurrentSession returns the persisted session record, or nil.
func (e *Engine) CurrentSession() *session.SessionData {
	return e.sessions.Current()
}

// SessionActive returns the level-triggered active signal.
func (e *Engine) SessionActive() bool {
	return e.sessions.Active()
}

// WatchSessionActive subscribes to the active signal.
func (e *Engine) WatchSessionActive() (<-chan bool, func()) {
	return e.sessions.WatchActive()
}

// SessionEvents subscribes to the edge-triggered session event feed.
func (e *Engine) SessionEvents() (<-chan session.Event, func()) {
	return e.sessions.Events()
}

// Login publishes Loading then the built login authorization request. No
// network call is involved.
func (e *Engine) Login() {
	e.setState(loadingState())
	request := e.identity.BuildLoginRequest()
	e.setState(launchState(&request))
}

// Register publishes Loading, fetches and signs the registration request
// object, then publishes the launch request; any private-key failure fails
// the operation.
func (e *Engine) Register(ctx context.Context) {
	e.setState(loadingState())
	request, err := e.identity.BuildRegistrationRequest(ctx)
	if err != nil {
		e.fail(err)
		return
	}
	e.setState(launchState(request))
}

// HandleAuthorizationResult consumes the user-agent's result for a launched
// authorization request. User-cancelled flows are absorbed silently. Provider
// errors are routed by tag: register and sign-in tags re-invoke the matching
// flow, a cancelled registration and every unknown tag are terminal. A clean
// response is exchanged for identity tokens and federated into a TWO session.
func (e *Engine) HandleAuthorizationResult(ctx context.Context, result oneauth.AuthorizationResult) {
	if result.Code != oneauth.ResultOK {
		return
	}

	if result.Err != nil {
		e.routeAuthorizationError(ctx, result.Err)
		return
	}

	if result.Response == nil {
		e.fail(ErrNullResult)
		return
	}

	e.setState(loadingState())

	oneTokens, err := e.identity.ExchangeAuthorizationResponse(ctx, result.Response)
	if err != nil {
		e.fail(err)
		return
	}

	twoTokens, err := e.federation.LoginWithOneToken(ctx, utils.Value(oneTokens.AccessToken))
	if err != nil {
		e.fail(err)
		return
	}

	e.saveSession(*twoTokens, *oneTokens)
}

func (e *Engine) routeAuthorizationError(ctx context.Context, authErr *oneauth.AuthorizationError) {
	switch authErr.Tag() {
	case tagRegister:
		e.Register(ctx)
	case tagSignIn, tagUsername:
		e.Login()
	case tagCancelRegister:
		e.fail(authErr)
	default:
		e.fail(authErr)
	}
}

// Logout posts the remote logout best-effort and clears the local session
// unconditionally: the record is gone whether or not the backend
// acknowledged.
func (e *Engine) Logout(ctx context.Context) {
	e.setState(loadingState())

	request := authmodel.TwoLogoutRequest{}
	if current := e.sessions.Current(); current != nil {
		request.IDToken = current.OneTokens.IDToken
		request.FlatToken = current.TwoTokens.EncodedJWT
	}

	if err := e.federation.Logout(ctx, request); err != nil {
		e.log.Warn().Err(err).Msg("remote logout failed, clearing local session anyway")
	}

	e.sessions.ClearSession()
	e.setState(loggedOutState())
}

// RefreshSession renews the TWO session sub-fields of the persisted record,
// preserving identity tokens. Without a persisted session it returns false
// and leaves the state untouched. On failure the session is marked inactive
// and false is returned.
func (e *Engine) RefreshSession(ctx context.Context) bool {
	current := e.sessions.Current()
	if current == nil {
		return false
	}

	e.setState(loadingState())

	renewed, err := e.federation.RenewToken(ctx, utils.Value(current.TwoTokens.EncodedJWT))
	if err != nil {
		e.fail(err)
		e.sessions.SetActive(false)
		return false
	}

	updated := *current
	updated.TwoTokens.EncodedJWT = renewed.EncodedJWT
	updated.TwoTokens.SessionToken = renewed.SessionToken
	updated.TwoTokens.SessionTokenExpiry = renewed.SessionTokenExpiry

	e.sessions.SaveSession(&updated)
	e.setState(authenticatedState(&updated))
	return true
}

// LoginWithGoogleReceipt logs in with a purchase token instead of an
// identity-provider credential.
func (e *Engine) LoginWithGoogleReceipt(ctx context.Context, purchaseToken string) {
	e.setState(loadingState())
	e.receipts.handle(e.federation.LoginWithGoogleReceipt(ctx, purchaseToken))
}

// SubmitGoogleReceipt submits a purchase against the current session.
func (e *Engine) SubmitGoogleReceipt(ctx context.Context, params twoauth.SubmitReceiptParams) {
	e.setState(loadingState())
	e.receipts.handle(e.federation.SubmitGoogleReceipt(ctx, params))
}

// SubmitGoogleReceiptAndLinkAccount submits a purchase and links it to a new
// or existing account.
func (e *Engine) SubmitGoogleReceiptAndLinkAccount(ctx context.Context, params twoauth.LinkAccountParams) {
	e.setState(loadingState())
	e.receipts.handle(e.federation.SubmitGoogleReceiptAndLinkAccount(ctx, params))
}

// saveSession persists a record combining both domains' tokens. Only a
// successful federation call reaches here, which keeps the invariant that
// nothing unconfirmed is ever persisted.
func (e *Engine) saveSession(twoTokens authmodel.TwoTokenData, oneTokens authmodel.OneTokenData) {
	data := &session.SessionData{
		Version:           session.SchemaVersion,
		AuthorizationCode: e.federation.Authorization(),
		OneTokens:         oneTokens,
		TwoTokens:         twoTokens,
	}
	e.sessions.SaveSession(data)
	e.setState(authenticatedState(data))
}

func (e *Engine) fail(err error) {
	e.log.Debug().Err(err).Msg("operation failed")
	e.setState(failedState(err))
}

func (e *Engine) setState(s State) {
	e.state.Store(s)
}
