package auth

import (
	"github.com/devconsole/go-auth-sdk/oneauth"
	"github.com/devconsole/go-auth-sdk/session"
)

// Phase discriminates the engine's published state.
type Phase int

const (
	// PhaseUninitialized is the state before any operation has run.
	PhaseUninitialized Phase = iota
	// PhaseLoading is re-entered at the start of every operation.
	PhaseLoading
	// PhaseLaunchAuthorization asks the caller to launch the carried
	// authorization request in the external user-agent.
	PhaseLaunchAuthorization
	// PhaseAuthenticated carries the session record of a completed login,
	// registration, refresh or receipt flow.
	PhaseAuthenticated
	// PhaseLoggedOut follows a logout; the local session is gone.
	PhaseLoggedOut
	// PhaseFailed carries the error that ended an operation.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseLoading:
		return "loading"
	case PhaseLaunchAuthorization:
		return "launch_authorization"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseLoggedOut:
		return "logged_out"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// State is the engine's observable state snapshot. Exactly the field matching
// the phase is set: Request for PhaseLaunchAuthorization, Session for
// PhaseAuthenticated, Err for PhaseFailed.
type State struct {
	Phase   Phase
	Request *oneauth.AuthorizationRequest
	Session *session.SessionData
	Err     error
}

func uninitializedState() State {
	return State{Phase: PhaseUninitialized}
}

func loadingState() State {
	return State{Phase: PhaseLoading}
}

func launchState(request *oneauth.AuthorizationRequest) State {
	return State{Phase: PhaseLaunchAuthorization, Request: request}
}

func authenticatedState(data *session.SessionData) State {
	return State{Phase: PhaseAuthenticated, Session: data}
}

func loggedOutState() State {
	return State{Phase: PhaseLoggedOut}
}

func failedState(err error) State {
	return State{Phase: PhaseFailed, Err: err}
}
