package oneauth

import "fmt"

// ResultCode mirrors the external user-agent's outcome for the launched
// authorization request.
type ResultCode int

const (
	// ResultOK means the user-agent completed and returned a payload.
	ResultOK ResultCode = iota
	// ResultCanceled means the user abandoned the flow; the engine absorbs
	// these silently.
	ResultCanceled
)

// AuthorizationResult is the payload handed back by the user-agent
// capability. Exactly one of Response and Err is set when Code is ResultOK;
// both nil means the user-agent returned nothing.
type AuthorizationResult struct {
	Code     ResultCode
	Response *AuthorizationResponse
	Err      *AuthorizationError
}

// AuthorizationResponse is a successful authorization response: the code to
// exchange plus the PKCE verifier that accompanied the request.
type AuthorizationResponse struct {
	AuthorizationCode string
	CodeVerifier      string
	State             string
}

// AuthorizationError is a provider-reported authorization failure. The
// description doubles as the routing tag the engine classifies on.
type AuthorizationError struct {
	Code        int
	Description string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization error %d: %s", e.Code, e.Description)
}

// Tag returns the routing tag carried in the error description.
func (e *AuthorizationError) Tag() string {
	return e.Description
}
