package oneauth

import "errors"

var (
	ErrEmptyAuthorizationResponse = errors.New("empty authorization response")
	ErrMissingCodeVerifier        = errors.New("authorization response has no code verifier")
	ErrMissingAuthorizationCode   = errors.New("authorization response has no authorization code")
	ErrPrivateKeyTokenRejected    = errors.New("private key token request rejected")
	ErrPrivateKeyRejected         = errors.New("private key request rejected")
)
