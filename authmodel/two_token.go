package authmodel

// TwoLoginRequest federates a ONE access token into a TWO session.
type TwoLoginRequest struct {
	AccessToken         string  `json:"access_token"`
	Brand               string  `json:"brand"`
	Source              string  `json:"source"`
	RespondWithJWT      bool    `json:"respond_with_jwt"`
	DeviceID            *string `json:"device_id"`
	RespondWithUsername bool    `json:"respond_with_username"`
}

// TwoTokenData is the TWO login response. EncodedJWT carries the expiry claim
// used for local session-expiry checks.
type TwoTokenData struct {
	Success            *bool   `json:"success,omitempty"`
	Status             *string `json:"status,omitempty"`
	SessionToken       *string `json:"session_token,omitempty"`
	SessionTokenExpiry *int64  `json:"session_token_expiry,omitempty"`
	SupportToken       *string `json:"support_token,omitempty"`
	EncodedJWT         *string `json:"encoded_jwt,omitempty"`
	Username           *string `json:"username,omitempty"`
	ProcessingTimeMS   *string `json:"processing_time_ms,omitempty"`
}

// TwoLogoutRequest ends the TWO session. Both tokens may be absent when no
// local session survived; the backend treats that as a no-op.
type TwoLogoutRequest struct {
	IDToken   *string `json:"id_token"`
	FlatToken *string `json:"flat_token"`
}

// TwoRenewTokenRequest exchanges the current flat token for a fresh one.
type TwoRenewTokenRequest struct {
	CurrentFlatToken *string `json:"current_flat_token"`
	DeviceID         *string `json:"device_id"`
}

// TwoRenewTokenData is the renew response. Only the session sub-fields of the
// persisted record are replaced from it; identity tokens are untouched.
type TwoRenewTokenData struct {
	EncodedJWT         *string `json:"encoded_jwt,omitempty"`
	SessionToken       *string `json:"session_token,omitempty"`
	SessionTokenExpiry *int64  `json:"session_token_expiry,omitempty"`
}
