package authmodel

// RequestClaims is the nested "claims" object carried inside the signed
// registration request object.
type RequestClaims struct {
	Request  ClaimsRequest  `json:"request"`
	UserInfo ClaimsUserInfo `json:"userinfo"`
	Account  string         `json:"account"`
}

// ClaimsRequest holds the registration-specific request claims.
type ClaimsRequest struct {
	Email        *string `json:"email,omitempty"`
	Username     *string `json:"username,omitempty"`
	AutoregToken bool    `json:"autoreg_token"`
	Nonce        string  `json:"nonce"`
}

// ClaimsUserInfo marks which user-info claims are essential.
type ClaimsUserInfo struct {
	Email UserInfoEmail `json:"email"`
}

// UserInfoEmail flags the email claim as essential.
type UserInfoEmail struct {
	Essential bool `json:"essential"`
}

// NewRequestClaims builds the request-object claims for a registration
// request. The account marker value is backend-fixed.
func NewRequestClaims(nonce string) RequestClaims {
	return RequestClaims{
		Request:  ClaimsRequest{Nonce: nonce},
		UserInfo: ClaimsUserInfo{Email: UserInfoEmail{Essential: true}},
		Account:  "sdsfsdf",
	}
}
