package authmodel

// GoogleReceiptLoginRequest logs in with an in-app-purchase token instead of
// an identity-provider credential.
type GoogleReceiptLoginRequest struct {
	PurchaseToken       string  `json:"purchase_token"`
	Brand               string  `json:"brand"`
	Source              string  `json:"source"`
	RespondWithJWT      bool    `json:"respond_with_jwt"`
	DeviceID            *string `json:"device_id"`
	RespondWithUsername bool    `json:"respond_with_username"`
}

// SubmitGoogleReceiptRequest reports a purchase against the current session.
type SubmitGoogleReceiptRequest struct {
	CurrentPurchaseToken  *string `json:"current_purchase_token"`
	PreviousPurchaseToken *string `json:"previous_purchase_token"`
	PackageName           *string `json:"package_name"`
	ProductID             *string `json:"product_id"`
	Brand                 string  `json:"brand"`
	Source                string  `json:"source"`
	RespondWithJWT        bool    `json:"respond_with_jwt"`
	DeviceID              *string `json:"device_id"`
}

// LinkAccountReceiptRequest submits a purchase and links it to a new or
// existing account in the same call.
type LinkAccountReceiptRequest struct {
	Username       *string `json:"username"`
	Password       *string `json:"password"`
	AccountToken   *string `json:"account_token"`
	PurchaseToken  string  `json:"purchase_token"`
	PackageName    *string `json:"package_name"`
	ProductID      string  `json:"product_id"`
	Brand          string  `json:"brand"`
	Source         string  `json:"source"`
	RespondWithJWT bool    `json:"respond_with_jwt"`
	DeviceID       *string `json:"device_id"`
}

// SubmitReceiptData is the shared response shape of the three receipt
// endpoints. UserMessage carries the backend-supplied text shown to the user
// when Success is false.
type SubmitReceiptData struct {
	Success            *bool   `json:"success,omitempty"`
	Status             *string `json:"status,omitempty"`
	IsLinked           bool    `json:"is_linked,omitempty"`
	SessionToken       *string `json:"session_token,omitempty"`
	SessionTokenExpiry *int64  `json:"session_token_expiry,omitempty"`
	SupportToken       *string `json:"support_token,omitempty"`
	EncodedJWT         *string `json:"encoded_jwt,omitempty"`
	Username           *string `json:"username,omitempty"`
	ErrorCode          *int    `json:"error_code,omitempty"`
	UserMessage        *string `json:"user_message,omitempty"`
	ProcessingTimeMS   *string `json:"processing_time_ms,omitempty"`
}

// ToTwoTokenData projects a successful receipt response onto the session
// token shape shared with the identity-federation path.
func (d SubmitReceiptData) ToTwoTokenData() TwoTokenData {
	return TwoTokenData{
		Success:            d.Success,
		Status:             d.Status,
		SessionToken:       d.SessionToken,
		SessionTokenExpiry: d.SessionTokenExpiry,
		SupportToken:       d.SupportToken,
		EncodedJWT:         d.EncodedJWT,
		Username:           d.Username,
		ProcessingTimeMS:   d.ProcessingTimeMS,
	}
}
