package twoauth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/devconsole/go-auth-sdk/authmodel"
)

// SubmitReceiptParams carries a receipt submission against the current
// session. Optional fields stay nil when the caller has nothing to send.
type SubmitReceiptParams struct {
	CurrentPurchaseToken  *string
	PreviousPurchaseToken *string
	SKU                   string
	PackageName           *string
}

// LinkAccountParams carries a receipt submission that also links a new or
// existing account.
type LinkAccountParams struct {
	PurchaseToken string
	SKU           string
	Username      *string
	Password      *string
	PackageName   *string
	AccountToken  *string
}

// LoginWithGoogleReceipt logs in with a purchase token alone. The response is
// returned as-is; business-level success is judged by the caller's receipt
// handling.
func (c *Client) LoginWithGoogleReceipt(ctx context.Context, purchaseToken string) (*authmodel.SubmitReceiptData, error) {
	request := authmodel.GoogleReceiptLoginRequest{
		PurchaseToken:       purchaseToken,
		Brand:               c.cfg.Brand,
		Source:              c.cfg.Source,
		RespondWithJWT:      true,
		DeviceID:            c.cfg.DeviceID,
		RespondWithUsername: true,
	}
	return c.postReceipt(ctx, pathReceiptLogin, request)
}

// SubmitGoogleReceipt reports a purchase, optionally superseding a previous
// one.
func (c *Client) SubmitGoogleReceipt(ctx context.Context, params SubmitReceiptParams) (*authmodel.SubmitReceiptData, error) {
	request := authmodel.SubmitGoogleReceiptRequest{
		CurrentPurchaseToken:  params.CurrentPurchaseToken,
		PreviousPurchaseToken: params.PreviousPurchaseToken,
		PackageName:           params.PackageName,
		ProductID:             &params.SKU,
		Brand:                 c.cfg.Brand,
		Source:                c.cfg.Source,
		RespondWithJWT:        true,
		DeviceID:              c.cfg.DeviceID,
	}
	return c.postReceipt(ctx, pathReceipt, request)
}

// SubmitGoogleReceiptAndLinkAccount submits a purchase and links it to an
// account in the same call.
func (c *Client) SubmitGoogleReceiptAndLinkAccount(ctx context.Context, params LinkAccountParams) (*authmodel.SubmitReceiptData, error) {
	request := authmodel.LinkAccountReceiptRequest{
		Username:       params.Username,
		Password:       params.Password,
		AccountToken:   params.AccountToken,
		PurchaseToken:  params.PurchaseToken,
		PackageName:    params.PackageName,
		ProductID:      params.SKU,
		Brand:          c.cfg.Brand,
		Source:         c.cfg.Source,
		RespondWithJWT: true,
		DeviceID:       c.cfg.DeviceID,
	}
	return c.postReceipt(ctx, pathReceiptLink, request)
}

// postReceipt is the single funnel for the three receipt endpoints.
func (c *Client) postReceipt(ctx context.Context, path string, request any) (*authmodel.SubmitReceiptData, error) {
	var receipt authmodel.SubmitReceiptData
	if err := c.http.PostJSON(ctx, c.url(path), c.cfg.Authorization, request, &receipt); err != nil {
		return nil, errors.Wrapf(err, "[postReceipt] %s", path)
	}
	return &receipt, nil
}
