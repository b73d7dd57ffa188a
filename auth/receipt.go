package auth

import (
	"github.com/devconsole/go-auth-sdk/authmodel"
	"github.com/devconsole/go-auth-sdk/internal/utils"
	"github.com/devconsole/go-auth-sdk/twoauth"
)

// receiptResultHandler is the single validation funnel for the three receipt
// flows. A payload reporting success maps into a session with empty identity
// tokens (no identity-provider federation happened on this path); a negative
// payload surfaces the backend's user-facing message.
type receiptResultHandler struct {
	onSession func(two authmodel.TwoTokenData, one authmodel.OneTokenData)
	onError   func(err error)
}

func (h receiptResultHandler) handle(receipt *authmodel.SubmitReceiptData, err error) {
	if err != nil {
		h.onError(err)
		return
	}
	if !utils.Value(receipt.Success) {
		h.onError(&twoauth.BackendError{
			Status:  utils.Value(receipt.Status),
			Code:    utils.Value(receipt.ErrorCode),
			Message: utils.Value(receipt.UserMessage),
		})
		return
	}
	h.onSession(receipt.ToTwoTokenData(), authmodel.OneTokenData{})
}
