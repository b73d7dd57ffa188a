package twoauth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devconsole/go-auth-sdk/authmodel"
	"github.com/devconsole/go-auth-sdk/internal/utils"
	"github.com/devconsole/go-auth-sdk/twoauth"
)

func TestLoginWithGoogleReceipt(t *testing.T) {
	var received authmodel.GoogleReceiptLoginRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/iap/googleplay_receipt_login", r.URL.Path)
		require.Equal(t, testAuthorization, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(authmodel.SubmitReceiptData{
			Success:      utils.Ptr(true),
			SessionToken: utils.Ptr("two-session"),
			EncodedJWT:   utils.Ptr("two-jwt"),
		})
	}))
	defer server.Close()

	receipt, err := newTestClient(server.URL).LoginWithGoogleReceipt(context.Background(), "purchase-token")
	require.NoError(t, err)
	require.True(t, utils.Value(receipt.Success))
	require.Equal(t, "two-session", utils.Value(receipt.SessionToken))

	require.Equal(t, "purchase-token", received.PurchaseToken)
	require.Equal(t, testBrand, received.Brand)
	require.True(t, received.RespondWithJWT)
	require.True(t, received.RespondWithUsername)
}

// A rejected receipt still decodes cleanly; judging success is the caller's
// job, not the transport's.
func TestLoginWithGoogleReceiptReturnsRejectionAsData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(authmodel.SubmitReceiptData{
			Success:     utils.Ptr(false),
			ErrorCode:   utils.Ptr(4821),
			UserMessage: utils.Ptr("This purchase has already been used."),
		})
	}))
	defer server.Close()

	receipt, err := newTestClient(server.URL).LoginWithGoogleReceipt(context.Background(), "purchase-token")
	require.NoError(t, err)
	require.False(t, utils.Value(receipt.Success))
	require.Equal(t, 4821, utils.Value(receipt.ErrorCode))
	require.Equal(t, "This purchase has already been used.", utils.Value(receipt.UserMessage))
}

func TestSubmitGoogleReceipt(t *testing.T) {
	var received authmodel.SubmitGoogleReceiptRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/iap/submit_googleplay_receipt", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(authmodel.SubmitReceiptData{Success: utils.Ptr(true)})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SubmitGoogleReceipt(context.Background(), twoauth.SubmitReceiptParams{
		CurrentPurchaseToken:  utils.Ptr("current-token"),
		PreviousPurchaseToken: utils.Ptr("previous-token"),
		SKU:                   "sku-monthly",
		PackageName:           utils.Ptr("com.example.app"),
	})
	require.NoError(t, err)

	require.Equal(t, "current-token", utils.Value(received.CurrentPurchaseToken))
	require.Equal(t, "previous-token", utils.Value(received.PreviousPurchaseToken))
	require.Equal(t, "sku-monthly", utils.Value(received.ProductID))
	require.Equal(t, "com.example.app", utils.Value(received.PackageName))
	require.True(t, received.RespondWithJWT)
}

func TestSubmitGoogleReceiptAndLinkAccount(t *testing.T) {
	var received authmodel.LinkAccountReceiptRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/iap/submit_googleplay_receipt_and_link_account", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(authmodel.SubmitReceiptData{
			Success:  utils.Ptr(true),
			IsLinked: true,
		})
	}))
	defer server.Close()

	receipt, err := newTestClient(server.URL).SubmitGoogleReceiptAndLinkAccount(context.Background(), twoauth.LinkAccountParams{
		PurchaseToken: "purchase-token",
		SKU:           "sku-monthly",
		Username:      utils.Ptr("user@example.com"),
		Password:      utils.Ptr("secret"),
	})
	require.NoError(t, err)
	require.True(t, receipt.IsLinked)

	require.Equal(t, "purchase-token", received.PurchaseToken)
	require.Equal(t, "sku-monthly", received.ProductID)
	require.Equal(t, "user@example.com", utils.Value(received.Username))
	require.Equal(t, "secret", utils.Value(received.Password))
}
