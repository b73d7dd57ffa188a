package httpx_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devconsole/go-auth-sdk/internal/httpx"
)

type payload struct {
	Name string `json:"name"`
}

func TestPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		var in payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "request", in.Name)

		json.NewEncoder(w).Encode(payload{Name: "response"})
	}))
	defer server.Close()

	var out payload
	err := httpx.New().PostJSON(context.Background(), server.URL, "Bearer token", payload{Name: "request"}, &out)
	require.NoError(t, err)
	require.Equal(t, "response", out.Name)
}

func TestPostJSONOmitsEmptyAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		require.False(t, present)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := httpx.New().PostJSON(context.Background(), server.URL, "", payload{}, nil)
	require.NoError(t, err)
}

func TestPostJSONNilOutDiscardsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"ignored"}`))
	}))
	defer server.Close()

	err := httpx.New().PostJSON(context.Background(), server.URL, "", payload{}, nil)
	require.NoError(t, err)
}

func TestPostJSONStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_request"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	err := httpx.New().PostJSON(context.Background(), server.URL, "", payload{}, nil)

	var statusErr *httpx.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	require.Contains(t, statusErr.Body, "invalid_request")
}

func TestPostJSONDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	var out payload
	err := httpx.New().PostJSON(context.Background(), server.URL, "", payload{}, &out)
	require.Error(t, err)
}

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "value", r.URL.Query().Get("key"))
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(payload{Name: "response"})
	}))
	defer server.Close()

	var out payload
	err := httpx.New().GetJSON(context.Background(), server.URL, "Bearer token", url.Values{"key": {"value"}}, &out)
	require.NoError(t, err)
	require.Equal(t, "response", out.Name)
}

func TestGetJSONWithoutQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := httpx.New().GetJSON(context.Background(), server.URL, "", nil, nil)
	require.NoError(t, err)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := httpx.New().PostJSON(ctx, "http://unused.example.com", "", payload{}, nil)
	require.Error(t, err)
}
