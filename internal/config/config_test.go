package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devconsole/go-auth-sdk/internal/config"
	"github.com/devconsole/go-auth-sdk/internal/utils"
)

const validYAML = `
one:
  base_url: https://one.example.com
  client_id: test-client
  client_secret: test-secret
  redirect_uri: app://callback
  nonce: nonce-123
  salt: 25cf6a500517cde1d968f23d424a2632
  brand: test-brand
  private_key_endpoint: https://keys.example.com
  private_key_authorization: pk-authorization
two:
  base_url: https://two.example.com
  authorization: Basic dGVzdDp0ZXN0
  brand: test-brand
  source: android
  device_id: device-1
store:
  path: /var/lib/authcli/session.bin
  key_path: /var/lib/authcli/session.key
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "authcli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	require.Equal(t, "https://one.example.com", cfg.One.BaseURL)
	require.Equal(t, "test-client", cfg.One.ClientID)
	require.Equal(t, "app://callback", cfg.One.RedirectURI)
	require.Equal(t, "test-brand", cfg.One.Brand)
	require.Equal(t, "https://keys.example.com", cfg.One.PrivateKeyEndpoint)

	require.Equal(t, "https://two.example.com", cfg.Two.BaseURL)
	require.Equal(t, "Basic dGVzdDp0ZXN0", cfg.Two.Authorization)
	require.Equal(t, "device-1", utils.Value(cfg.Two.DeviceID))

	require.Equal(t, "/var/lib/authcli/session.bin", cfg.Store.Path)
	require.Equal(t, "/var/lib/authcli/session.key", cfg.Store.KeyPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := config.Load(writeConfig(t, "one: [unclosed"))
	require.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing one base url",
			content: "two:\n  base_url: https://two.example.com\n  authorization: x\nstore:\n  path: /tmp/s\n",
			wantErr: "one.base_url",
		},
		{
			name:    "missing one client id",
			content: "one:\n  base_url: https://one.example.com\ntwo:\n  base_url: https://two.example.com\n  authorization: x\nstore:\n  path: /tmp/s\n",
			wantErr: "one.client_id",
		},
		{
			name:    "missing two authorization",
			content: "one:\n  base_url: https://one.example.com\n  client_id: c\n  redirect_uri: app://cb\ntwo:\n  base_url: https://two.example.com\nstore:\n  path: /tmp/s\n",
			wantErr: "two.authorization",
		},
		{
			name:    "missing store path",
			content: "one:\n  base_url: https://one.example.com\n  client_id: c\n  redirect_uri: app://cb\ntwo:\n  base_url: https://two.example.com\n  authorization: x\n",
			wantErr: "store.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
