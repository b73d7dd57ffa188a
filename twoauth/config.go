// Package twoauth is the client for the TWO federation backend: it exchanges
// identity-provider tokens or purchase receipts for TWO session tokens and
// performs logout and token renewal.
package twoauth

// Config holds the immutable TWO backend settings, supplied once at
// construction.
type Config struct {
	// BaseURL is the backend root.
	BaseURL string `yaml:"base_url"`

	// Authorization is the client credential sent verbatim as the
	// Authorization header on every session call. It is also the value
	// persisted as the session record's authorization code.
	Authorization string `yaml:"authorization"`

	// Brand and Source identify the integration in every request body.
	Brand  string `yaml:"brand"`
	Source string `yaml:"source"`

	// DeviceID identifies this installation; optional.
	DeviceID *string `yaml:"device_id"`
}
