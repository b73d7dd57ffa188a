// Package config loads the CLI configuration file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/devconsole/go-auth-sdk/oneauth"
	"github.com/devconsole/go-auth-sdk/twoauth"
)

// StoreConfig locates the persisted session blob and its key file.
type StoreConfig struct {
	Path    string `yaml:"path"`
	KeyPath string `yaml:"key_path"`
}

// Config is the full CLI configuration.
type Config struct {
	One   oneauth.Config `yaml:"one"`
	Two   twoauth.Config `yaml:"two"`
	Store StoreConfig    `yaml:"store"`
}

// Load reads and validates the YAML configuration at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "[config.Load] read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "[config.Load] parse config file")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.One.BaseURL == "":
		return errors.New("[config] one.base_url is required")
	case c.One.ClientID == "":
		return errors.New("[config] one.client_id is required")
	case c.One.RedirectURI == "":
		return errors.New("[config] one.redirect_uri is required")
	case c.Two.BaseURL == "":
		return errors.New("[config] two.base_url is required")
	case c.Two.Authorization == "":
		return errors.New("[config] two.authorization is required")
	case c.Store.Path == "":
		return errors.New("[config] store.path is required")
	}
	return nil
}
