// Package config loads the settings needed to build a suggestions client.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/insightapi/suggestions-client-go/location"
	"github.com/insightapi/suggestions-client-go/suggestions"
)

// AuthConfig holds OAuth2 client credentials. Auth is disabled when ClientID is empty.
type AuthConfig struct {
	TokenURL     string   `mapstructure:"token_url" yaml:"token_url"`
	ClientID     string   `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret string   `mapstructure:"client_secret" yaml:"client_secret"`
	Scopes       []string `mapstructure:"scopes" yaml:"scopes"`
}

type Config struct {
	// Locations maps stack identifiers (e.g. "insight:api") to base URLs.
	Locations      map[string]string `mapstructure:"locations" yaml:"locations"`
	ServiceVersion string            `mapstructure:"service_version" yaml:"service_version"`
	Timeout        time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	UserAgent      string            `mapstructure:"user_agent" yaml:"user_agent"`
	Auth           AuthConfig        `mapstructure:"auth" yaml:"auth"`
}

var envBindings = map[string][]string{
	"locations.insight:api":     {"SUGGESTIONS_INSIGHT_API_URL"},
	"locations.global:api":      {"SUGGESTIONS_GLOBAL_API_URL"},
	"locations.integration:api": {"SUGGESTIONS_INTEGRATION_API_URL"},
	"service_version":           {"SUGGESTIONS_SERVICE_VERSION"},
	"timeout":                   {"SUGGESTIONS_TIMEOUT"},
	"user_agent":                {"SUGGESTIONS_USER_AGENT"},
	"auth.token_url":            {"SUGGESTIONS_AUTH_TOKEN_URL"},
	"auth.client_id":            {"SUGGESTIONS_AUTH_CLIENT_ID"},
	"auth.client_secret":        {"SUGGESTIONS_AUTH_CLIENT_SECRET"},
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("service_version", suggestions.DefaultServiceVersion)
	v.SetDefault("timeout", 30*time.Second)

	for key, envs := range envBindings {
		if err := v.BindEnv(slices.Insert(envs, 0, key)...); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Load reads the YAML file at filePath when it exists. Environment variables
// override values from the file. An empty filePath loads from the environment only.
func Load(filePath string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", filePath, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Locations[string(location.InsightAPI)] == "" {
		return fmt.Errorf("locations.%s is required", location.InsightAPI)
	}
	if _, err := suggestions.NormalizeVersion(c.ServiceVersion); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Auth.ClientID != "" && c.Auth.TokenURL == "" {
		return errors.New("auth.token_url is required when auth.client_id is set")
	}
	return nil
}

// Table builds the location table from Locations.
func (c *Config) Table() (*location.Table, error) {
	entries := make(map[location.Stack]string, len(c.Locations))
	for stack, baseURL := range c.Locations {
		if baseURL == "" {
			continue
		}
		entries[location.Stack(stack)] = baseURL
	}
	return location.NewTable(entries)
}

// TokenSource returns a client credentials token source, or nil when auth is disabled.
func (c *Config) TokenSource(ctx context.Context) oauth2.TokenSource {
	if c.Auth.ClientID == "" {
		return nil
	}
	cc := &clientcredentials.Config{
		ClientID:     c.Auth.ClientID,
		ClientSecret: c.Auth.ClientSecret,
		TokenURL:     c.Auth.TokenURL,
		Scopes:       c.Auth.Scopes,
	}
	return cc.TokenSource(ctx)
}
