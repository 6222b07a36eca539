package upstream

import (
	"errors"
	"strings"
	"time"
)

// Config holds the connection settings for the upstream document repository.
type Config struct {
	BaseURL      string
	Library      string
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
	VerifySSL    bool
	Timeout      time.Duration
}

// Validate validates the upstream configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("upstream base URL is required")
	}
	if c.Library == "" {
		return errors.New("upstream library is required")
	}
	if c.Username == "" || c.Password == "" {
		return errors.New("upstream username and password are required")
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return errors.New("upstream client_id and client_secret are required")
	}
	return nil
}

func (c *Config) baseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}
