package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/docbridge-io/docbridge/internal/pkg/logger"
)

const (
	tokenPath = "/oauth2/token"

	// defaultTokenTTL applies when the token endpoint omits expires_in.
	defaultTokenTTL = 1800 * time.Second

	// expiryMargin guarantees a cached token is never used within this
	// window of its real expiry.
	expiryMargin = 60 * time.Second
)

// TokenCache holds one access token for the shared upstream credential and
// renews it transparently on demand. It is a single-slot, process-lifetime
// cache; renewal is serialized so concurrent callers on a cache miss share
// one in-flight request.
type TokenCache struct {
	cfg        *Config
	httpClient *http.Client
	log        *logger.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	// now is injectable for expiry-boundary tests.
	now func() time.Time
}

// NewTokenCache creates an empty cache; the first Token call authenticates.
func NewTokenCache(cfg *Config, httpClient *http.Client, log *logger.Logger) *TokenCache {
	return &TokenCache{
		cfg:        cfg,
		httpClient: httpClient,
		log:        log,
		now:        time.Now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Token returns a valid access token, renewing when the cached one is absent
// or expired. A token whose expiry equals the current instant is treated as
// expired. On renewal failure the cached slot is left untouched: a stale
// token is retained for the next natural expiry check and the error is
// surfaced to the caller.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	return c.renewLocked(ctx)
}

func (c *TokenCache) renewLocked(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)
	form.Set("grant_type", "password")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	endpoint := c.cfg.baseURL() + tokenPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Message: "failed to create token request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &AuthError{Message: "token request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AuthError{Status: resp.StatusCode, Message: "failed to read token response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &AuthError{Status: resp.StatusCode, Message: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", &AuthError{Status: resp.StatusCode, Message: "malformed token response", Err: err}
	}
	if tr.AccessToken == "" {
		return "", &AuthError{Status: resp.StatusCode, Message: "token response missing access_token"}
	}

	ttl := defaultTokenTTL
	if tr.ExpiresIn > 0 {
		ttl = time.Duration(tr.ExpiresIn) * time.Second
	}

	c.token = tr.AccessToken
	c.expiresAt = c.now().Add(ttl - expiryMargin)

	c.log.Debug("upstream token renewed",
		zap.Time("expires_at", c.expiresAt),
		zap.String("endpoint", endpoint),
	)

	return c.token, nil
}

// CachedExpiry exposes the current slot's expiry for inspection.
func (c *TokenCache) CachedExpiry() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiresAt
}
