package upstream

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/docbridge-io/docbridge/internal/pkg/logger"
)

// Client executes queries against the upstream document repository using a
// valid credential from the token cache.
type Client struct {
	cfg        *Config
	httpClient *http.Client
	tokens     *TokenCache
	log        *logger.Logger
}

// New creates an upstream client. TLS certificate validation is skipped
// when the configuration says so (self-hosted repositories commonly run
// with internal CAs).
func New(cfg *Config, log *logger.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if !cfg.VerifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		tokens:     NewTokenCache(cfg, httpClient, log),
		log:        log,
	}, nil
}

// Tokens exposes the credential cache, mainly for wiring and tests.
func (c *Client) Tokens() *TokenCache {
	return c.tokens
}

func (c *Client) libraryPath(suffix string) string {
	return fmt.Sprintf("%s/libraries/%s%s", c.cfg.baseURL(), url.PathEscape(c.cfg.Library), suffix)
}

// get performs an authenticated GET and returns the raw body.
func (c *Client) get(ctx context.Context, op, rawURL string, params url.Values) ([]byte, string, error) {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", &UpstreamError{Op: op, Message: "failed to create request", Err: err}
	}

	return c.do(op, req)
}

// postJSON performs an authenticated POST with a JSON body.
func (c *Client) postJSON(ctx context.Context, op, rawURL string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, &UpstreamError{Op: op, Message: "failed to marshal request body", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(data))
	if err != nil {
		return nil, &UpstreamError{Op: op, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, _, err := c.do(op, req)
	return resp, err
}

func (c *Client) do(op string, req *http.Request) ([]byte, string, error) {
	token, err := c.tokens.Token(req.Context())
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("upstream request failed",
			zap.String("op", op),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, "", &UpstreamError{Op: op, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &UpstreamError{Op: op, Status: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	c.log.Debug("upstream request",
		zap.String("op", op),
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &UpstreamError{Op: op, Status: resp.StatusCode, Message: string(body)}
	}

	return body, resp.Header.Get("Content-Type"), nil
}
