package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge-io/docbridge/internal/pkg/logger"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:      baseURL,
		Library:      "ACTIVE",
		Username:     "svc",
		Password:     "secret",
		ClientID:     "docbridge",
		ClientSecret: "client-secret",
		VerifySSL:    true,
	}
}

func TestTokenCache_ReusesCachedToken(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "tok-1", "expires_in": 1800}`))
	}))
	defer srv.Close()

	cache := NewTokenCache(testConfig(srv.URL), srv.Client(), logger.Nop())

	tok, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))

	// A cached, unexpired token must not trigger another upstream call.
	tok, err = cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
}

func TestTokenCache_SendsPasswordGrantForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/oauth2/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "svc", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "docbridge", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		w.Write([]byte(`{"access_token": "tok", "expires_in": 1800}`))
	}))
	defer srv.Close()

	cache := NewTokenCache(testConfig(srv.URL), srv.Client(), logger.Nop())

	_, err := cache.Token(context.Background())
	require.NoError(t, err)
}

func TestTokenCache_ExpiryBoundary(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"access_token": "tok", "expires_in": 120}`))
	}))
	defer srv.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base

	cache := NewTokenCache(testConfig(srv.URL), srv.Client(), logger.Nop())
	cache.now = func() time.Time { return now }

	_, err := cache.Token(context.Background())
	require.NoError(t, err)

	// expires_in=120 minus the 60s safety margin: valid for exactly 60s.
	assert.Equal(t, base.Add(60*time.Second), cache.CachedExpiry())

	// Still inside the window: no renewal.
	now = base.Add(59 * time.Second)
	_, err = cache.Token(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))

	// Expiry exactly equal to "now" is treated as expired.
	now = base.Add(60 * time.Second)
	_, err = cache.Token(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&calls))
}

func TestTokenCache_DefaultTTLWhenExpiresInMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"access_token": "tok"}`))
	}))
	defer srv.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cache := NewTokenCache(testConfig(srv.URL), srv.Client(), logger.Nop())
	cache.now = func() time.Time { return base }

	_, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, base.Add(1800*time.Second-60*time.Second), cache.CachedExpiry())
}

func TestTokenCache_FailedRenewalKeepsStaleSlot(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error": "temporarily unavailable"}`))
			return
		}
		w.Write([]byte(`{"access_token": "tok-1", "expires_in": 120}`))
	}))
	defer srv.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base

	cache := NewTokenCache(testConfig(srv.URL), srv.Client(), logger.Nop())
	cache.now = func() time.Time { return now }

	_, err := cache.Token(context.Background())
	require.NoError(t, err)
	expiry := cache.CachedExpiry()

	// Past expiry with the token endpoint down: the error surfaces and the
	// stale slot is left untouched.
	now = base.Add(5 * time.Minute)
	fail.Store(true)

	_, err = cache.Token(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusServiceUnavailable, authErr.Status)
	assert.Equal(t, expiry, cache.CachedExpiry())

	// Recovery: the next check renews normally.
	fail.Store(false)
	tok, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
}

func TestTokenCache_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	cache := NewTokenCache(testConfig(srv.URL), srv.Client(), logger.Nop())

	_, err := cache.Token(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestTokenCache_MissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"expires_in": 1800}`))
	}))
	defer srv.Close()

	cache := NewTokenCache(testConfig(srv.URL), srv.Client(), logger.Nop())

	_, err := cache.Token(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Message, "access_token")
}
