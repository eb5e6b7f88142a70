package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func testClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(token, zerolog.Nop())
	c.baseURL = srv.URL
	return c
}

func TestValidateKey_OK(t *testing.T) {
	c := testClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "token user-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"login":"octocat"}`))
	})

	login, err := c.ValidateKey(context.Background(), "user-key")
	if err != nil {
		t.Fatalf("ValidateKey: %v", err)
	}
	if login != "octocat" {
		t.Errorf("login = %q", login)
	}
}

func TestValidateKey_Invalid(t *testing.T) {
	c := testClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.ValidateKey(context.Background(), "bad-key")
	var keyErr *APIKeyInvalidError
	if !errors.As(err, &keyErr) {
		t.Errorf("error = %v, want APIKeyInvalidError", err)
	}
}

func TestValidateKey_RateLimited(t *testing.T) {
	c := testClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.ValidateKey(context.Background(), "worn-out-key")
	if !errors.Is(err, ErrRateLimitExceeded) {
		t.Errorf("error = %v, want ErrRateLimitExceeded", err)
	}
}

func TestUpload(t *testing.T) {
	c := testClient(t, "bot-token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gists" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"html_url":"https://gist.github.com/abc123"}`))
	})

	url, err := c.Upload("details")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://gist.github.com/abc123" {
		t.Errorf("url = %q", url)
	}
}

func TestUpload_PermanentFailureDoesNotRetry(t *testing.T) {
	calls := 0
	c := testClient(t, "bot-token", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Upload("details")
	var keyErr *APIKeyInvalidError
	if !errors.As(err, &keyErr) {
		t.Errorf("error = %v, want APIKeyInvalidError", err)
	}
	if calls != 1 {
		t.Errorf("4xx responses must not retry, got %d calls", calls)
	}
}

func TestConfigured(t *testing.T) {
	if NewClient("", zerolog.Nop()).Configured() {
		t.Error("empty token must report unconfigured")
	}
	if !NewClient("tok", zerolog.Nop()).Configured() {
		t.Error("non-empty token must report configured")
	}
}
