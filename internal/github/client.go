// Package github talks to the GitHub REST API for the two things the bot
// needs from it: validating user-supplied API keys and posting diagnostic
// snapshots as secret gists.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"server-herald/pkg/retrylimit"
)

const apiBase = "https://api.github.com"

// Client is a minimal GitHub API client. The zero token is valid and
// simply reports itself unconfigured, which downgrades diagnostic uploads
// to local logging.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
	lim     *retrylimit.AdaptiveLimiter
	log     zerolog.Logger
}

// NewClient creates a client using the bot's own token. An empty token is
// allowed.
func NewClient(token string, log zerolog.Logger) *Client {
	return &Client{
		token:   token,
		baseURL: apiBase,
		http:    &http.Client{Timeout: 30 * time.Second},
		lim:     retrylimit.NewAdaptiveLimiter(5, 1, 20),
		log:     log.With().Str("component", "github").Logger(),
	}
}

// Configured reports whether the client has a token for uploads.
func (c *Client) Configured() bool { return c.token != "" }

// ValidateKey checks a user-supplied API key by fetching the
// authenticated user. A rejected key yields APIKeyInvalidError; an
// exhausted quota yields ErrRateLimitExceeded.
func (c *Client) ValidateKey(ctx context.Context, key string) (login string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "token "+key)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return "", err
	}

	var user struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("decoding user response: %w", err)
	}
	return user.Login, nil
}

// Upload posts failure details as a secret gist and returns its URL.
// Implements the dispatcher's DiagnosticSink contract; the call blocks
// inline, so transports that care should dispatch off their event loop.
func (c *Client) Upload(details string) (string, error) {
	payload := map[string]interface{}{
		"description": "server-herald diagnostic report",
		"public":      false,
		"files": map[string]interface{}{
			"diagnostic.txt": map[string]string{"content": details},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var url string
	err = retrylimit.WithRetry(ctx, c.lim, 3, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/gists", bytes.NewReader(body))
		if err != nil {
			return &retrylimit.Permanent{Err: err}
		}
		req.Header.Set("Authorization", "token "+c.token)
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if err := c.checkStatus(resp); err != nil {
			return &retrylimit.Permanent{Err: err}
		}

		var gist struct {
			HTMLURL string `json:"html_url"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&gist); err != nil {
			return &retrylimit.Permanent{Err: fmt.Errorf("decoding gist response: %w", err)}
		}
		url = gist.HTMLURL
		return nil
	})
	if err != nil {
		return "", err
	}

	c.log.Info().Str("url", url).Msg("Uploaded diagnostic gist")
	return url, nil
}

// checkStatus maps non-2xx responses to the client's error kinds.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &APIKeyInvalidError{}
	case http.StatusForbidden, http.StatusTooManyRequests:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return ErrRateLimitExceeded
		}
		return &APIKeyInvalidError{Reason: "access forbidden"}
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("github API returned %s: %s", resp.Status, snippet)
	}
}
