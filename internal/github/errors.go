package github

import "errors"

// APIKeyInvalidError means GitHub rejected the supplied API key. The
// dispatcher turns it into a hint to re-run the authentication command.
type APIKeyInvalidError struct {
	Reason string
}

func (e *APIKeyInvalidError) Error() string {
	if e.Reason != "" {
		return "The GitHub API key provided is invalid (" + e.Reason + ")."
	}
	return "The GitHub API key provided is invalid."
}

// ErrRateLimitExceeded means the key's GitHub API quota is exhausted.
var ErrRateLimitExceeded = errors.New("github API rate limit exceeded")
