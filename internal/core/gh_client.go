package core

import (
	"context"
	"net/http"

	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"
)

// NewGitHubClient creates a new authenticated GitHub client using the provided token.
// This is the standard way to create GitHub API clients throughout the codebase.
func NewGitHubClient(ctx context.Context, token string) *github.Client {
	return github.NewClient(NewOAuth2HTTPClient(ctx, token))
}

// NewOAuth2HTTPClient creates an HTTP client that sends token as a bearer credential.
func NewOAuth2HTTPClient(ctx context.Context, token string) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return oauth2.NewClient(ctx, ts)
}
