package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/craft-stats/internal/model"
)

// DefaultRequestTimeout bounds a single call to the GitHub API
const DefaultRequestTimeout = 30 * time.Second

// GitHubSource fetches issues of one owner's repositories from the GitHub API
type GitHubSource struct {
	client  *github.Client
	owner   string
	timeout time.Duration
	logger  *slog.Logger
}

// GitHubSourceOptions configures a GitHubSource
type GitHubSourceOptions struct {
	Owner   string
	Timeout time.Duration // per request (default: 30s)
	Logger  *slog.Logger
}

// NewGitHubSource wraps client as an IssueSource.
func NewGitHubSource(client *github.Client, opts GitHubSourceOptions) *GitHubSource {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return &GitHubSource{
		client:  client,
		owner:   opts.Owner,
		timeout: timeout,
		logger:  logger,
	}
}

// FetchIssue fetches issue or pull request number id of project.
// Rate limit errors are waited out using ctx; 404 and 410 answers map to
// ErrNotFound; everything else is a *TransportError.
func (s *GitHubSource) FetchIssue(ctx context.Context, project string, id int) (*RemoteIssue, error) {
	for {
		issue, err := s.get(ctx, project, id)
		if err == nil {
			if s.movedElsewhere(issue, project, id) {
				s.logger.Debug("issue moved to another repository",
					slog.String("project", project),
					slog.Int("id", id),
					slog.String("repository_url", issue.GetRepositoryURL()),
					slog.Int("number", issue.GetNumber()),
				)

				return nil, fmt.Errorf("%s/%s#%d transferred: %w", s.owner, project, id, ErrNotFound)
			}

			return convertIssue(issue), nil
		}

		wait, limited := rateLimitWait(err)
		if !limited {
			return nil, s.classify(project, id, err)
		}

		s.logger.Warn("rate limited, waiting",
			slog.String("project", project),
			slog.Int("id", id),
			slog.Duration("wait", wait),
		)

		select {
		case <-ctx.Done():
			return nil, &TransportError{Operation: "get issue", Project: project, ID: id, Err: ctx.Err()}
		case <-time.After(wait):
		}
	}
}

func (s *GitHubSource) get(ctx context.Context, project string, id int) (*github.Issue, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	issue, _, err := s.client.Issues.Get(callCtx, s.owner, project, id)

	return issue, err
}

func (s *GitHubSource) classify(project string, id int, err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		status := errResp.Response.StatusCode
		if status == http.StatusNotFound || status == http.StatusGone {
			return fmt.Errorf("%s/%s#%d: %w", s.owner, project, id, ErrNotFound)
		}

		return &TransportError{Operation: "get issue", Project: project, ID: id, Status: status, Err: err}
	}

	return &TransportError{Operation: "get issue", Project: project, ID: id, Err: err}
}

// movedElsewhere reports whether the API answered with an issue other than
// project#id. GitHub redirects requests for transferred issues to their new
// repository.
func (s *GitHubSource) movedElsewhere(issue *github.Issue, project string, id int) bool {
	if issue.GetNumber() != id {
		return true
	}

	repoURL := issue.GetRepositoryURL()
	if repoURL == "" {
		return false
	}

	suffix := "/repos/" + s.owner + "/" + project

	return !strings.HasSuffix(strings.ToLower(strings.TrimSuffix(repoURL, "/")), strings.ToLower(suffix))
}

// rateLimitWait reports how long to wait before retrying after err.
func rateLimitWait(err error) (time.Duration, bool) {
	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return time.Until(rateLimitErr.Rate.Reset.Time) + time.Second, true
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		if retryAfter := abuseErr.GetRetryAfter(); retryAfter > 0 {
			return retryAfter, true
		}

		return time.Minute, true
	}

	return 0, false
}

// convertIssue converts a GitHub issue to the fields the collector keeps
func convertIssue(gi *github.Issue) *RemoteIssue {
	kind := model.KindIssue
	if gi.IsPullRequest() {
		kind = model.KindPullRequest
	}

	remote := &RemoteIssue{
		Kind:     kind,
		OpenedAt: gi.GetCreatedAt().UTC(),
	}

	if !gi.GetClosedAt().IsZero() {
		t := gi.GetClosedAt().UTC()
		remote.ClosedAt = &t
	}

	return remote
}
