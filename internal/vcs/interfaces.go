package vcs

import "context"

// PullRequestGetter fetches pull request descriptions from a hosting provider.
type PullRequestGetter interface {
	// GetPRBody returns the description text of the pull request.
	GetPRBody(ctx context.Context, prNumber int) (string, error)
	// Repository returns the "owner/repo" the client is bound to.
	Repository() string
}
