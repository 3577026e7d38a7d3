package tickets

import "context"

// IssueRef identifies the issue a comment was posted to.
type IssueRef struct {
	Key     string
	Summary string
}

// IssueCommenter posts a comment on the most recently created open issue of a
// project whose title contains titleQuery.
type IssueCommenter interface {
	CommentOnLatestIssue(ctx context.Context, projectKey, titleQuery, comment string) (IssueRef, error)
}
