package github

import (
	"context"

	"github.com/google/go-github/github"
	"github.com/stretchr/testify/mock"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	var pr *github.PullRequest
	if v := args.Get(0); v != nil {
		pr = v.(*github.PullRequest)
	}
	var resp *github.Response
	if v := args.Get(1); v != nil {
		resp = v.(*github.Response)
	}
	return pr, resp, args.Error(2)
}
