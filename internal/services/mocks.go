package services

import (
	"context"

	"github.com/Tomas-vilte/PRCompile/internal/tickets"
	"github.com/stretchr/testify/mock"
)

type MockPRGetter struct {
	mock.Mock
}

func (m *MockPRGetter) GetPRBody(ctx context.Context, prNumber int) (string, error) {
	args := m.Called(ctx, prNumber)
	return args.String(0), args.Error(1)
}

func (m *MockPRGetter) Repository() string {
	return "test-owner/test-repo"
}

type MockIssueCommenter struct {
	mock.Mock
}

func (m *MockIssueCommenter) CommentOnLatestIssue(ctx context.Context, projectKey, titleQuery, comment string) (tickets.IssueRef, error) {
	args := m.Called(ctx, projectKey, titleQuery, comment)
	return args.Get(0).(tickets.IssueRef), args.Error(1)
}
