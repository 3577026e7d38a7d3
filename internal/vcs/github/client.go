package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainErrors "github.com/Tomas-vilte/PRCompile/internal/errors"
	"github.com/Tomas-vilte/PRCompile/internal/vcs"
	"github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

var _ vcs.PullRequestGetter = (*GitHubClient)(nil)

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
}

type GitHubClient struct {
	prService PullRequestsService
	owner     string
	repo      string
}

// NewGitHubClient crea un cliente autenticado con un token estático. apiURL
// vacío usa api.github.com; para GitHub Enterprise se pasa la URL de la API.
func NewGitHubClient(owner, repo, token, apiURL string, timeout time.Duration) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = timeout

	client := github.NewClient(httpClient)
	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		baseURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, domainErrors.ErrGitHubRequest.WithError(err).WithContext("api_url", apiURL)
		}
		client.BaseURL = baseURL
	}

	return NewGitHubClientWithServices(client.PullRequests, owner, repo), nil
}

func NewGitHubClientWithServices(prService PullRequestsService, owner, repo string) *GitHubClient {
	return &GitHubClient{
		prService: prService,
		owner:     owner,
		repo:      repo,
	}
}

func (ghc *GitHubClient) Repository() string {
	return ghc.owner + "/" + ghc.repo
}

// GetPRBody obtiene la descripción de la PR. Un PR sin descripción devuelve "".
func (ghc *GitHubClient) GetPRBody(ctx context.Context, prNumber int) (string, error) {
	pr, _, err := ghc.prService.Get(ctx, ghc.owner, ghc.repo, prNumber)
	if err != nil {
		return "", ghc.wrapError(err, prNumber)
	}
	if pr == nil {
		return "", domainErrors.ErrPRNotFound.WithContext("number", prNumber)
	}

	return pr.GetBody(), nil
}

func (ghc *GitHubClient) wrapError(err error, prNumber int) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return domainErrors.ErrPRNotFound.WithError(err).WithContext("number", prNumber)
		case http.StatusUnauthorized, http.StatusForbidden:
			return domainErrors.ErrGitHubTokenInvalid.WithError(err)
		default:
			return domainErrors.ErrGitHubRequest.WithError(err).WithContext("status", ghErr.Response.Status)
		}
	}
	return domainErrors.ErrGitHubRequest.WithError(fmt.Errorf("PR %d de %s: %w", prNumber, ghc.Repository(), err))
}
