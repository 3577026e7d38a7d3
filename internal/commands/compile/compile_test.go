package compile

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Tomas-vilte/PRCompile/internal/config"
	domainErrors "github.com/Tomas-vilte/PRCompile/internal/errors"
	"github.com/Tomas-vilte/PRCompile/internal/i18n"
	"github.com/Tomas-vilte/PRCompile/internal/logger"
	"github.com/Tomas-vilte/PRCompile/internal/services"
	"github.com/Tomas-vilte/PRCompile/internal/tickets/jira"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prBody = "# 概要\nfoo\n\n## 結合テスト観点\n- ログインできること\n\n## 対象外セクション\n- bar"

func newGitHubServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/owner/repo/pulls/12":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"number": 12, "body": prBody})
		case "/repos/owner/repo/pulls/14":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"number": 14, "body": strings.ReplaceAll(prBody, "\n", "\r\n")})
		case "/repos/owner/repo/pulls/13":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"number": 13, "body": "no sections"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

type jiraStub struct {
	server   *httptest.Server
	comments atomic.Int32

	mu       sync.Mutex
	lastBody jira.AtlassianDoc
}

func (s *jiraStub) body() jira.AtlassianDoc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBody
}

func newJiraServer(t *testing.T, searchStatus int) *jiraStub {
	t.Helper()
	stub := &jiraStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/rest/api/3/search/jql":
			w.WriteHeader(searchStatus)
			_, _ = w.Write([]byte(`{"issues":[{"key":"OPS-3","fields":{"summary":"結合テスト 2024"}}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/rest/api/3/issue/OPS-3/comment":
			var payload map[string]jira.AtlassianDoc
			_ = json.NewDecoder(r.Body).Decode(&payload)
			stub.mu.Lock()
			stub.lastBody = payload["body"]
			stub.mu.Unlock()
			stub.comments.Add(1)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func envLookup(env map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func baseEnv(apiURL, commit string) map[string]string {
	return map[string]string{
		config.EnvGitHubToken:   "ghp_token",
		config.EnvCommitMessage: commit,
		config.EnvRepository:    "owner/repo",
		config.EnvGitHubAPIURL:  apiURL,
	}
}

func withJira(env map[string]string, baseURL string) map[string]string {
	env[config.EnvJiraEmail] = "ci@example.com"
	env[config.EnvJiraAPIToken] = "token"
	env[config.EnvJiraBaseURL] = baseURL
	env[config.EnvJiraProjectKey] = "OPS"
	env[config.EnvJiraIssueTitle] = "結合テスト"
	return env
}

func run(t *testing.T, env map[string]string) (services.Outcome, string, error) {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	var out, logs bytes.Buffer
	ctx := logger.WithLogger(context.Background(), logger.New(&logs, true))
	outcome, err := NewCompileCommand(envLookup(env), &out).Run(ctx, trans)
	return outcome, out.String(), err
}

func TestCompileCommand_Run(t *testing.T) {
	gh := newGitHubServer(t)

	t.Run("prints the section when Jira is not configured", func(t *testing.T) {
		outcome, out, err := run(t, baseEnv(gh.URL, "Merge pull request #12 from owner/feature\n\nbody"))

		require.NoError(t, err)
		assert.Equal(t, services.OutcomePrinted, outcome)
		assert.Equal(t, "## 結合テスト観点\n- ログインできること\n\n", out)
	})

	t.Run("posts the section to Jira", func(t *testing.T) {
		stub := newJiraServer(t, http.StatusOK)

		outcome, out, err := run(t, withJira(baseEnv(gh.URL, "feat: login (#12)"), stub.server.URL))

		require.NoError(t, err)
		assert.Equal(t, services.OutcomeCommented, outcome)
		assert.Empty(t, out)
		assert.EqualValues(t, 1, stub.comments.Load())
		assert.Equal(t, jira.TextToDoc("## 結合テスト観点\n- ログインできること\n"), stub.body())
	})

	t.Run("Jira failures do not fail the run", func(t *testing.T) {
		stub := newJiraServer(t, http.StatusUnauthorized)

		outcome, _, err := run(t, withJira(baseEnv(gh.URL, "feat: login (#12)"), stub.server.URL))

		require.NoError(t, err)
		assert.Equal(t, services.OutcomeCommentFailed, outcome)
		assert.EqualValues(t, 0, stub.comments.Load())
	})

	t.Run("CRLF bodies match the default title", func(t *testing.T) {
		outcome, out, err := run(t, baseEnv(gh.URL, "Merge pull request #14 from owner/feature"))

		require.NoError(t, err)
		assert.Equal(t, services.OutcomePrinted, outcome)
		assert.Equal(t, "## 結合テスト観点\r\n- ログインできること\r\n\r\n", out)
	})

	t.Run("no PR number", func(t *testing.T) {
		outcome, out, err := run(t, baseEnv(gh.URL, ""))

		require.NoError(t, err)
		assert.Equal(t, services.OutcomeNoPRNumber, outcome)
		assert.Empty(t, out)
	})

	t.Run("section absent", func(t *testing.T) {
		outcome, _, err := run(t, baseEnv(gh.URL, "Merge pull request #13"))

		require.NoError(t, err)
		assert.Equal(t, services.OutcomeSectionAbsent, outcome)
	})

	t.Run("unknown PR fails the run", func(t *testing.T) {
		_, _, err := run(t, baseEnv(gh.URL, "Merge pull request #99"))

		assert.ErrorIs(t, err, domainErrors.ErrPRNotFound)
	})

	t.Run("custom pattern", func(t *testing.T) {
		env := baseEnv(gh.URL, "release #1 [PR-12]")
		env[config.EnvPRNumberPattern] = `PR-(\d+)`

		outcome, _, err := run(t, env)

		require.NoError(t, err)
		assert.Equal(t, services.OutcomePrinted, outcome)
	})

	t.Run("squash preset", func(t *testing.T) {
		env := baseEnv(gh.URL, "fix: typo #3 (#12)")
		env[config.EnvPRNumberPattern] = "squash"

		outcome, out, err := run(t, env)

		require.NoError(t, err)
		assert.Equal(t, services.OutcomePrinted, outcome)
		assert.Contains(t, out, "- ログインできること")
	})

	t.Run("configuration errors fail the run", func(t *testing.T) {
		_, _, err := run(t, map[string]string{})

		assert.ErrorIs(t, err, domainErrors.ErrConfigMissing)
	})
}
