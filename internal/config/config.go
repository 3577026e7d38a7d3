package config

import (
	"os"
	"regexp"
	"strings"
	"time"

	domainErrors "github.com/Tomas-vilte/PRCompile/internal/errors"
	"github.com/Tomas-vilte/PRCompile/internal/regex"
)

const (
	EnvGitHubToken      = "GITHUB_TOKEN"
	EnvCommitMessage    = "COMMIT_MESSAGE"
	EnvRepository       = "GITHUB_REPOSITORY_NAME"
	EnvSectionTitle     = "SECTION_TITLE_ROW"
	EnvPRNumberPattern  = "PR_NUMBER_PATTERN"
	EnvGitHubAPIURL     = "GITHUB_API_URL"
	EnvJiraEmail        = "JIRA_EMAIL"
	EnvJiraAPIToken     = "JIRA_API_TOKEN"
	EnvJiraBaseURL      = "JIRA_BASE_URL"
	EnvJiraProjectKey   = "JIRA_PROJECT_KEY"
	EnvJiraIssueTitle   = "JIRA_ISSUE_TITLE"
	EnvHTTPTimeout      = "HTTP_TIMEOUT"
	EnvLanguage         = "PRCOMPILE_LANG"
	EnvDebug            = "PRCOMPILE_DEBUG"
	defaultSectionTitle = "## 結合テスト観点"
	defaultHTTPTimeout  = 30 * time.Second
	defaultGitHubAPIURL = "https://api.github.com/"
)

type (
	Config struct {
		CommitMessage   string
		SectionTitleRow string
		PRNumberPattern *regexp.Regexp
		HTTPTimeout     time.Duration

		GitHub GitHubConfig
		Jira   JiraConfig
	}

	GitHubConfig struct {
		Token  string
		Owner  string
		Repo   string
		APIURL string
	}

	JiraConfig struct {
		Email      string
		APIKey     string
		BaseURL    string
		ProjectKey string
		IssueTitle string
	}
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Enabled reports whether the issue tracker step should run.
func (j JiraConfig) Enabled() bool {
	return j.Email != "" && j.APIKey != "" && j.BaseURL != "" && j.ProjectKey != "" && j.IssueTitle != ""
}

func (j JiraConfig) empty() bool {
	return j.Email == "" && j.APIKey == "" && j.BaseURL == "" && j.ProjectKey == "" && j.IssueTitle == ""
}

// Repository returns the "owner/repo" identifier.
func (g GitHubConfig) Repository() string {
	return g.Owner + "/" + g.Repo
}

// LoadFromEnv reads the process environment.
func LoadFromEnv() (*Config, error) {
	return Load(os.LookupEnv)
}

// Load builds the configuration once from lookup. The commit message must be
// present but may be empty; the other required values must be non-empty.
func Load(lookup LookupFunc) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	var missing []string
	token := get(EnvGitHubToken)
	if token == "" {
		missing = append(missing, EnvGitHubToken)
	}
	commitMessage, ok := lookup(EnvCommitMessage)
	if !ok {
		missing = append(missing, EnvCommitMessage)
	}
	repository := strings.TrimSpace(get(EnvRepository))
	if repository == "" {
		missing = append(missing, EnvRepository)
	}
	if len(missing) > 0 {
		return nil, domainErrors.ErrConfigMissing.WithContext("missing", strings.Join(missing, ", "))
	}

	m := regex.OwnerRepo.FindStringSubmatch(repository)
	if m == nil {
		return nil, domainErrors.ErrInvalidRepository.WithContext("repository", repository)
	}

	pattern, err := compilePattern(get(EnvPRNumberPattern))
	if err != nil {
		return nil, err
	}

	timeout := defaultHTTPTimeout
	if raw := get(EnvHTTPTimeout); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return nil, domainErrors.ErrInvalidTimeout.WithError(err).WithContext("value", raw)
		}
	}

	cfg := &Config{
		CommitMessage:   commitMessage,
		SectionTitleRow: valueOr(get(EnvSectionTitle), defaultSectionTitle),
		PRNumberPattern: pattern,
		HTTPTimeout:     timeout,
		GitHub: GitHubConfig{
			Token:  token,
			Owner:  m[1],
			Repo:   m[2],
			APIURL: valueOr(get(EnvGitHubAPIURL), defaultGitHubAPIURL),
		},
		Jira: JiraConfig{
			Email:      get(EnvJiraEmail),
			APIKey:     get(EnvJiraAPIToken),
			BaseURL:    strings.TrimRight(get(EnvJiraBaseURL), "/"),
			ProjectKey: get(EnvJiraProjectKey),
			IssueTitle: get(EnvJiraIssueTitle),
		},
	}

	if !cfg.Jira.Enabled() && !cfg.Jira.empty() {
		return nil, domainErrors.ErrJiraPartialConfig
	}

	return cfg, nil
}

func compilePattern(raw string) (*regexp.Regexp, error) {
	if raw == "" {
		return regex.DefaultPRNumber, nil
	}
	if preset, ok := regex.PRNumberPresets[raw]; ok {
		return preset, nil
	}

	pattern, err := regexp.Compile(raw)
	if err != nil {
		return nil, domainErrors.ErrInvalidPattern.WithError(err).WithContext("pattern", raw)
	}
	if pattern.NumSubexp() != 1 {
		return nil, domainErrors.ErrInvalidPattern.WithContext("pattern", raw)
	}
	return pattern, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
