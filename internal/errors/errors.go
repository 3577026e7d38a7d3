package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeInput         ErrorType = "INPUT"
	TypeVCS           ErrorType = "VCS"
	TypeTicket        ErrorType = "TICKET"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if status, ok := e.Context["status"].(string); ok && status != "" {
			msg += fmt.Sprintf(" - %s", status)
		}
		if missing, ok := e.Context["missing"].(string); ok && missing != "" {
			msg += fmt.Sprintf(" [%s]", missing)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError of the same type and message, so derived
// errors (WithError, WithContext) still match the sentinel they came from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.Message == e.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrConfigMissing = NewAppError(TypeConfiguration, "required configuration is missing", nil).
				WithSuggestion("Export GITHUB_TOKEN, COMMIT_MESSAGE and GITHUB_REPOSITORY_NAME in the CI job")

	ErrInvalidRepository = NewAppError(TypeConfiguration, "repository must be in owner/repo form", nil).
				WithSuggestion("Set GITHUB_REPOSITORY_NAME to ${{ github.repository }}")

	ErrInvalidPattern = NewAppError(TypeConfiguration, "PR number pattern must compile and have exactly one capturing group", nil).
				WithSuggestion(`Use a pattern such as #(\d+) or \(#(\d+)\)`)

	ErrJiraPartialConfig = NewAppError(TypeConfiguration, "Jira configuration is incomplete", nil).
				WithSuggestion("Set all of JIRA_EMAIL, JIRA_API_TOKEN, JIRA_BASE_URL, JIRA_PROJECT_KEY and JIRA_ISSUE_TITLE, or none of them")

	ErrInvalidTimeout = NewAppError(TypeConfiguration, "HTTP timeout is not a valid duration", nil).
				WithSuggestion("Use a Go duration such as 30s or 1m")
)

// Input errors
var (
	ErrInvalidPRNumber = NewAppError(TypeInput, "PR number in the first line of the commit message is not a number", nil).
		WithSuggestion("Check the commit message or tighten PR_NUMBER_PATTERN, e.g. #(\\d+)")
)

// GitHub/VCS specific errors
var (
	ErrPRNotFound = NewAppError(TypeVCS, "pull request not found", nil).
			WithSuggestion("Check GITHUB_REPOSITORY_NAME points at the repository the PR was merged into")

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or lacks access", nil).
				WithSuggestion("The token needs read access to pull requests")

	ErrGitHubRequest = NewAppError(TypeVCS, "GitHub request failed", nil)
)

// Ticket errors
var (
	ErrIssueNotFound = NewAppError(TypeTicket, "no open issue matches the title", nil)

	ErrJiraUnauthorized = NewAppError(TypeTicket, "Jira rejected the credentials", nil).
				WithSuggestion("Check JIRA_EMAIL and JIRA_API_TOKEN")

	ErrJiraRequest = NewAppError(TypeTicket, "Jira request failed", nil)
)
