package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Tomas-vilte/PRCompile/internal/config"
	domainErrors "github.com/Tomas-vilte/PRCompile/internal/errors"
	"github.com/Tomas-vilte/PRCompile/internal/httpclient"
	"github.com/Tomas-vilte/PRCompile/internal/tickets"
)

var _ tickets.IssueCommenter = (*JiraService)(nil)

// JiraService representa el servicio para interactuar con la API de Jira.
type JiraService struct {
	baseURL   string
	apiKey    string
	jiraEmail string
	client    httpclient.HTTPClient
}

// NewJiraService crea una nueva instancia de JiraService.
func NewJiraService(cfg config.JiraConfig, client httpclient.HTTPClient) *JiraService {
	return &JiraService{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		jiraEmail: cfg.Email,
		client:    client,
	}
}

type (
	AtlassianDoc struct {
		Type    string       `json:"type"`
		Version int          `json:"version"`
		Content []DocContent `json:"content"`
	}

	DocContent struct {
		Type    string       `json:"type"`
		Text    string       `json:"text,omitempty"`
		Content []DocContent `json:"content,omitempty"`
	}

	searchResponse struct {
		Issues []struct {
			Key    string `json:"key"`
			Fields struct {
				Summary string `json:"summary"`
			} `json:"fields"`
		} `json:"issues"`
	}
)

// CommentOnLatestIssue busca el issue abierto más reciente cuyo título
// contiene titleQuery y le agrega comment.
func (s *JiraService) CommentOnLatestIssue(ctx context.Context, projectKey, titleQuery, comment string) (tickets.IssueRef, error) {
	issue, err := s.FindLatestIssue(ctx, projectKey, titleQuery)
	if err != nil {
		return tickets.IssueRef{}, err
	}

	if err := s.AddComment(ctx, issue.Key, comment); err != nil {
		return tickets.IssueRef{}, err
	}
	return issue, nil
}

// FindLatestIssue devuelve ErrIssueNotFound si ningún issue coincide.
func (s *JiraService) FindLatestIssue(ctx context.Context, projectKey, titleQuery string) (tickets.IssueRef, error) {
	query := url.Values{}
	query.Set("jql", BuildJQL(projectKey, titleQuery))
	query.Set("maxResults", "1")
	query.Set("fields", "summary,created")

	endpoint := fmt.Sprintf("%s/rest/api/3/search/jql?%s", s.baseURL, query.Encode())
	resp, err := s.makeRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return tickets.IssueRef{}, err
	}
	defer closeBody(resp)

	if err := checkStatus(resp, http.StatusOK); err != nil {
		return tickets.IssueRef{}, err
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return tickets.IssueRef{}, domainErrors.ErrJiraRequest.WithError(fmt.Errorf("error decoding search response: %w", err))
	}
	if len(result.Issues) == 0 {
		return tickets.IssueRef{}, domainErrors.ErrIssueNotFound.WithContext("project", projectKey)
	}

	return tickets.IssueRef{
		Key:     result.Issues[0].Key,
		Summary: result.Issues[0].Fields.Summary,
	}, nil
}

// AddComment agrega un comentario en formato Atlassian Document al issue.
func (s *JiraService) AddComment(ctx context.Context, issueKey, text string) error {
	payload, err := json.Marshal(map[string]AtlassianDoc{"body": TextToDoc(text)})
	if err != nil {
		return domainErrors.ErrJiraRequest.WithError(err)
	}

	endpoint := fmt.Sprintf("%s/rest/api/3/issue/%s/comment", s.baseURL, url.PathEscape(issueKey))
	resp, err := s.makeRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer closeBody(resp)

	return checkStatus(resp, http.StatusCreated, http.StatusOK)
}

// BuildJQL arma la consulta: proyecto, título aproximado, no resuelto, más
// reciente primero.
func BuildJQL(projectKey, titleQuery string) string {
	return fmt.Sprintf(`project = "%s" AND summary ~ "%s" AND statusCategory != Done ORDER BY created DESC`,
		escapeJQL(projectKey), escapeJQL(titleQuery))
}

// TextToDoc convierte texto plano en un documento con un párrafo por línea.
func TextToDoc(text string) AtlassianDoc {
	lines := strings.Split(text, "\n")
	content := make([]DocContent, 0, len(lines))
	for _, line := range lines {
		paragraph := DocContent{Type: "paragraph"}
		if line != "" {
			paragraph.Content = []DocContent{{Type: "text", Text: line}}
		}
		content = append(content, paragraph)
	}

	return AtlassianDoc{
		Type:    "doc",
		Version: 1,
		Content: content,
	}
}

func escapeJQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// makeRequest realiza una solicitud HTTP a la API de Jira.
func (s *JiraService) makeRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, domainErrors.ErrJiraRequest.WithError(fmt.Errorf("error creating request: %w", err))
	}

	req.Header.Set("Authorization", getBasicAuth(s.jiraEmail, s.apiKey))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domainErrors.ErrJiraRequest.WithError(fmt.Errorf("error making request: %w", err))
	}

	return resp, nil
}

func checkStatus(resp *http.Response, accepted ...int) error {
	for _, code := range accepted {
		if resp.StatusCode == code {
			return nil
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domainErrors.ErrJiraUnauthorized.WithContext("status", resp.Status)
	default:
		return domainErrors.ErrJiraRequest.WithContext("status", resp.Status)
	}
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// getBasicAuth genera el encabezado de autenticación básica.
func getBasicAuth(username, token string) string {
	credentials := fmt.Sprintf("%s:%s", username, token)
	return fmt.Sprintf("Basic %s", base64.StdEncoding.EncodeToString([]byte(credentials)))
}
