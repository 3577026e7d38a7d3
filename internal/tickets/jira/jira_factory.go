package jira

import (
	"github.com/Tomas-vilte/PRCompile/internal/config"
	"github.com/Tomas-vilte/PRCompile/internal/httpclient"
	"github.com/Tomas-vilte/PRCompile/internal/tickets"
)

// NewFromConfig devuelve nil, nil cuando Jira no está configurado, así el
// pipeline imprime la sección en lugar de comentarla. config.Load ya rechaza
// configuraciones parciales.
func NewFromConfig(cfg *config.Config) (tickets.IssueCommenter, error) {
	if !cfg.Jira.Enabled() {
		return nil, nil
	}
	return NewJiraService(cfg.Jira, httpclient.New(cfg.HTTPTimeout)), nil
}
