package compile

import (
	"context"
	"io"
	"log/slog"

	"github.com/Tomas-vilte/PRCompile/internal/config"
	"github.com/Tomas-vilte/PRCompile/internal/extract"
	"github.com/Tomas-vilte/PRCompile/internal/i18n"
	"github.com/Tomas-vilte/PRCompile/internal/logger"
	"github.com/Tomas-vilte/PRCompile/internal/services"
	"github.com/Tomas-vilte/PRCompile/internal/tickets/jira"
	"github.com/Tomas-vilte/PRCompile/internal/vcs/github"
	"github.com/urfave/cli/v3"
)

type CompileCommand struct {
	lookup config.LookupFunc
	stdout io.Writer
}

func NewCompileCommand(lookup config.LookupFunc, stdout io.Writer) *CompileCommand {
	return &CompileCommand{
		lookup: lookup,
		stdout: stdout,
	}
}

func (c *CompileCommand) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "compile",
		Usage: t.GetMessage("compile_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := c.Run(ctx, t)
			return err
		},
	}
}

// Run loads the configuration, wires the gateways and runs the pipeline once.
func (c *CompileCommand) Run(ctx context.Context, t *i18n.Translations) (services.Outcome, error) {
	cfg, err := config.Load(c.lookup)
	if err != nil {
		return services.OutcomeFailed, err
	}

	prGetter, err := github.NewGitHubClient(cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Token, cfg.GitHub.APIURL, cfg.HTTPTimeout)
	if err != nil {
		return services.OutcomeFailed, err
	}

	commenter, err := jira.NewFromConfig(cfg)
	if err != nil {
		return services.OutcomeFailed, err
	}

	parser := extract.NewParser(cfg.PRNumberPattern, func(firstLine string, number int, found bool) {
		logger.Debug(ctx, t.GetMessage("commit_first_line", 0, nil), slog.String("title", firstLine))
		if found {
			logger.Debug(ctx, t.GetMessage("pr_number_parsed", 0, nil), slog.Int("pr_number", number))
		}
	})

	service := services.NewSectionService(parser, prGetter, commenter, services.SectionSettings{
		TitleRow:   cfg.SectionTitleRow,
		ProjectKey: cfg.Jira.ProjectKey,
		IssueTitle: cfg.Jira.IssueTitle,
	}, c.stdout, t)

	outcome, err := service.Run(ctx, cfg.CommitMessage)
	if err != nil {
		return outcome, err
	}

	logger.Debug(ctx, t.GetMessage("run_finished", 0, nil), slog.String("outcome", outcome.String()))
	return outcome, nil
}
