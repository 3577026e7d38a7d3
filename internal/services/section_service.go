package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Tomas-vilte/PRCompile/internal/extract"
	"github.com/Tomas-vilte/PRCompile/internal/i18n"
	"github.com/Tomas-vilte/PRCompile/internal/logger"
	"github.com/Tomas-vilte/PRCompile/internal/tickets"
	"github.com/Tomas-vilte/PRCompile/internal/vcs"
)

// Outcome is how a pipeline run ended. Every outcome but OutcomeFailed exits 0.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeNoPRNumber
	OutcomeSectionAbsent
	OutcomePrinted
	OutcomeCommented
	OutcomeCommentFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFailed:
		return "failed"
	case OutcomeNoPRNumber:
		return "no_pr_number"
	case OutcomeSectionAbsent:
		return "section_absent"
	case OutcomePrinted:
		return "printed"
	case OutcomeCommented:
		return "commented"
	case OutcomeCommentFailed:
		return "comment_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// SectionSettings carries the per-run inputs of SectionService.
type SectionSettings struct {
	TitleRow   string
	ProjectKey string
	IssueTitle string
}

type SectionService struct {
	parser    *extract.Parser
	prGetter  vcs.PullRequestGetter
	commenter tickets.IssueCommenter
	settings  SectionSettings
	out       io.Writer
	trans     *i18n.Translations
}

// NewSectionService wires the pipeline. commenter may be nil, in which case
// the extracted section is written to out.
func NewSectionService(
	parser *extract.Parser,
	prGetter vcs.PullRequestGetter,
	commenter tickets.IssueCommenter,
	settings SectionSettings,
	out io.Writer,
	trans *i18n.Translations,
) *SectionService {
	return &SectionService{
		parser:    parser,
		prGetter:  prGetter,
		commenter: commenter,
		settings:  settings,
		out:       out,
		trans:     trans,
	}
}

// Run executes commit message -> PR number -> PR body -> section -> comment.
// Parse and fetch errors are returned. Errors from the comment step are
// logged without detail and reported as OutcomeCommentFailed.
func (s *SectionService) Run(ctx context.Context, commitMessage string) (Outcome, error) {
	prNumber, found, err := s.parser.Parse(commitMessage)
	if err != nil {
		return OutcomeFailed, err
	}
	if !found {
		logger.Info(ctx, s.trans.GetMessage("pr_number_not_found", 0, nil))
		return OutcomeNoPRNumber, nil
	}

	ctx = logger.With(ctx, slog.Int("pr_number", prNumber))
	logger.Info(ctx, s.trans.GetMessage("fetching_pr", 0, map[string]interface{}{"Number": prNumber}),
		slog.String("repository", s.prGetter.Repository()))

	body, err := s.prGetter.GetPRBody(ctx, prNumber)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("fetch PR #%d: %w", prNumber, err)
	}

	section := extract.Section(body, s.settings.TitleRow)
	if section == "" {
		logger.Info(ctx, s.trans.GetMessage("section_not_found", 0, nil), slog.String("title", s.settings.TitleRow))
		return OutcomeSectionAbsent, nil
	}

	if s.commenter == nil {
		if _, err := fmt.Fprintln(s.out, section); err != nil {
			return OutcomeFailed, fmt.Errorf("write section: %w", err)
		}
		logger.Info(ctx, s.trans.GetMessage("section_printed", 0, nil))
		return OutcomePrinted, nil
	}

	return s.comment(ctx, section), nil
}

// comment never returns the tracker error and never logs its text.
func (s *SectionService) comment(ctx context.Context, section string) Outcome {
	issue, err := s.commenter.CommentOnLatestIssue(ctx, s.settings.ProjectKey, s.settings.IssueTitle, section)
	if err != nil {
		logger.Warn(ctx, s.trans.GetMessage("comment_failed", 0, nil))
		return OutcomeCommentFailed
	}

	logger.Info(ctx, s.trans.GetMessage("comment_posted", 0, nil), slog.String("issue", issue.Key))
	return OutcomeCommented
}
