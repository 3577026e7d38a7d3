package regex

import "regexp"

var (
	// PR number patterns, selectable by name through PR_NUMBER_PATTERN
	DefaultPRNumber = regexp.MustCompile(`#(\d*)`)
	MergeCommitPR   = regexp.MustCompile(`Merge pull request #(\d+)`)
	SquashCommitPR  = regexp.MustCompile(`\(#(\d+)\)`)

	// Markdown section boundary: level 1 and 2 headings only
	SectionHeading = regexp.MustCompile(`^#{1,2} `)

	// Repository identifier
	OwnerRepo = regexp.MustCompile(`^([^/\s]+)/([^/\s]+)$`)
)

// PRNumberPresets maps the names accepted in place of a raw pattern.
var PRNumberPresets = map[string]*regexp.Regexp{
	"default": DefaultPRNumber,
	"merge":   MergeCommitPR,
	"squash":  SquashCommitPR,
}
