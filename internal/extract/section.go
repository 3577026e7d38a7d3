package extract

import (
	"strings"

	"github.com/Tomas-vilte/PRCompile/internal/regex"
)

// SectionLines returns the lines of document starting at the first line equal
// to titleRow and ending before the next level 1 or 2 heading. Deeper
// headings do not end a section. A trailing "\r" is ignored when matching
// but kept in the returned lines. Returns nil when titleRow is not a line of
// document.
func SectionLines(document, titleRow string) []string {
	lines := strings.Split(document, "\n")
	titleRow = trimCR(titleRow)

	start := -1
	for i, line := range lines {
		if trimCR(line) == titleRow {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if regex.SectionHeading.MatchString(trimCR(lines[i])) {
			end = i
			break
		}
	}

	return lines[start:end]
}

func trimCR(line string) string {
	return strings.TrimSuffix(line, "\r")
}

// Section is SectionLines joined with "\n". Lines are kept verbatim, so a
// blank line before the next heading shows up as a trailing "\n".
func Section(document, titleRow string) string {
	lines := SectionLines(document, titleRow)
	if lines == nil {
		return ""
	}
	return strings.Join(lines, "\n")
}
