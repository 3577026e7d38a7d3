// Package extract holds the text handling of the pipeline: reading the PR
// number out of a commit message and cutting a markdown section out of a PR
// description. Nothing here touches the network or the environment.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	domainErrors "github.com/Tomas-vilte/PRCompile/internal/errors"
)

// FirstLine returns the first line of message. An empty message yields "".
func FirstLine(message string) string {
	first, _, _ := strings.Cut(message, "\n")
	return first
}

// FindPRNumber searches the first line of message with pattern and parses the
// first capturing group of the leftmost match. found is false when the first
// line has no match. A match whose group is empty or not a base-10 int
// returns ErrInvalidPRNumber.
func FindPRNumber(message string, pattern *regexp.Regexp) (number int, found bool, err error) {
	match := pattern.FindStringSubmatch(FirstLine(message))
	if match == nil {
		return 0, false, nil
	}
	if len(match) < 2 {
		return 0, false, domainErrors.ErrInvalidPRNumber.WithContext("pattern", pattern.String())
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false, domainErrors.ErrInvalidPRNumber.WithError(err).WithContext("match", match[0])
	}
	return n, true, nil
}

// PRNumber is FindPRNumber with 0 standing for "not found".
func PRNumber(message string, pattern *regexp.Regexp) (int, error) {
	n, _, err := FindPRNumber(message, pattern)
	return n, err
}

// Observer receives the first line and the parse result of every Parse call.
type Observer func(firstLine string, number int, found bool)

// Parser binds a PR number pattern to an optional Observer.
type Parser struct {
	pattern  *regexp.Regexp
	observer Observer
}

func NewParser(pattern *regexp.Regexp, observer Observer) *Parser {
	return &Parser{
		pattern:  pattern,
		observer: observer,
	}
}

func (p *Parser) Pattern() *regexp.Regexp {
	return p.pattern
}

// Parse behaves like FindPRNumber. The observer is not called on error.
func (p *Parser) Parse(message string) (int, bool, error) {
	n, found, err := FindPRNumber(message, p.pattern)
	if err != nil {
		return 0, false, err
	}
	if p.observer != nil {
		p.observer(FirstLine(message), n, found)
	}
	return n, found, nil
}
