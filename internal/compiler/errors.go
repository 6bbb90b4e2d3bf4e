package compiler

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/hbollon/go-edlib"
)

// Sentinel errors each of the three taxonomy kinds wraps, so callers can
// errors.Is against the kind without caring about the offending fragment.
var (
	ErrParseFailure         = errors.New("failed to parse query")
	ErrUnsupportedConstruct = errors.New("unsupported construct")
	ErrSemanticViolation    = errors.New("semantic violation")
)

// ParseFailure means closure/source text could not be tokenized or
// parsed, or the outer shape was not recognizable.
type ParseFailure struct {
	Fragment string
	Reason   string
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("%s: %s (near %q)", ErrParseFailure, e.Reason, e.Fragment)
}

func (e *ParseFailure) Unwrap() error { return ErrParseFailure }

// UnsupportedConstruct means a construct outside the accepted grammar
// appeared inside a builder closure or textual predicate.
type UnsupportedConstruct struct {
	Construct string
	Detail    string
}

func (e *UnsupportedConstruct) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrUnsupportedConstruct, e.Construct)
	}

	return fmt.Sprintf("%s: %s (%s)", ErrUnsupportedConstruct, e.Construct, e.Detail)
}

func (e *UnsupportedConstruct) Unwrap() error { return ErrUnsupportedConstruct }

// SemanticViolation means a construct was grammatically accepted but
// breaks one of the compiler's invariants (thenBy without orderBy, a
// join key that isn't a simple column, a delete without WHERE, ...).
type SemanticViolation struct {
	Rule       string
	Detail     string
	Suggestion string
}

func (e *SemanticViolation) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrSemanticViolation, e.Rule)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	if e.Suggestion != "" {
		msg += " (did you mean " + e.Suggestion + "?)"
	}

	return msg
}

func (e *SemanticViolation) Unwrap() error { return ErrSemanticViolation }

// suggestColumn returns the closest known name to an unresolved
// identifier, via Levenshtein edit distance, for use in a
// SemanticViolation's Suggestion field. Returns "" when no candidate is
// within a plausible typo distance, or when two candidates tie.
func suggestColumn(name string, known []string) string {
	if len(known) == 0 {
		return ""
	}

	var (
		best      string
		minDist   = -1
		ambiguous bool
	)

	for _, candidate := range known {
		distance := edlib.LevenshteinDistance(name, candidate)
		switch {
		case minDist < 0 || distance < minDist:
			minDist, best, ambiguous = distance, candidate, false
		case distance == minDist:
			ambiguous = true
		}
	}

	if ambiguous || minDist > len(name)/2+1 {
		return ""
	}

	return best
}

// humanizeCount renders a large count for a diagnostic message, e.g.
// "parameter bag has 1,234 entries".
func humanizeCount(n int, noun string) string {
	return fmt.Sprintf("%s %s", humanize.Comma(int64(n)), noun)
}
