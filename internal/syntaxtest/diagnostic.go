package syntaxtest

import (
	"slices"
	"strings"
)

// Diagnostic is one reported condition, either expected (decoded from a
// fixture's expectation block) or actual (collected from a frontend run).
// LocationStart and LocationEnd are half-open byte offsets into the original
// test source; -1 marks an unknown bound. Records are value data: once built
// they are never mutated, only compared and printed.
type Diagnostic struct {
	Kind          string
	Message       string
	LocationStart int
	LocationEnd   int
}

// HasLocation reports whether both bounds are known.
func (d Diagnostic) HasLocation() bool {
	return d.LocationStart >= 0 && d.LocationEnd >= 0
}

// IsWarning reports whether the record belongs to the warning severity class.
// Every other kind, including frontend-internal exception names, counts as an
// error for highlighting purposes.
func (d Diagnostic) IsWarning() bool {
	return d.Kind == "Warning"
}

// EscapeMessage rewrites real line breaks into the literal two-character
// sequence `\n` so that stored messages stay single-line. Expected and actual
// records must go through the same escaping for comparison to be meaningful.
func EscapeMessage(msg string) string {
	return strings.ReplaceAll(msg, "\n", `\n`)
}

// Equal reports whether two diagnostic lists hold pairwise-equal records in
// the same order. There are no set semantics: emission order is part of the
// contract.
func Equal(expected, actual []Diagnostic) bool {
	return slices.Equal(expected, actual)
}
