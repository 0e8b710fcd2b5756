package fixture

import (
	"fmt"
	"os"

	"github.com/ayrat555/solidity/internal/syntaxtest"
)

// WriteUpdatedExpectations rewrites the fixture on disk so that its
// expectation block matches diags, using the same line format the diff
// printer emits. Source and settings sections are preserved byte-for-byte.
// An empty list removes the block entirely.
func (f *Fixture) WriteUpdatedExpectations(diags []syntaxtest.Diagnostic) error {
	if f.Path == "" {
		return fmt.Errorf("fixture has no backing file")
	}

	head := f.content
	if f.hasExpectations {
		head = f.content[:f.delimiterOffset]
	}

	out := make([]byte, 0, len(head)+64*len(diags))
	out = append(out, head...)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	if len(diags) > 0 {
		out = append(out, expectationDelimiter...)
		out = append(out, '\n')
		for _, d := range diags {
			out = append(out, settingsPrefix...)
			out = append(out, syntaxtest.FormatDiagnostic(d)...)
			out = append(out, '\n')
		}
	}

	if err := os.WriteFile(f.Path, out, 0o644); err != nil {
		return fmt.Errorf("failed to update expectations: %w", err)
	}
	f.content = out
	return nil
}
