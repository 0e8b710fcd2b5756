package syntaxtest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
)

// paint styles s when formatted output was requested. Severity only ever
// changes the style class, never the text itself.
func paint(c *color.Color, formatted bool, s string) string {
	if !formatted {
		return s
	}
	return c.Sprint(s)
}

// FormatDiagnostic renders one record in the fixture line format:
//
//	Kind: (start-end): message
//	Kind: message
//
// The parenthesized segment is dropped only when both bounds are unknown;
// a single unknown bound keeps the parens and dash and omits its digits.
// This format is the wire format shared with fixtures and frontends, so it
// must stay bit-exact.
func FormatDiagnostic(d Diagnostic) string {
	var b strings.Builder
	b.WriteString(d.Kind)
	b.WriteString(": ")
	b.WriteString(formatLocation(d))
	b.WriteString(d.Message)
	return b.String()
}

func formatLocation(d Diagnostic) string {
	if d.LocationStart < 0 && d.LocationEnd < 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('(')
	if d.LocationStart >= 0 {
		b.WriteString(strconv.Itoa(d.LocationStart))
	}
	b.WriteByte('-')
	if d.LocationEnd >= 0 {
		b.WriteString(strconv.Itoa(d.LocationEnd))
	}
	b.WriteString("): ")
	return b.String()
}

// PrintList writes one line per record behind linePrefix, or a single
// success marker when the list is empty. The kind and its colon are colored
// by severity class in formatted mode.
func PrintList(w io.Writer, diags []Diagnostic, linePrefix string, formatted bool) {
	if len(diags) == 0 {
		fmt.Fprintln(w, paint(successColor, formatted, linePrefix+"Success"))
		return
	}
	for _, d := range diags {
		c := errorColor
		if d.IsWarning() {
			c = warningColor
		}
		fmt.Fprint(w, paint(c, formatted, linePrefix+d.Kind+": "))
		fmt.Fprint(w, formatLocation(d))
		fmt.Fprintln(w, d.Message)
	}
}

// PrintMismatch writes the expected and obtained lists in a uniform layout,
// used whenever the comparator reports inequality.
func PrintMismatch(w io.Writer, expected, actual []Diagnostic, linePrefix string, formatted bool) {
	nextIndent := linePrefix + "  "
	fmt.Fprintln(w, paint(headerColor, formatted, linePrefix+"Expected result:"))
	PrintList(w, expected, nextIndent, formatted)
	fmt.Fprintln(w, paint(headerColor, formatted, linePrefix+"Obtained result:"))
	PrintList(w, actual, nextIndent, formatted)
}
