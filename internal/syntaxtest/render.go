package syntaxtest

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Raw SGR sequences for the highlight classes. The renderer streams the
// source with run-length style transitions, so it needs bare sequences
// rather than wrapped strings: background red for error ranges, background
// orange (256-color) for warning ranges.
var (
	styleReset   = termenv.CSI + termenv.ResetSeq + "m"
	styleError   = termenv.CSI + termenv.ANSIRed.Sequence(true) + "m"
	styleWarning = termenv.CSI + termenv.ANSI256Color(202).Sequence(true) + "m"
)

func highlightMarker(h Highlight) string {
	switch h {
	case HighlightError:
		return styleError
	case HighlightWarning:
		return styleWarning
	default:
		return styleReset
	}
}

// PrintSource streams the test source to w, one linePrefix-led line at a
// time. In formatted mode each byte is styled according to the diagnostics'
// overlay: a style marker is emitted only when the class changes, every line
// is reset before its break and restyled from its own start, and the stream
// ends on a reset. An empty source renders nothing. Rendering never fails.
func PrintSource(w io.Writer, source string, diags []Diagnostic, linePrefix string, formatted bool) {
	if source == "" {
		return
	}
	if !formatted {
		printPlainSource(w, source, linePrefix)
		return
	}

	overlay := buildOverlay(source, diags)
	current := overlay[0]
	fmt.Fprint(w, linePrefix, highlightMarker(current))
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			fmt.Fprint(w, styleReset, "\n")
			if i+1 < len(source) {
				current = overlay[i+1]
				fmt.Fprint(w, linePrefix, highlightMarker(current))
			}
			continue
		}
		if overlay[i] != current {
			current = overlay[i]
			fmt.Fprint(w, highlightMarker(current))
		}
		fmt.Fprint(w, source[i:i+1])
	}
	fmt.Fprint(w, styleReset)
}

// printPlainSource re-emits each source line behind the prefix with no
// styling at all. A trailing line break does not produce an extra empty line.
func printPlainSource(w io.Writer, source string, linePrefix string) {
	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		fmt.Fprintf(w, "%s%s\n", linePrefix, line)
	}
}
