package syntaxtest

// Highlight is the per-byte style class used when a source is rendered with
// diagnostic ranges overlaid.
type Highlight uint8

const (
	HighlightNone Highlight = iota
	HighlightWarning
	HighlightError
)

// highlightRank orders highlights for overlap resolution: a strictly higher
// rank overwrites whatever is already there, an equal or lower rank only
// fills HighlightNone. Warnings therefore never downgrade an earlier mark
// while errors always win, and adding a severity later means adding one rank
// here instead of re-deriving the policy.
func highlightRank(h Highlight) int {
	switch h {
	case HighlightError:
		return 2
	case HighlightWarning:
		return 1
	default:
		return 0
	}
}

func highlightFor(d Diagnostic) Highlight {
	if d.IsWarning() {
		return HighlightWarning
	}
	return HighlightError
}

// buildOverlay assigns one Highlight per source byte. Records without a
// location contribute nothing; out-of-range bounds are clamped so rendering
// degrades instead of failing. The overlay is rebuilt for every render and
// never shared.
func buildOverlay(source string, diags []Diagnostic) []Highlight {
	overlay := make([]Highlight, len(source))
	for _, d := range diags {
		if !d.HasLocation() {
			continue
		}
		h := highlightFor(d)
		end := min(d.LocationEnd, len(source))
		for i := d.LocationStart; i < end; i++ {
			if highlightRank(h) > highlightRank(overlay[i]) {
				overlay[i] = h
			}
		}
	}
	return overlay
}
