package syntaxtest

import "testing"

func TestEqual(t *testing.T) {
	a := Diagnostic{Kind: "Error", Message: "first", LocationStart: 0, LocationEnd: 4}
	b := Diagnostic{Kind: "Warning", Message: "second", LocationStart: 5, LocationEnd: 9}

	tests := []struct {
		name     string
		expected []Diagnostic
		actual   []Diagnostic
		equal    bool
	}{
		{name: "both empty", expected: nil, actual: nil, equal: true},
		{name: "nil vs empty", expected: nil, actual: []Diagnostic{}, equal: true},
		{name: "same order", expected: []Diagnostic{a, b}, actual: []Diagnostic{a, b}, equal: true},
		{name: "different order", expected: []Diagnostic{a, b}, actual: []Diagnostic{b, a}, equal: false},
		{name: "different length", expected: []Diagnostic{a}, actual: []Diagnostic{a, a}, equal: false},
		{
			name:     "message differs",
			expected: []Diagnostic{a},
			actual:   []Diagnostic{{Kind: "Error", Message: "other", LocationStart: 0, LocationEnd: 4}},
			equal:    false,
		},
		{
			name:     "absent location differs from zero location",
			expected: []Diagnostic{{Kind: "Error", LocationStart: -1, LocationEnd: -1}},
			actual:   []Diagnostic{{Kind: "Error", LocationStart: 0, LocationEnd: 0}},
			equal:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.expected, tt.actual); got != tt.equal {
				t.Errorf("Equal() = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestEscapeMessage(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "no breaks", in: "plain message", expected: "plain message"},
		{name: "single break", in: "first\nsecond", expected: `first\nsecond`},
		{name: "trailing break", in: "line\n", expected: `line\n`},
		{name: "already escaped stays", in: `literal \n stays`, expected: `literal \n stays`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeMessage(tt.in); got != tt.expected {
				t.Errorf("EscapeMessage(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}

// Printing a record and re-parsing the printed line must reproduce the kind
// and both bounds; the message survives as long as it needs no escaping the
// line format does not already provide.
func TestFormatParseRoundTrip(t *testing.T) {
	records := []Diagnostic{
		{Kind: "Warning", Message: "Unused variable.", LocationStart: 10, LocationEnd: 14},
		{Kind: "TypeError", Message: "Some message", LocationStart: -1, LocationEnd: -1},
		{Kind: "Error", Message: "", LocationStart: 0, LocationEnd: 0},
		{Kind: "UnimplementedFeatureError", Message: "not yet", LocationStart: -1, LocationEnd: -1},
	}

	for _, r := range records {
		line := FormatDiagnostic(r)
		got, ok, err := ParseExpectationLine(line)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", line, err)
		}
		if !ok {
			t.Fatalf("%q: expected a record", line)
		}
		if got != r {
			t.Errorf("round trip of %+v through %q gave %+v", r, line, got)
		}
	}
}
