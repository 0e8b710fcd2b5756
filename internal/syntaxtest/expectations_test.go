package syntaxtest

import (
	"errors"
	"strings"
	"testing"
)

func TestParseExpectationLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected Diagnostic
	}{
		{
			name: "warning with range",
			line: "Warning: (10-14): Unused variable.",
			expected: Diagnostic{
				Kind:          "Warning",
				Message:       "Unused variable.",
				LocationStart: 10,
				LocationEnd:   14,
			},
		},
		{
			name: "kind without range",
			line: "TypeError: Some message",
			expected: Diagnostic{
				Kind:          "TypeError",
				Message:       "Some message",
				LocationStart: -1,
				LocationEnd:   -1,
			},
		},
		{
			name: "comment leader with zero-length range and empty message",
			line: "// Error: (0-0):",
			expected: Diagnostic{
				Kind:          "Error",
				Message:       "",
				LocationStart: 0,
				LocationEnd:   0,
			},
		},
		{
			name: "many leading slashes and tabs",
			line: "////\t Warning: (3-7): tab indented",
			expected: Diagnostic{
				Kind:          "Warning",
				Message:       "tab indented",
				LocationStart: 3,
				LocationEnd:   7,
			},
		},
		{
			name: "message keeps inner punctuation",
			line: "DeclarationError: (5-9): Identifier (x) already declared: here",
			expected: Diagnostic{
				Kind:          "DeclarationError",
				Message:       "Identifier (x) already declared: here",
				LocationStart: 5,
				LocationEnd:   9,
			},
		},
		{
			name: "kind without colon or message",
			line: "Error",
			expected: Diagnostic{
				Kind:          "Error",
				Message:       "",
				LocationStart: -1,
				LocationEnd:   -1,
			},
		},
		{
			name: "multi-digit offsets",
			line: "Error: (120-4031): big file",
			expected: Diagnostic{
				Kind:          "Error",
				Message:       "big file",
				LocationStart: 120,
				LocationEnd:   4031,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseExpectationLine(tt.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ok {
				t.Fatalf("expected a record, got none")
			}
			if got != tt.expected {
				t.Errorf("parsed %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseExpectationLine_Blank(t *testing.T) {
	for _, line := range []string{"", "   ", "//", "////   ", "\t"} {
		_, ok, err := ParseExpectationLine(line)
		if err != nil {
			t.Fatalf("line %q: unexpected error: %v", line, err)
		}
		if ok {
			t.Errorf("line %q: expected no record", line)
		}
	}
}

func TestParseExpectationLine_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "missing second integer", line: "Error: (5-"},
		{name: "missing first integer", line: "Error: (-5): msg"},
		{name: "missing closing paren", line: "Error: (5-6: msg"},
		{name: "missing colon after paren", line: "Error: (5-6) msg"},
		{name: "non-digit in location", line: "Error: (a-6): msg"},
		{name: "open paren at end of line", line: "Error: ("},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseExpectationLine(tt.line)
			if !errors.Is(err, ErrMalformedExpectation) {
				t.Fatalf("expected ErrMalformedExpectation, got %v", err)
			}
		})
	}
}

func TestParseExpectations(t *testing.T) {
	block := strings.Join([]string{
		"// Warning: (10-14): Unused variable.",
		"//",
		"// TypeError: Some message",
		"",
		"// Error: (0-0):",
	}, "\n") + "\n"

	got, err := ParseExpectations(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []Diagnostic{
		{Kind: "Warning", Message: "Unused variable.", LocationStart: 10, LocationEnd: 14},
		{Kind: "TypeError", Message: "Some message", LocationStart: -1, LocationEnd: -1},
		{Kind: "Error", Message: "", LocationStart: 0, LocationEnd: 0},
	}
	if !Equal(expected, got) {
		t.Errorf("parsed %+v, want %+v", got, expected)
	}
}

func TestParseExpectations_EmptyBlock(t *testing.T) {
	got, err := ParseExpectations("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %+v", got)
	}
}

func TestParseExpectations_FatalOnFirstViolation(t *testing.T) {
	block := "// Warning: (1-2): fine\n// Error: (5-\n// Error: (3-4): never reached\n"
	_, err := ParseExpectations(block)
	if !errors.Is(err, ErrMalformedExpectation) {
		t.Fatalf("expected ErrMalformedExpectation, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the offending line: %v", err)
	}
}

func TestParseExpectations_NoParenMeansNoLocation(t *testing.T) {
	lines := []string{
		"Warning: no location at all",
		"// ParserError: something else",
		"Exception: with: extra: colons",
	}
	for _, line := range lines {
		d, ok, err := ParseExpectationLine(line)
		if err != nil || !ok {
			t.Fatalf("line %q: ok=%v err=%v", line, ok, err)
		}
		if d.LocationStart != -1 || d.LocationEnd != -1 {
			t.Errorf("line %q: expected no location, got (%d-%d)", line, d.LocationStart, d.LocationEnd)
		}
	}
}
