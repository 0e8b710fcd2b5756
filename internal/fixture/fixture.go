package fixture

import (
	"crypto/sha256"
	"fmt"
	"os"
	"slices"
	"strings"

	"fortio.org/safecast"
)

const (
	settingsDelimiter    = "// ===="
	expectationDelimiter = "// ----"
	settingsPrefix       = "// "
)

// Fixture is one syntax-test file split into its sections: the test source,
// optional `key: value` settings behind a `// ====` delimiter, and the raw
// expectation block behind a `// ----` delimiter. Offsets inside Source are
// what diagnostic locations refer to, so the split must not rewrite the
// source beyond CRLF/BOM normalization.
type Fixture struct {
	Path         string
	Source       string
	Settings     map[string]string
	Expectations string

	// delimiterOffset is the byte offset of the `// ----` line inside the
	// normalized file content; everything before it is preserved verbatim
	// when the expectation block is rewritten.
	delimiterOffset uint32
	hasExpectations bool
	content         []byte
}

// Digest identifies the fixture's normalized content, used as a cache key.
func (f *Fixture) Digest() [sha256.Size]byte {
	return sha256.Sum256(f.content)
}

// Load reads and splits a syntax-test file. A file without the expectation
// delimiter is valid and carries an empty expectation block.
func Load(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test fixture: %w", err)
	}
	f, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

func parse(raw []byte) (*Fixture, error) {
	content, _ := normalizeCRLF(raw)
	content, _ = removeBOM(content)

	f := &Fixture{
		Settings: make(map[string]string),
		content:  content,
	}

	var source strings.Builder
	text := string(content)
	sourcePart := true
	lineNo := 0
	offset := 0
	for offset < len(text) {
		lineNo++
		lineEnd := strings.IndexByte(text[offset:], '\n')
		var line string
		next := len(text)
		if lineEnd >= 0 {
			line = text[offset : offset+lineEnd]
			next = offset + lineEnd + 1
		} else {
			line = text[offset:]
		}

		switch {
		case strings.HasPrefix(line, expectationDelimiter):
			off, err := safecast.Conv[uint32](offset)
			if err != nil {
				return nil, fmt.Errorf("line %d: fixture too large: %w", lineNo, err)
			}
			f.delimiterOffset = off
			f.hasExpectations = true
			f.Source = source.String()
			f.Expectations = text[next:]
			return f, nil
		case strings.HasPrefix(line, settingsDelimiter):
			sourcePart = false
		case sourcePart:
			source.WriteString(line)
			source.WriteByte('\n')
		default:
			key, value, err := parseSettingLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			f.Settings[key] = value
		}
		offset = next
	}

	f.Source = source.String()
	return f, nil
}

// parseSettingLine decodes one `// key: value` line from the settings
// section.
func parseSettingLine(line string) (string, string, error) {
	body, ok := strings.CutPrefix(line, settingsPrefix)
	if !ok {
		return "", "", fmt.Errorf("expected a \"// key: value\" setting or the %q delimiter, got %q", expectationDelimiter, line)
	}
	key, value, ok := strings.Cut(body, ":")
	if !ok {
		return "", "", fmt.Errorf("setting %q is missing a colon", line)
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", fmt.Errorf("setting %q has an empty key", line)
	}
	return key, value, nil
}

// normalizeCRLF replaces every \r\n with \n, leaving lone \r untouched.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}
	out := make([]byte, 0, len(content))
	changed := false
	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}
