package contextio

import "strings"

const (
	// RequestLineKey holds the first line of a captured request header block
	RequestLineKey = "Request-Line"
	// StatusLineKey holds the first line of a captured response header block
	StatusLineKey = "Status-Line"
)

// HeaderMap maps header names, case-sensitive as received, to their values
// in the order they appeared. A header seen once has a single value.
type HeaderMap map[string][]string

// Get returns the first value of name, or "" when absent.
func (h HeaderMap) Get(name string) string {
	if vs := h[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Values returns every occurrence of name.
func (h HeaderMap) Values(name string) []string {
	return h[name]
}

// IsMulti reports whether name occurred more than once.
func (h HeaderMap) IsMulti(name string) bool {
	return len(h[name]) > 1
}

// ParsedHeaders holds the parsed request and response header captures.
// Either side is nil when headers were not captured.
type ParsedHeaders struct {
	Request  HeaderMap
	Response HeaderMap
}

type scanState int

const (
	stateFirstLine scanState = iota
	stateHeader
)

// ParseHeaderLines parses raw header lines. The first line is stored
// verbatim (trimmed) under firstLineKey. Lines starting with a space or tab
// continue the previous header's latest value, joined by "\n". Lines without
// a colon are ignored. Returns nil for a nil input.
func ParseHeaderLines(lines []string, firstLineKey string) HeaderMap {
	if lines == nil {
		return nil
	}

	headers := HeaderMap{}
	state := stateFirstLine
	current := ""

	for _, line := range lines {
		switch state {
		case stateFirstLine:
			headers[firstLineKey] = []string{strings.TrimSpace(line)}
			state = stateHeader

		case stateHeader:
			if line != "" && (line[0] == ' ' || line[0] == '\t') {
				vs := headers[current]
				if current == "" || len(vs) == 0 {
					continue
				}
				vs[len(vs)-1] += "\n" + strings.TrimSpace(line)
				continue
			}

			idx := strings.IndexByte(line, ':')
			if idx < 0 {
				continue
			}
			name := strings.TrimSpace(line[:idx])
			value := strings.TrimSpace(line[idx+1:])
			headers[name] = append(headers[name], value)
			current = name
		}
	}

	return headers
}

// splitHeaderBlock splits a raw header block on CR and LF, dropping empty
// lines.
func splitHeaderBlock(block string) []string {
	fields := strings.FieldsFunc(block, func(r rune) bool {
		return r == '\r' || r == '\n'
	})
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			lines = append(lines, f)
		}
	}
	return lines
}
