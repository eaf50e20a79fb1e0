package labels

import (
	"bytes"
	"fmt"
	"strings"
)

// Named delimiters accepted in specification files. "eol" matches any line
// ending.
var namedDelimiters = map[string][][]byte{
	"tab":  {{'\t'}},
	"lf":   {{'\n'}},
	"cr":   {{'\r'}},
	"crlf": {{'\r', '\n'}},
	"nul":  {{0}},
	"eol":  {{'\r', '\n'}, {'\r'}, {'\n'}},
}

// NamedDelimiter returns the byte sequences a delimiter name stands for.
func NamedDelimiter(name string) ([][]byte, error) {
	d, ok := namedDelimiters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown delimiter %q", name)
	}
	return d, nil
}

// SplitDelimited cuts data at every occurrence of any delimiter. When two
// delimiters match at the same position the longer one wins. A trailing
// delimiter does not produce an empty final piece.
func SplitDelimited(data []byte, delimiters [][]byte) [][]byte {
	var parts [][]byte
	start := 0
	for pos := 0; pos < len(data); {
		n := matchAt(data[pos:], delimiters)
		if n == 0 {
			pos++
			continue
		}
		parts = append(parts, data[start:pos])
		pos += n
		start = pos
	}
	if start < len(data) {
		parts = append(parts, data[start:])
	}
	return parts
}

func matchAt(data []byte, delimiters [][]byte) int {
	best := 0
	for _, d := range delimiters {
		if len(d) > best && bytes.HasPrefix(data, d) {
			best = len(d)
		}
	}
	return best
}

// FromParts maps five or six delimited pieces onto a label set. Six pieces
// start with the language name; with five the name is left unset.
func FromParts[T any](parts []T, zero T) (Set[T], error) {
	var out Set[T]
	switch len(parts) {
	case Count:
		for i, p := range parts {
			out.Put(Field(i), p)
		}
	case Count - 1:
		out.LanguageName = zero
		for i, p := range parts {
			out.Put(Field(i+1), p)
		}
	default:
		return out, fmt.Errorf("expected %d or %d labels, found %d", Count-1, Count, len(parts))
	}
	return out, nil
}
