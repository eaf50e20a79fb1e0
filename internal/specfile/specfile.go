// Package specfile reads license specifications from JSON or TOML files.
//
// A specification lists license bodies and label sets, each tagged with the
// languages it serves:
//
//	{
//	  "body": [
//	    {"lang": ["en-US", "en-GB"], "file": "license-en.rtf"},
//	    {"lang": "fr", "text": "Licence", "type": "plain"}
//	  ],
//	  "labels": [
//	    {"lang": "de", "type": "delimited", "file": "de.txt", "delimiters": ["eol"]}
//	  ],
//	  "defaultLang": "en-US"
//	}
//
// TOML files use the same keys with [[body]] and [[labels]] tables. Relative
// file references resolve against the directory of the specification file.
package specfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"dmglicense/internal/license"
)

// Format is the syntax of a specification file.
type Format int

const (
	JSON Format = iota
	TOML
)

func (f Format) String() string {
	if f == TOML {
		return "TOML"
	}
	return "JSON"
}

// FormatFor picks the format from the file extension. Anything but .toml is
// read as JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return JSON
}

// InvalidError reports a malformed or inconsistent specification.
type InvalidError struct {
	Source string
	Format Format
	Err    error
}

func (e *InvalidError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s license specification is not valid: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("%s license specification %q is not valid: %v", e.Format, e.Source, e.Err)
}

func (e *InvalidError) Unwrap() error { return e.Err }

// Loaded is a decoded specification file.
type Loaded struct {
	Path string
	Spec *license.Specification
}

// ResolvePath resolves a file reference from the specification.
func (l *Loaded) ResolvePath(p string) string {
	return Resolver(filepath.Dir(l.Path))(p)
}

// Resolver returns a path resolver anchored at dir.
func Resolver(dir string) func(string) string {
	return func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
}

// Load reads and decodes the specification at path.
func Load(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read license specification: %w", err)
	}
	format := FormatFor(path)
	spec, err := Parse(data, format)
	if err != nil {
		var invalid *InvalidError
		if errors.As(err, &invalid) {
			invalid.Source = path
		}
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Loaded{Path: abs, Spec: spec}, nil
}

// Parse decodes a specification. Every problem found is reported, not just
// the first.
func Parse(data []byte, format Format) (*license.Specification, error) {
	var doc document
	if err := decode(data, format, &doc); err != nil {
		return nil, &InvalidError{Format: format, Err: err}
	}
	spec, err := doc.specification()
	if err != nil {
		return nil, &InvalidError{Format: format, Err: err}
	}
	return spec, nil
}

func decode(data []byte, format Format, doc *document) error {
	if format == TOML {
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return fmt.Errorf("not well formed: %w", err)
		}
		// The TOML tree is re-read through the JSON decoder so both formats
		// share one set of field rules.
		converted, err := json.Marshal(tree)
		if err != nil {
			return fmt.Errorf("convert TOML document: %w", err)
		}
		data = converted
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("not well formed: %w", err)
	}
	if dec.More() {
		return errors.New("not well formed: unexpected data after the top-level object")
	}
	return nil
}
