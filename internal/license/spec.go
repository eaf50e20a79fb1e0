package license

import (
	"encoding/base64"
	"fmt"
	"strings"

	"dmglicense/internal/charset"
	"dmglicense/internal/labels"
	"dmglicense/internal/language"
)

// ContentType selects the resource a license body is stored in.
type ContentType int

const (
	// Unspecified lets the file name decide.
	Unspecified ContentType = iota
	PlainText
	RichText
)

// ResourceType returns the four-character resource type for the body.
func (t ContentType) ResourceType() string {
	if t == RichText {
		return "RTF "
	}
	return "TEXT"
}

func (t ContentType) String() string {
	switch t {
	case PlainText:
		return "plain"
	case RichText:
		return "rtf"
	default:
		return "unspecified"
	}
}

// ParseContentType accepts "plain", "text", "rtf" and the empty string.
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Unspecified, nil
	case "plain", "text", "txt":
		return PlainText, nil
	case "rtf":
		return RichText, nil
	}
	return Unspecified, fmt.Errorf("unknown body type %q (expected plain or rtf)", s)
}

// BodyEntry declares the license text for a group of languages. Exactly one
// of Text and File is set.
type BodyEntry struct {
	Languages []language.Specifier
	Text      *charset.Source
	File      string
	// Charset of File. Empty means UTF-8.
	Charset string
	// Base64 marks File as holding base64 text of the body bytes.
	Base64  bool
	Type    ContentType
	Default bool
}

// LabelEntry declares the dialog labels for a group of languages.
type LabelEntry struct {
	Languages []language.Specifier
	Default   bool
	Source    LabelSource
}

// LabelSource is one of InlineLabels, OnePerFileLabels, DelimitedLabels,
// RawLabels or JSONLabels.
type LabelSource interface {
	load(ctx *loadContext, lang *language.Language) ([]byte, error)
	// Kind names the source in diagnostics.
	Kind() string
}

// InlineLabels carries label text directly. A nil LanguageName is filled in.
type InlineLabels struct {
	Labels labels.Set[*charset.Source]
}

func (InlineLabels) Kind() string { return "inline" }

// OnePerFileLabels reads each label from its own file. An empty LanguageName
// path leaves the language name implicit.
type OnePerFileLabels struct {
	Files   labels.Set[string]
	Charset string
	Base64  bool
}

func (OnePerFileLabels) Kind() string { return "one-per-file" }

// DelimitedLabels reads five or six labels from one file split at any of
// Delimiters. Six pieces start with the language name.
type DelimitedLabels struct {
	File       string
	Delimiters [][]byte
	Charset    string
	Base64     bool
}

func (DelimitedLabels) Kind() string { return "delimited" }

// RawLabels reads an already packed label resource and uses it verbatim.
type RawLabels struct {
	File string
}

func (RawLabels) Kind() string { return "raw" }

// JSONLabels reads a JSON object whose string properties are the labels.
// With Base64 set the strings hold base64 bytes in Charset.
type JSONLabels struct {
	File    string
	Charset string
	Base64  bool
}

func (JSONLabels) Kind() string { return "json" }

// Specification is a complete license declaration.
type Specification struct {
	Bodies          []BodyEntry
	Labels          []LabelEntry
	DefaultLanguage *language.Specifier
}

func decodeBase64File(data []byte, path string) ([]byte, error) {
	out, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("file %q is not valid base64: %w", path, err)
	}
	return out, nil
}

// CodedText builds a charset source from specification text. With isBase64
// the text is decoded to raw bytes in cs; otherwise it is Unicode text unless
// cs is Native.
func CodedText(text, cs string, isBase64 bool) (*charset.Source, error) {
	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("invalid base64 text: %w", err)
		}
		return &charset.Source{Data: data, Charset: cs}, nil
	}
	if strings.EqualFold(strings.TrimSpace(cs), charset.Native) {
		return &charset.Source{Data: []byte(text), Charset: charset.Native}, nil
	}
	return &charset.Source{Text: text}, nil
}
