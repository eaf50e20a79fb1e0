package specfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dmglicense/internal/charset"
	"dmglicense/internal/errlist"
	"dmglicense/internal/labels"
	"dmglicense/internal/language"
	"dmglicense/internal/license"
)

const encodingBase64 = "base64"

type document struct {
	Body        []bodyDoc       `json:"body"`
	Labels      []labelsDoc     `json:"labels"`
	DefaultLang json.RawMessage `json:"defaultLang"`
}

type bodyDoc struct {
	Lang     json.RawMessage `json:"lang"`
	Text     *string         `json:"text"`
	File     string          `json:"file"`
	Charset  string          `json:"charset"`
	Encoding string          `json:"encoding"`
	Type     string          `json:"type"`
	Default  bool            `json:"default"`
}

type labelsDoc struct {
	Lang         json.RawMessage `json:"lang"`
	Type         string          `json:"type"`
	File         string          `json:"file"`
	Charset      string          `json:"charset"`
	Encoding     string          `json:"encoding"`
	Delimiters   json.RawMessage `json:"delimiters"`
	Default      bool            `json:"default"`
	LanguageName *string         `json:"languageName"`
	Agree        *string         `json:"agree"`
	Disagree     *string         `json:"disagree"`
	Print        *string         `json:"print"`
	Save         *string         `json:"save"`
	Message      *string         `json:"message"`
}

func (d *labelsDoc) fields() labels.Set[*string] {
	return labels.Set[*string]{
		LanguageName: d.LanguageName,
		Agree:        d.Agree,
		Disagree:     d.Disagree,
		Print:        d.Print,
		Save:         d.Save,
		Message:      d.Message,
	}
}

// fieldError places err at a location such as body[1].lang.
type fieldError struct {
	Path string
	Err  error
}

func (e *fieldError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *fieldError) Unwrap() error { return e.Err }

type checker struct {
	errs errlist.Buffer
}

func (c *checker) fail(path string, format string, args ...any) {
	c.errs.Add(&fieldError{Path: path, Err: fmt.Errorf(format, args...)})
}

func (c *checker) wrap(path string, err error) {
	if err != nil {
		c.errs.Add(&fieldError{Path: path, Err: err})
	}
}

func (d *document) specification() (*license.Specification, error) {
	var c checker
	spec := &license.Specification{}

	if len(d.Body) == 0 {
		c.fail("body", "at least one license body is required")
	}
	for i := range d.Body {
		if entry, ok := c.body(fmt.Sprintf("body[%d]", i), &d.Body[i]); ok {
			spec.Bodies = append(spec.Bodies, entry)
		}
	}
	for i := range d.Labels {
		if entry, ok := c.labels(fmt.Sprintf("labels[%d]", i), &d.Labels[i]); ok {
			spec.Labels = append(spec.Labels, entry)
		}
	}
	if len(d.DefaultLang) > 0 && string(d.DefaultLang) != "null" {
		var v any
		if err := unmarshalNumber(d.DefaultLang, &v); err != nil {
			c.wrap("defaultLang", err)
		} else if s, err := specifierOf(v); err != nil {
			c.wrap("defaultLang", err)
		} else {
			spec.DefaultLanguage = &s
		}
	}

	if err := c.errs.Err(); err != nil {
		return nil, err
	}
	return spec, nil
}

func (c *checker) langs(path string, raw json.RawMessage) ([]language.Specifier, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		c.fail(path, "is required")
		return nil, false
	}
	var v any
	if err := unmarshalNumber(raw, &v); err != nil {
		c.wrap(path, err)
		return nil, false
	}
	items, isList := v.([]any)
	if !isList {
		items = []any{v}
	}
	if len(items) == 0 {
		c.fail(path, "must name at least one language")
		return nil, false
	}
	out := make([]language.Specifier, 0, len(items))
	ok := true
	for i, item := range items {
		s, err := specifierOf(item)
		if err != nil {
			if isList {
				c.wrap(fmt.Sprintf("%s[%d]", path, i), err)
			} else {
				c.wrap(path, err)
			}
			ok = false
			continue
		}
		out = append(out, s)
	}
	return out, ok
}

func specifierOf(v any) (language.Specifier, error) {
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return language.Specifier{}, errors.New("language tag is empty")
		}
		return language.Tag(strings.TrimSpace(x)), nil
	case json.Number:
		id, err := strconv.Atoi(x.String())
		if err != nil || id < 0 {
			return language.Specifier{}, fmt.Errorf("language ID %s is not a non-negative integer", x)
		}
		return language.ID(id), nil
	}
	return language.Specifier{}, fmt.Errorf("language must be a tag or a numeric ID, not %s", kindOf(v))
}

func (c *checker) body(path string, d *bodyDoc) (license.BodyEntry, bool) {
	before := c.errs.Len()
	langs, _ := c.langs(path+".lang", d.Lang)
	entry := license.BodyEntry{Languages: langs, Default: d.Default}

	typ, err := license.ParseContentType(d.Type)
	c.wrap(path+".type", err)
	entry.Type = typ

	isBase64 := c.encoding(path+".encoding", d.Encoding)
	switch {
	case d.Text != nil && d.File != "":
		c.fail(path, "text and file are mutually exclusive")
	case d.Text == nil && d.File == "":
		c.fail(path, "one of text or file is required")
	case d.Text != nil:
		if isBase64 && strings.TrimSpace(d.Charset) == "" {
			c.fail(path+".charset", "is required with base64 encoding")
		}
		if !isBase64 && !inlineCharsetAllowed(d.Charset) {
			c.fail(path+".charset", "%q only applies to base64 or file text", d.Charset)
		}
		src, err := license.CodedText(*d.Text, d.Charset, isBase64)
		c.wrap(path+".text", err)
		entry.Text = src
	default:
		entry.File = d.File
		entry.Charset = d.Charset
		entry.Base64 = isBase64
	}
	return entry, c.errs.Len() == before
}

func (c *checker) labels(path string, d *labelsDoc) (license.LabelEntry, bool) {
	before := c.errs.Len()
	langs, _ := c.langs(path+".lang", d.Lang)
	entry := license.LabelEntry{Languages: langs, Default: d.Default}

	kind := strings.ToLower(strings.TrimSpace(d.Type))
	if kind == "" {
		kind = "inline"
	}
	isBase64 := c.encoding(path+".encoding", d.Encoding)
	fields := d.fields()
	hasFields := false
	for _, f := range labels.Fields() {
		if fields.Get(f) != nil {
			hasFields = true
		}
	}
	forbid := func(name string, present bool) {
		if present {
			c.fail(path+"."+name, "is not allowed for %s labels", kind)
		}
	}
	forbidText := func() {
		if hasFields {
			c.fail(path, "label text properties are not allowed for %s labels", kind)
		}
	}
	requireFile := func() {
		if d.File == "" {
			c.fail(path+".file", "is required for %s labels", kind)
		}
	}

	switch kind {
	case "inline":
		forbid("file", d.File != "")
		forbid("delimiters", len(d.Delimiters) > 0)
		if isBase64 && strings.TrimSpace(d.Charset) == "" {
			c.fail(path+".charset", "is required with base64 encoding")
		}
		if !isBase64 && !inlineCharsetAllowed(d.Charset) {
			c.fail(path+".charset", "%q only applies to base64 labels", d.Charset)
		}
		var set labels.Set[*charset.Source]
		for _, f := range labels.Fields() {
			text := fields.Get(f)
			if text == nil {
				if f != labels.LanguageName {
					c.fail(path+"."+f.Key(), "is required for inline labels")
				}
				continue
			}
			src, err := license.CodedText(*text, d.Charset, isBase64)
			c.wrap(path+"."+f.Key(), err)
			set.Put(f, src)
		}
		entry.Source = license.InlineLabels{Labels: set}
	case "one-per-file":
		forbid("file", d.File != "")
		forbid("delimiters", len(d.Delimiters) > 0)
		var files labels.Set[string]
		for _, f := range labels.Fields() {
			p := fields.Get(f)
			if p == nil || *p == "" {
				if f != labels.LanguageName {
					c.fail(path+"."+f.Key(), "is required for one-per-file labels")
				}
				continue
			}
			files.Put(f, *p)
		}
		entry.Source = license.OnePerFileLabels{Files: files, Charset: d.Charset, Base64: isBase64}
	case "json":
		requireFile()
		forbid("delimiters", len(d.Delimiters) > 0)
		forbidText()
		if isBase64 && strings.TrimSpace(d.Charset) == "" {
			c.fail(path+".charset", "is required with base64 encoding")
		}
		if !isBase64 && !inlineCharsetAllowed(d.Charset) {
			c.fail(path+".charset", "%q only applies to base64 labels", d.Charset)
		}
		entry.Source = license.JSONLabels{File: d.File, Charset: d.Charset, Base64: isBase64}
	case "raw":
		requireFile()
		forbid("delimiters", len(d.Delimiters) > 0)
		forbidText()
		forbid("charset", d.Charset != "")
		forbid("encoding", isBase64)
		entry.Source = license.RawLabels{File: d.File}
	case "delimited":
		requireFile()
		forbidText()
		delims := c.delimiters(path+".delimiters", d.Delimiters)
		entry.Source = license.DelimitedLabels{File: d.File, Delimiters: delims, Charset: d.Charset, Base64: isBase64}
	default:
		c.fail(path+".type", "unknown labels type %q (expected inline, one-per-file, json, raw or delimited)", d.Type)
	}
	return entry, c.errs.Len() == before
}

func (c *checker) encoding(path, value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return false
	case encodingBase64:
		return true
	}
	c.fail(path, "unknown encoding %q (only base64 is supported)", value)
	return false
}

// delimiters accepts a name, a byte array, or a list mixing both.
func (c *checker) delimiters(path string, raw json.RawMessage) [][]byte {
	if len(raw) == 0 || string(raw) == "null" {
		c.fail(path, "is required for delimited labels")
		return nil
	}
	var v any
	if err := unmarshalNumber(raw, &v); err != nil {
		c.wrap(path, err)
		return nil
	}
	var items []any
	switch x := v.(type) {
	case string:
		items = []any{x}
	case []any:
		if len(x) > 0 && isByteArray(x) {
			items = []any{x}
		} else {
			items = x
		}
	default:
		c.fail(path, "must be a delimiter name or a list, not %s", kindOf(v))
		return nil
	}
	if len(items) == 0 {
		c.fail(path, "must list at least one delimiter")
		return nil
	}
	var out [][]byte
	for i, item := range items {
		at := fmt.Sprintf("%s[%d]", path, i)
		switch x := item.(type) {
		case string:
			named, err := labels.NamedDelimiter(x)
			if err != nil {
				c.wrap(at, err)
				continue
			}
			out = append(out, named...)
		case []any:
			seq, err := byteSequence(x)
			if err != nil {
				c.wrap(at, err)
				continue
			}
			out = append(out, seq)
		default:
			c.fail(at, "delimiter must be a name or an array of bytes, not %s", kindOf(item))
		}
	}
	return out
}

func isByteArray(items []any) bool {
	for _, item := range items {
		if _, ok := item.(json.Number); !ok {
			return false
		}
	}
	return true
}

func byteSequence(items []any) ([]byte, error) {
	if len(items) == 0 {
		return nil, errors.New("delimiter byte sequence is empty")
	}
	seq := make([]byte, 0, len(items))
	for _, item := range items {
		n, ok := item.(json.Number)
		if !ok {
			return nil, fmt.Errorf("delimiter byte must be a number, not %s", kindOf(item))
		}
		b, err := strconv.Atoi(n.String())
		if err != nil || b < 0 || b > 255 {
			return nil, fmt.Errorf("delimiter byte %s is out of range 0-255", n)
		}
		seq = append(seq, byte(b))
	}
	return seq, nil
}

func inlineCharsetAllowed(cs string) bool {
	switch strings.ToLower(strings.TrimSpace(cs)) {
	case "", charset.UTF8, "utf8", charset.Native:
		return true
	}
	return false
}

func unmarshalNumber(raw json.RawMessage, v *any) error {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	return dec.Decode(v)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	}
	return fmt.Sprintf("%T", v)
}
