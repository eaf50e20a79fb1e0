package license

import (
	"context"
	"encoding/json"
	"fmt"

	"dmglicense/internal/charset"
	"dmglicense/internal/errlist"
	"dmglicense/internal/labels"
	"dmglicense/internal/language"
)

// loadContext carries what label and body loaders need from the assembler.
type loadContext struct {
	ctx      context.Context
	resolve  func(string) string
	readFile func(string) ([]byte, error)
	encoder  labels.Encoder
}

// read resolves path and reads it, returning the resolved path for messages.
func (c *loadContext) read(path string) ([]byte, string, error) {
	resolved := c.resolve(path)
	if err := c.ctx.Err(); err != nil {
		return nil, resolved, err
	}
	data, err := c.readFile(resolved)
	if err != nil {
		return nil, resolved, fmt.Errorf("cannot read %q: %w", resolved, err)
	}
	return data, resolved, nil
}

func (s InlineLabels) load(c *loadContext, lang *language.Language) ([]byte, error) {
	return labels.Pack(s.Labels, lang, c.encoder)
}

func (s OnePerFileLabels) load(c *loadContext, lang *language.Language) ([]byte, error) {
	var set labels.Set[*charset.Source]
	var errs errlist.Buffer
	for _, f := range labels.Fields() {
		path := s.Files.Get(f)
		if path == "" {
			if f != labels.LanguageName {
				errs.Add(fmt.Errorf("no file given for the %s", f.Description()))
			}
			continue
		}
		data, resolved, err := c.read(path)
		if err == nil && s.Base64 {
			data, err = decodeBase64File(data, resolved)
		}
		if err != nil {
			errs.Add(err)
			continue
		}
		set.Put(f, &charset.Source{Data: data, Charset: s.Charset})
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return labels.Pack(set, lang, c.encoder)
}

func (s DelimitedLabels) load(c *loadContext, lang *language.Language) ([]byte, error) {
	data, path, err := c.read(s.File)
	if err == nil && s.Base64 {
		data, err = decodeBase64File(data, path)
	}
	if err != nil {
		return nil, err
	}
	pieces := labels.SplitDelimited(data, s.Delimiters)
	sources := make([]*charset.Source, len(pieces))
	for i, p := range pieces {
		sources[i] = &charset.Source{Data: p, Charset: s.Charset}
	}
	set, err := labels.FromParts(sources, nil)
	if err != nil {
		return nil, fmt.Errorf("delimited labels file %q: %w", path, err)
	}
	return labels.Pack(set, lang, c.encoder)
}

func (s RawLabels) load(c *loadContext, _ *language.Language) ([]byte, error) {
	data, _, err := c.read(s.File)
	return data, err
}

func (s JSONLabels) load(c *loadContext, lang *language.Language) ([]byte, error) {
	data, path, err := c.read(s.File)
	if err != nil {
		return nil, err
	}
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("labels file %q is not valid JSON: %w", path, err)
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("labels file %q: root value is %s, but should be an object", path, jsonType(root))
	}

	var set labels.Set[*charset.Source]
	var errs errlist.Buffer
	for _, f := range labels.Fields() {
		raw, present := obj[f.Key()]
		if !present {
			if f != labels.LanguageName {
				errs.Add(fmt.Errorf("labels file %q has no %q property", path, f.Key()))
			}
			continue
		}
		text, ok := raw.(string)
		if !ok {
			errs.Add(fmt.Errorf("labels file %q: property %q has type %s, but should be string", path, f.Key(), jsonType(raw)))
			continue
		}
		src, err := CodedText(text, s.Charset, s.Base64)
		if err != nil {
			errs.Add(fmt.Errorf("labels file %q: property %q: %w", path, f.Key(), err))
			continue
		}
		set.Put(f, src)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return labels.Pack(set, lang, c.encoder)
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
