package license

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dmglicense/internal/charset"
	"dmglicense/internal/language"
)

// ErrNoBodyText marks a body entry with neither inline text nor a file.
var ErrNoBodyText = errors.New("license body has neither text nor file")

// Body is license text encoded for its languages.
type Body struct {
	Type ContentType
	Data []byte
}

// PrepareBody loads and encodes entry for langs. The text is encoded once
// into a charset every language in langs shares.
func (a *Assembler) PrepareBody(ctx context.Context, entry BodyEntry, langs []*language.Language) (Body, error) {
	return a.prepareBody(a.loadContext(ctx), entry, langs)
}

func (a *Assembler) prepareBody(c *loadContext, entry BodyEntry, langs []*language.Language) (Body, error) {
	names := language.Names(langs)
	var (
		src  charset.Source
		path string
	)
	switch {
	case entry.File != "":
		data, resolved, err := c.read(entry.File)
		path = resolved
		if err != nil {
			return Body{}, fmt.Errorf("cannot read %s license text: %w", names, err)
		}
		if entry.Base64 {
			if data, err = decodeBase64File(data, resolved); err != nil {
				return Body{}, fmt.Errorf("cannot read %s license text: %w", names, err)
			}
		}
		src = charset.Source{Data: data, Charset: entry.Charset}
	case entry.Text != nil:
		src = *entry.Text
	default:
		return Body{}, fmt.Errorf("%s: %w", names, ErrNoBodyText)
	}

	typ := entry.Type
	if typ == Unspecified {
		typ = PlainText
		if strings.HasSuffix(strings.ToLower(path), ".rtf") {
			typ = RichText
		}
	}

	data, err := c.encoder.EncodeForAll(src, langs)
	if err != nil {
		if path != "" {
			return Body{}, fmt.Errorf("cannot encode %s license text from %q: %w", names, path, err)
		}
		return Body{}, fmt.Errorf("cannot encode %s license text: %w", names, err)
	}
	return Body{Type: typ, Data: data}, nil
}
