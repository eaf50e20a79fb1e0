package labels

import (
	"encoding/binary"
	"errors"
	"fmt"

	"dmglicense/internal/charset"
	"dmglicense/internal/errlist"
	"dmglicense/internal/language"
)

// signature is the string count that opens every label resource.
const signature = Count

var (
	// ErrTooLong marks a field whose encoding exceeds MaxFieldLen bytes.
	ErrTooLong = errors.New("label is too long")
	// ErrMissingField marks a label set with an empty slot.
	ErrMissingField = errors.New("label is missing")
	// ErrNativeLabelsRequired means the implicit language name could not be
	// encoded, so the language name must be supplied explicitly.
	ErrNativeLabelsRequired = errors.New("the language name must be provided explicitly")
)

// Encoder converts text for a group of languages.
type Encoder interface {
	EncodeForAll(src charset.Source, targets []*language.Language) ([]byte, error)
}

// LabelEncodingError reports one field that could not be packed.
type LabelEncodingError struct {
	Field    Field
	Language *language.Language
	Size     int
	Err      error
}

func (e *LabelEncodingError) Error() string {
	lang := "unknown language"
	if e.Language != nil {
		lang = e.Language.String()
	}
	if errors.Is(e.Err, ErrTooLong) {
		return fmt.Sprintf("%s for %s is %d bytes after encoding; the limit is %d bytes", e.Field.Description(), lang, e.Size, MaxFieldLen)
	}
	return fmt.Sprintf("cannot encode %s for %s: %v", e.Field.Description(), lang, e.Err)
}

func (e *LabelEncodingError) Unwrap() error { return e.Err }

// Position says where resource data came from. The zero value means unknown.
type Position struct {
	File       string
	ResourceID int
}

func (p Position) String() string {
	switch {
	case p.File != "" && p.ResourceID != 0:
		return fmt.Sprintf("%s (resource %d)", p.File, p.ResourceID)
	case p.File != "":
		return p.File
	case p.ResourceID != 0:
		return fmt.Sprintf("resource %d", p.ResourceID)
	}
	return ""
}

// InvalidResourceError reports malformed label resource data.
type InvalidResourceError struct {
	Pos    Position
	Offset int
	Reason string
}

func (e *InvalidResourceError) Error() string {
	if where := e.Pos.String(); where != "" {
		return fmt.Sprintf("%s: invalid label resource at byte %d: %s", where, e.Offset, e.Reason)
	}
	return fmt.Sprintf("invalid label resource at byte %d: %s", e.Offset, e.Reason)
}

// Pack encodes set for lang. A nil LanguageName is filled from the language's
// predefined labels or, failing that, its localized name. Every failing field
// is reported; no partial output is returned.
func Pack(set Set[*charset.Source], lang *language.Language, enc Encoder) ([]byte, error) {
	targets := []*language.Language{lang}
	var fields Set[[]byte]
	var errs errlist.Buffer
	for _, f := range Fields() {
		src := set.Get(f)
		if src == nil && f == LanguageName {
			data, err := implicitName(lang, enc)
			if err != nil {
				errs.Add(&LabelEncodingError{Field: f, Language: lang, Err: err})
				continue
			}
			fields.Put(f, data)
			continue
		}
		if src == nil {
			errs.Add(&LabelEncodingError{Field: f, Language: lang, Err: ErrMissingField})
			continue
		}
		data, err := enc.EncodeForAll(*src, targets)
		if err != nil {
			errs.Add(&LabelEncodingError{Field: f, Language: lang, Err: err})
			continue
		}
		fields.Put(f, data)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return PackBytes(fields, lang)
}

func implicitName(lang *language.Language, enc Encoder) ([]byte, error) {
	name := lang.LocalizedName
	if lang.Labels != nil && lang.Labels.LanguageName != "" {
		name = lang.Labels.LanguageName
	}
	data, err := enc.EncodeForAll(charset.Source{Text: name}, []*language.Language{lang})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNativeLabelsRequired, err)
	}
	return data, nil
}

// PackBytes lays out already encoded fields. lang is only used in errors.
func PackBytes(fields Set[[]byte], lang *language.Language) ([]byte, error) {
	size := 2
	var errs errlist.Buffer
	for _, f := range Fields() {
		n := len(fields.Get(f))
		if n > MaxFieldLen {
			errs.Add(&LabelEncodingError{Field: f, Language: lang, Size: n, Err: ErrTooLong})
		}
		size += 1 + n
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	out := make([]byte, 2, size)
	binary.BigEndian.PutUint16(out, signature)
	for _, f := range Fields() {
		data := fields.Get(f)
		out = append(out, byte(len(data)))
		out = append(out, data...)
	}
	return out, nil
}

// Unpack splits a label resource into its six fields. The returned slices
// alias data. pos only appears in errors.
func Unpack(data []byte, pos Position) (Set[[]byte], error) {
	var out Set[[]byte]
	if len(data) < 2 || binary.BigEndian.Uint16(data) != signature {
		return out, &InvalidResourceError{Pos: pos, Offset: 0, Reason: "data does not start with the string list signature 00 06"}
	}
	var parts [][]byte
	off := 2
	for off < len(data) {
		n := int(data[off])
		remaining := len(data) - off - 1
		if n > remaining {
			return out, &InvalidResourceError{
				Pos:    pos,
				Offset: off,
				Reason: fmt.Sprintf("length marker calls for %d more bytes, but only %d remain", n, remaining),
			}
		}
		parts = append(parts, data[off+1:off+1+n])
		off += 1 + n
	}
	if len(parts) != Count {
		return out, &InvalidResourceError{
			Pos:    pos,
			Offset: 0,
			Reason: fmt.Sprintf("there should be %d strings in this resource, but instead there are %d", Count, len(parts)),
		}
	}
	for i, p := range parts {
		out.Put(Field(i), p)
	}
	return out, nil
}
