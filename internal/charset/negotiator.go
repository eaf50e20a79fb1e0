package charset

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/encoding"

	"dmglicense/internal/errlist"
	"dmglicense/internal/language"
)

// ErrNoTargets is returned when EncodeForAll is called without languages.
var ErrNoTargets = errors.New("charset: no target languages")

const defaultCacheSize = 64

// Source is text waiting to be encoded. Data, when set, is raw bytes in
// Charset; otherwise Text is used. An empty Charset means UTF-8, and Native
// means the bytes are already in the installer's encoding.
type Source struct {
	Text    string
	Data    []byte
	Charset string
}

// Text builds a Source from Unicode text.
func Text(s string) *Source {
	return &Source{Text: s}
}

// IsNative reports whether the source bypasses conversion.
func (s Source) IsNative() bool {
	return normalizeName(s.Charset) == Native
}

func (s Source) bytes() []byte {
	if s.Data != nil {
		return s.Data
	}
	return []byte(s.Text)
}

type conversionKey struct {
	from string
	to   string
}

type conversion struct {
	from encoding.Encoding
	to   encoding.Encoding
	err  error
}

// Negotiator picks, for a group of languages, the first charset they all
// share that can represent a text, and encodes the text into it. It is safe
// for concurrent use.
type Negotiator struct {
	lookup func(string) (encoding.Encoding, error)
	cache  *lru.Cache[conversionKey, conversion]
}

// Option configures a Negotiator.
type Option func(*Negotiator)

// WithCacheSize bounds the number of cached (source, target) conversions.
func WithCacheSize(n int) Option {
	return func(neg *Negotiator) {
		if n > 0 {
			cache, err := lru.New[conversionKey, conversion](n)
			if err == nil {
				neg.cache = cache
			}
		}
	}
}

// WithLookup replaces the charset registry.
func WithLookup(fn func(string) (encoding.Encoding, error)) Option {
	return func(neg *Negotiator) {
		if fn != nil {
			neg.lookup = fn
		}
	}
}

func NewNegotiator(opts ...Option) *Negotiator {
	cache, _ := lru.New[conversionKey, conversion](defaultCacheSize)
	neg := &Negotiator{lookup: Lookup, cache: cache}
	for _, opt := range opts {
		opt(neg)
	}
	return neg
}

// CommonCharsets returns the charsets every language accepts, in the order the
// first language lists them.
func CommonCharsets(langs []*language.Language) []string {
	if len(langs) == 0 {
		return nil
	}
	var out []string
	for _, cs := range langs[0].Charsets {
		shared := true
		for _, other := range langs[1:] {
			if !containsFold(other.Charsets, cs) {
				shared = false
				break
			}
		}
		if shared && !containsFold(out, cs) {
			out = append(out, cs)
		}
	}
	return out
}

// EncodeForAll encodes src into the first charset shared by all targets that
// represents it without loss. Every candidate failure is reported when none
// succeeds.
func (n *Negotiator) EncodeForAll(src Source, targets []*language.Language) ([]byte, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	if src.IsNative() {
		return src.bytes(), nil
	}
	candidates := CommonCharsets(targets)
	if len(candidates) == 0 {
		return nil, &NoSuitableCharsetError{Languages: targets}
	}

	text, err := n.decode(src)
	if err != nil {
		return nil, err
	}

	from := ""
	if src.Data != nil {
		from = src.Charset
	}
	var errs errlist.Buffer
	for _, cs := range candidates {
		conv := n.conversion(from, cs)
		if conv.err != nil {
			errs.Add(conv.err)
			continue
		}
		out, err := encode(conv.to, text)
		if err != nil {
			errs.Add(&EncodeError{Charset: cs, Err: err})
			continue
		}
		return out, nil
	}
	return nil, &NoSuitableCharsetError{Languages: targets, Charsets: candidates, Err: errs.Err()}
}

func (n *Negotiator) decode(src Source) (string, error) {
	if src.Data == nil {
		if !utf8.ValidString(src.Text) {
			return "", errors.New("text is not valid UTF-8")
		}
		return src.Text, nil
	}
	name := normalizeName(src.Charset)
	if name == "" || name == "utf8" || name == UTF8 {
		if !utf8.Valid(src.Data) {
			return "", errors.New("text is not valid UTF-8")
		}
		return string(src.Data), nil
	}
	conv := n.conversion(name, UTF8)
	if conv.err != nil {
		return "", fmt.Errorf("decode text: %w", conv.err)
	}
	decoded, err := conv.from.NewDecoder().Bytes(src.Data)
	if err != nil {
		return "", fmt.Errorf("decode text from %s: %w", src.Charset, err)
	}
	return string(decoded), nil
}

func (n *Negotiator) conversion(from, to string) conversion {
	key := conversionKey{from: normalizeName(from), to: normalizeName(to)}
	if conv, ok := n.cache.Get(key); ok {
		return conv
	}
	var conv conversion
	if enc, err := n.lookup(key.to); err != nil {
		conv.err = err
	} else {
		conv.to = enc
	}
	if conv.err == nil && key.from != "" {
		conv.from, conv.err = n.lookup(key.from)
	}
	n.cache.Add(key, conv)
	return conv
}

// encode converts text without substitution. Encoders are created per call;
// they carry state and must not be shared between goroutines.
func encode(enc encoding.Encoding, text string) ([]byte, error) {
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err == nil {
		return out, nil
	}
	offset := 0
	for _, r := range text {
		if _, rerr := enc.NewEncoder().String(string(r)); rerr != nil {
			return nil, &UnrepresentableError{Rune: r, Offset: offset}
		}
		offset += utf8.RuneLen(r)
	}
	return nil, err
}

// UnrepresentableError reports the first character a charset cannot hold.
type UnrepresentableError struct {
	Rune   rune
	Offset int
}

func (e *UnrepresentableError) Error() string {
	return fmt.Sprintf("character %q (%U) at byte %d is not representable", e.Rune, e.Rune, e.Offset)
}

// EncodeError wraps a failure to encode into one candidate charset.
type EncodeError struct {
	Charset string
	Err     error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Charset, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// NoSuitableCharsetError reports that no charset could carry a text for a
// group of languages. Charsets is empty when the languages share none.
type NoSuitableCharsetError struct {
	Languages []*language.Language
	Charsets  []string
	Err       error
}

func (e *NoSuitableCharsetError) Error() string {
	if len(e.Charsets) == 0 {
		return "no charset is shared by all of: " + language.Names(e.Languages)
	}
	msg := fmt.Sprintf("cannot encode text for %s in %s", language.Names(e.Languages), strings.Join(e.Charsets, ", "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NoSuitableCharsetError) Unwrap() error { return e.Err }

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
