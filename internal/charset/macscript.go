package charset

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// scriptTable is a single-byte Mac OS script encoding whose lower half is
// ASCII. Unlike charmap.Charmap it never substitutes: bytes and runes
// without a mapping are errors in both directions.
type scriptTable struct {
	name   string
	high   *[128]rune
	encode map[rune]byte
}

func newScriptTable(name string, high *[128]rune) *scriptTable {
	t := &scriptTable{name: name, high: high, encode: make(map[rune]byte, len(high))}
	// Walk downwards so the lowest byte wins for repeated code points.
	for i := len(high) - 1; i >= 0; i-- {
		if r := high[i]; r != 0 && r >= utf8.RuneSelf {
			t.encode[r] = byte(0x80 + i)
		}
	}
	return t
}

func (t *scriptTable) String() string { return t.name }

func (t *scriptTable) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: scriptDecoder{t}}
}

func (t *scriptTable) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: scriptEncoder{t}}
}

// UnmappedByteError reports a byte with no Unicode mapping in a script table.
type UnmappedByteError struct {
	Charset string
	Byte    byte
}

func (e *UnmappedByteError) Error() string {
	return fmt.Sprintf("byte 0x%02X has no mapping in %s", e.Byte, e.Charset)
}

// UnmappedRuneError reports a rune a script table cannot represent.
type UnmappedRuneError struct {
	Charset string
	Rune    rune
}

func (e *UnmappedRuneError) Error() string {
	return fmt.Sprintf("%U has no mapping in %s", e.Rune, e.Charset)
}

type scriptDecoder struct{ t *scriptTable }

func (scriptDecoder) Reset() {}

func (d scriptDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		r := rune(c)
		if c >= utf8.RuneSelf {
			r = d.t.high[c-0x80]
			if r == 0 {
				return nDst, nSrc, &UnmappedByteError{Charset: d.t.name, Byte: c}
			}
		}
		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc++
	}
	return nDst, nSrc, nil
}

type scriptEncoder struct{ t *scriptTable }

func (scriptEncoder) Reset() {}

func (e scriptEncoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if c := src[nSrc]; c < utf8.RuneSelf {
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			return nDst, nSrc, encoding.ErrInvalidUTF8
		}
		b, ok := e.t.encode[r]
		if !ok {
			return nDst, nSrc, &UnmappedRuneError{Charset: e.t.name, Rune: r}
		}
		dst[nDst] = b
		nDst++
		nSrc += size
	}
	return nDst, nSrc, nil
}

// Mac OS script encodings with no counterpart in golang.org/x/text.
var (
	MacCentralEuropean = newScriptTable("Macintosh Central European", &macCentralEuropean)
	MacGreek           = newScriptTable("Macintosh Greek", &macGreek)
	MacTurkish         = newScriptTable("Macintosh Turkish", &macTurkish)
	MacIcelandic       = newScriptTable("Macintosh Icelandic", &macIcelandic)
	MacCroatian        = newScriptTable("Macintosh Croatian", &macCroatian)
	MacRomanian        = newScriptTable("Macintosh Romanian", &macRomanian)
	MacArabic          = newScriptTable("Macintosh Arabic", &macArabic)
	MacUkrainian       = newScriptTable("Macintosh Ukrainian", &macUkrainian)
	MacHebrew          = newScriptTable("Macintosh Hebrew", &macHebrew)
	MacThai            = newScriptTable("Macintosh Thai", &macThai)
	MacCeltic          = newScriptTable("Macintosh Celtic", &macCeltic)
)
