package charset

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// UTF8 is the charset assumed for text that names none.
const UTF8 = "utf-8"

// Native marks data that is already in the installer's encoding and must be
// passed through untouched.
const Native = "native"

// Classic Mac OS script encodings. The CJK scripts are byte-compatible with
// their EUC or Shift_JIS counterparts for the characters an installer shows.
var macEncodings = map[string]encoding.Encoding{
	"macintosh":             charmap.Macintosh,
	"mac":                   charmap.Macintosh,
	"x-mac-roman":           charmap.Macintosh,
	"x-mac-cyrillic":        charmap.MacintoshCyrillic,
	"x-mac-ukrainian":       MacUkrainian,
	"x-mac-centraleurroman": MacCentralEuropean,
	"x-mac-ce":              MacCentralEuropean,
	"x-mac-greek":           MacGreek,
	"x-mac-turkish":         MacTurkish,
	"x-mac-icelandic":       MacIcelandic,
	"x-mac-croatian":        MacCroatian,
	"x-mac-romanian":        MacRomanian,
	"x-mac-arabic":          MacArabic,
	"x-mac-hebrew":          MacHebrew,
	"x-mac-thai":            MacThai,
	"x-mac-celtic":          MacCeltic,
	"x-mac-japanese":        japanese.ShiftJIS,
	"x-mac-korean":          korean.EUCKR,
	"x-mac-simp-chinese":    simplifiedchinese.GBK,
	"x-mac-trad-chinese":    traditionalchinese.Big5,
}

// UnsupportedCharsetError reports a charset name with no available converter.
type UnsupportedCharsetError struct {
	Name string
}

func (e *UnsupportedCharsetError) Error() string {
	return fmt.Sprintf("charset %q is not supported", e.Name)
}

// Lookup returns the converter for a charset name. Names are matched without
// regard to case.
func Lookup(name string) (encoding.Encoding, error) {
	key := normalizeName(name)
	switch key {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case Native:
		return nil, &UnsupportedCharsetError{Name: name}
	}
	if enc, ok := macEncodings[key]; ok {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		return nil, &UnsupportedCharsetError{Name: name}
	}
	return enc, nil
}

// Supported reports whether Lookup can convert name.
func Supported(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
