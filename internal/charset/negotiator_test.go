package charset_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"golang.org/x/text/encoding"

	"dmglicense/internal/charset"
	"dmglicense/internal/language"
)

func mustLang(t *testing.T, tag string) *language.Language {
	t.Helper()
	l, ok := language.Default().ByTag(tag)
	if !ok {
		t.Fatalf("unknown tag %q", tag)
	}
	return l
}

func TestEncodeForAllMacRoman(t *testing.T) {
	neg := charset.NewNegotiator()
	got, err := neg.EncodeForAll(charset.Source{Text: "Café"}, []*language.Language{mustLang(t, "fr-FR")})
	if err != nil {
		t.Fatalf("EncodeForAll: %v", err)
	}
	want := []byte{'C', 'a', 'f', 0x8E}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestEncodeForAllDecodesSourceCharset(t *testing.T) {
	neg := charset.NewNegotiator()
	src := charset.Source{Data: []byte{'C', 'a', 'f', 0xE9}, Charset: "ISO-8859-1"}
	got, err := neg.EncodeForAll(src, []*language.Language{mustLang(t, "en-US")})
	if err != nil {
		t.Fatalf("EncodeForAll: %v", err)
	}
	if !bytes.Equal(got, []byte{'C', 'a', 'f', 0x8E}) {
		t.Fatalf("unexpected bytes % x", got)
	}
}

func TestEncodeForAllNativePassesThrough(t *testing.T) {
	neg := charset.NewNegotiator()
	raw := []byte{0xFF, 0x00, 0x8E}
	got, err := neg.EncodeForAll(charset.Source{Data: raw, Charset: "native"}, []*language.Language{mustLang(t, "ja-JP")})
	if err != nil {
		t.Fatalf("EncodeForAll: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("expected pass-through, got % x", got)
	}
}

func TestEncodeForAllJapanese(t *testing.T) {
	neg := charset.NewNegotiator()
	got, err := neg.EncodeForAll(charset.Source{Text: "日本語"}, []*language.Language{mustLang(t, "ja-JP")})
	if err != nil {
		t.Fatalf("EncodeForAll: %v", err)
	}
	want := []byte{0x93, 0xFA, 0x96, 0x7B, 0x8C, 0xEA}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestEncodeForAllNoCommonCharset(t *testing.T) {
	neg := charset.NewNegotiator()
	_, err := neg.EncodeForAll(charset.Source{Text: "hello"}, []*language.Language{
		mustLang(t, "en-US"), mustLang(t, "ja-JP"),
	})
	var nsc *charset.NoSuitableCharsetError
	if !errors.As(err, &nsc) {
		t.Fatalf("expected NoSuitableCharsetError, got %v", err)
	}
	if len(nsc.Charsets) != 0 {
		t.Fatalf("expected empty candidate list, got %v", nsc.Charsets)
	}
	msg := err.Error()
	for _, fragment := range []string{"English", "Japanese"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in %q", fragment, msg)
		}
	}
}

func TestEncodeForAllUnrepresentable(t *testing.T) {
	neg := charset.NewNegotiator()
	_, err := neg.EncodeForAll(charset.Source{Text: "ok 😀"}, []*language.Language{mustLang(t, "en-US")})
	var nsc *charset.NoSuitableCharsetError
	if !errors.As(err, &nsc) {
		t.Fatalf("expected NoSuitableCharsetError, got %v", err)
	}
	var ue *charset.UnrepresentableError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnrepresentableError in chain, got %v", err)
	}
	if ue.Rune != '😀' || ue.Offset != 3 {
		t.Fatalf("unexpected rune report %+v", ue)
	}
}

func TestEncodeForAllTriesCandidatesInOrder(t *testing.T) {
	lang := &language.Language{ID: 900, EnglishName: "Test", Charsets: []string{"x-unknown", "macintosh"}}
	neg := charset.NewNegotiator()
	got, err := neg.EncodeForAll(charset.Source{Text: "é"}, []*language.Language{lang})
	if err != nil {
		t.Fatalf("expected fallback to second candidate, got %v", err)
	}
	if !bytes.Equal(got, []byte{0x8E}) {
		t.Fatalf("unexpected bytes % x", got)
	}

	lang.Charsets = []string{"x-unknown"}
	_, err = neg.EncodeForAll(charset.Source{Text: "é"}, []*language.Language{lang})
	var unsupported *charset.UnsupportedCharsetError
	if !errors.As(err, &unsupported) || unsupported.Name != "x-unknown" {
		t.Fatalf("expected unsupported charset failure, got %v", err)
	}
}

func TestEncodeForAllRejectsInvalidUTF8(t *testing.T) {
	neg := charset.NewNegotiator()
	_, err := neg.EncodeForAll(charset.Source{Data: []byte{0xFF}}, []*language.Language{mustLang(t, "en-US")})
	if err == nil || !strings.Contains(err.Error(), "UTF-8") {
		t.Fatalf("expected UTF-8 error, got %v", err)
	}
}

func TestEncodeForAllRequiresTargets(t *testing.T) {
	_, err := charset.NewNegotiator().EncodeForAll(charset.Source{Text: "x"}, nil)
	if !errors.Is(err, charset.ErrNoTargets) {
		t.Fatalf("expected ErrNoTargets, got %v", err)
	}
}

func TestNegotiatorCachesLookups(t *testing.T) {
	var mu sync.Mutex
	calls := map[string]int{}
	neg := charset.NewNegotiator(charset.WithLookup(func(name string) (encoding.Encoding, error) {
		mu.Lock()
		calls[name]++
		mu.Unlock()
		return charset.Lookup(name)
	}))
	langs := []*language.Language{mustLang(t, "de-DE")}
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := neg.EncodeForAll(charset.Source{Text: "Grüße"}, langs); err != nil {
				t.Errorf("EncodeForAll: %v", err)
			}
		}()
	}
	wg.Wait()
	first, err := neg.EncodeForAll(charset.Source{Text: "Grüße"}, langs)
	if err != nil {
		t.Fatalf("EncodeForAll: %v", err)
	}
	second, _ := neg.EncodeForAll(charset.Source{Text: "Grüße"}, langs)
	if !bytes.Equal(first, second) {
		t.Fatal("expected deterministic output")
	}
	mu.Lock()
	defer mu.Unlock()
	if calls["macintosh"] == 0 || calls["macintosh"] > 8 {
		t.Fatalf("unexpected lookup count %d", calls["macintosh"])
	}
}

func TestCommonCharsetsKeepsFirstLanguageOrder(t *testing.T) {
	a := &language.Language{Charsets: []string{"b", "a", "c"}}
	b := &language.Language{Charsets: []string{"A", "B"}}
	got := charset.CommonCharsets([]*language.Language{a, b})
	if strings.Join(got, ",") != "b,a" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"macintosh", "X-MAC-JAPANESE", "x-mac-cyrillic", "X-Mac-Greek", "x-mac-centraleurroman", "utf-8", "Shift_JIS", "ISO-8859-1"} {
		if !charset.Supported(name) {
			t.Errorf("expected %q to be supported", name)
		}
	}
	for _, name := range []string{"x-mac-devanagari", "native", "no-such-charset"} {
		if charset.Supported(name) {
			t.Errorf("expected %q to be unsupported", name)
		}
	}
}
