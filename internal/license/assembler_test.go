package license_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"dmglicense/internal/charset"
	"dmglicense/internal/errlist"
	"dmglicense/internal/labels"
	"dmglicense/internal/language"
	"dmglicense/internal/license"
	"dmglicense/internal/testsupport"
)

func tags(t ...string) []language.Specifier {
	out := make([]language.Specifier, 0, len(t))
	for _, tag := range t {
		out = append(out, language.Tag(tag))
	}
	return out
}

func inlineBody(text string, langs ...string) license.BodyEntry {
	return license.BodyEntry{Languages: tags(langs...), Text: charset.Text(text)}
}

type warnings struct {
	errs []error
}

func (w *warnings) sink(err error) { w.errs = append(w.errs, err) }

func newAssembler(t *testing.T, dir string, opts ...license.Option) *license.Assembler {
	t.Helper()
	base := []license.Option{
		license.WithPathResolver(func(p string) string {
			if filepath.IsAbs(p) {
				return p
			}
			return filepath.Join(dir, p)
		}),
	}
	return license.NewAssembler(language.Default(), append(base, opts...)...)
}

func TestAssembleSingleEnglishLicense(t *testing.T) {
	a := newAssembler(t, t.TempDir())
	res, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{inlineBody("Hello", "en-US")},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(res.InOrder) != 1 || res.DefaultLanguageID != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	got := res.InOrder[0]
	if string(got.Body.Data) != "Hello" || got.Body.Type != license.PlainText {
		t.Fatalf("unexpected body %+v", got.Body)
	}
	en, _ := language.Default().ByID(0)
	want, err := a.DefaultLabels(en)
	if err != nil {
		t.Fatalf("DefaultLabels: %v", err)
	}
	if !bytes.Equal(got.Labels, want) {
		t.Fatal("expected predefined English labels")
	}
	set, err := labels.Unpack(got.Labels, labels.Position{})
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if string(set.LanguageName) != "English" || string(set.Agree) != "Agree" {
		t.Fatalf("unexpected labels %q / %q", set.LanguageName, set.Agree)
	}
}

func TestAssembleMergesIdenticalContent(t *testing.T) {
	a := newAssembler(t, t.TempDir())
	res, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{
			inlineBody("Same text", "en-US", "en-GB"),
			inlineBody("Same text", "en-AU"),
			inlineBody("Anders", "de-DE"),
		},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(res.InOrder) != 2 {
		t.Fatalf("expected 2 distinct licenses, got %d", len(res.InOrder))
	}
	ids := res.InOrder[0].LanguageIDs
	if len(ids) != 3 || ids[0] != 0 || ids[1] != 2 || ids[2] != 15 {
		t.Fatalf("unexpected merged IDs %v", ids)
	}
	if res.ByLanguageID[2] != res.InOrder[0] || res.ByLanguageID[3] != res.InOrder[1] {
		t.Fatal("expected language mapping to share merged entries")
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	spec := &license.Specification{
		Bodies: []license.BodyEntry{inlineBody("Text", "en-US"), inlineBody("Texte", "fr-FR")},
	}
	a := newAssembler(t, t.TempDir())
	first, err := a.Assemble(context.Background(), spec)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	second, err := a.Assemble(context.Background(), spec)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(first.InOrder) != len(second.InOrder) {
		t.Fatal("expected identical slot count")
	}
	for i := range first.InOrder {
		if !first.InOrder[i].Equal(second.InOrder[i]) {
			t.Fatalf("slot %d differs between runs", i)
		}
	}
}

func TestAssembleCollisionWarnsWithSink(t *testing.T) {
	var w warnings
	a := newAssembler(t, t.TempDir(), license.WithNonFatalErrorSink(w.sink))
	res, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{
			inlineBody("first", "en-US", "de-DE"),
			inlineBody("second", "de-DE", "en-US"),
		},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if string(res.ByLanguageID[3].Body.Data) != "first" {
		t.Fatal("expected the first declared body to win")
	}
	if len(w.errs) != 1 {
		t.Fatalf("expected one aggregated warning, got %d", len(w.errs))
	}
	var ce *license.CollisionError
	if !errors.As(w.errs[0], &ce) || len(ce.Languages) != 2 || ce.Kind != "license body" {
		t.Fatalf("unexpected warning %v", w.errs[0])
	}
	if !strings.Contains(ce.Error(), "German") || !strings.Contains(ce.Error(), "English") {
		t.Fatalf("warning should name both languages: %q", ce.Error())
	}
}

func TestAssembleCollisionFailsWithoutSink(t *testing.T) {
	a := newAssembler(t, t.TempDir())
	res, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{inlineBody("first", "en-US"), inlineBody("second", "en-US")},
	})
	if res != nil {
		t.Fatal("expected no result")
	}
	var ce *license.CollisionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CollisionError, got %v", err)
	}
}

func TestAssembleLabelCollision(t *testing.T) {
	var w warnings
	a := newAssembler(t, t.TempDir(), license.WithNonFatalErrorSink(w.sink))
	custom := labels.Set[*charset.Source]{
		Agree: charset.Text("Yes"), Disagree: charset.Text("No"), Print: charset.Text("Print"),
		Save: charset.Text("Save"), Message: charset.Text("Choose."),
	}
	_, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{inlineBody("text", "en-US")},
		Labels: []license.LabelEntry{
			{Languages: tags("en-US"), Source: license.InlineLabels{Labels: custom}},
			{Languages: tags("en-US"), Source: license.InlineLabels{Labels: custom}},
		},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	var ce *license.CollisionError
	if len(w.errs) != 1 || !errors.As(w.errs[0], &ce) || ce.Kind != "label set" {
		t.Fatalf("expected label collision warning, got %v", w.errs)
	}
}

func TestAssembleNoCommonCharset(t *testing.T) {
	a := newAssembler(t, t.TempDir())
	_, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{inlineBody("hello", "en-US", "ja-JP")},
	})
	var nsc *charset.NoSuitableCharsetError
	if !errors.As(err, &nsc) {
		t.Fatalf("expected NoSuitableCharsetError, got %v", err)
	}
	if !errors.Is(err, license.ErrNoLicenses) {
		t.Fatalf("expected ErrNoLicenses alongside, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "English") || !strings.Contains(msg, "Japanese") {
		t.Fatalf("expected both languages in %q", msg)
	}
}

func TestAssembleSharedFailureReportedOnce(t *testing.T) {
	a := newAssembler(t, t.TempDir())
	_, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{
			{Languages: tags("en-US", "fr-FR", "de-DE"), File: "missing.txt"},
			inlineBody("ok", "it-IT"),
		},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Count(err.Error(), "license text") != 1 {
		t.Fatalf("expected the read failure once, got %q", err.Error())
	}
	var multi *errlist.MultiError
	if errors.As(err, &multi) {
		t.Fatalf("expected a single error, got %d", len(multi.Errors))
	}
}

func TestAssembleOversizeLabel(t *testing.T) {
	a := newAssembler(t, t.TempDir())
	set := labels.Set[*charset.Source]{
		Agree: charset.Text("Agree"), Disagree: charset.Text("Disagree"), Print: charset.Text("Print"),
		Save: charset.Text("Save"), Message: charset.Text(strings.Repeat("m", 300)),
	}
	res, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{inlineBody("text", "en-US")},
		Labels: []license.LabelEntry{{Languages: tags("en-US"), Source: license.InlineLabels{Labels: set}}},
	})
	if res != nil {
		t.Fatal("expected no result")
	}
	var lee *labels.LabelEncodingError
	if !errors.As(err, &lee) || lee.Field != labels.Message || lee.Language.ID != 0 {
		t.Fatalf("expected message field error for English, got %v", err)
	}
}

func TestAssembleNoDefaultLabels(t *testing.T) {
	a := newAssembler(t, t.TempDir())
	_, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{inlineBody("text", "en-US"), inlineBody("test", "mt")},
	})
	var nd *license.NoDefaultLabelsError
	if !errors.As(err, &nd) || nd.Language.ID != 22 {
		t.Fatalf("expected NoDefaultLabelsError for Maltese, got %v", err)
	}
}

func TestAssembleEmptySpecification(t *testing.T) {
	a := newAssembler(t, t.TempDir())
	res, err := a.Assemble(context.Background(), &license.Specification{})
	if res != nil || !errors.Is(err, license.ErrNoBodies) {
		t.Fatalf("expected ErrNoBodies, got %v", err)
	}
}

func TestAssembleUnknownLanguage(t *testing.T) {
	a := newAssembler(t, t.TempDir())
	_, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{inlineBody("text", "en-US", "xx-XX")},
	})
	var nsl *language.NoSuchLanguageError
	if !errors.As(err, &nsl) {
		t.Fatalf("expected NoSuchLanguageError, got %v", err)
	}

	var w warnings
	a = newAssembler(t, t.TempDir(), license.WithNonFatalErrorSink(w.sink))
	res, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{inlineBody("text", "en-US", "xx-XX")},
	})
	if err != nil {
		t.Fatalf("expected unknown language to be skipped with a sink, got %v", err)
	}
	if len(res.ByLanguageID) != 1 || len(w.errs) != 1 {
		t.Fatalf("unexpected result %v / warnings %v", res.ByLanguageID, w.errs)
	}
}

func TestDefaultLanguageSelection(t *testing.T) {
	bodies := []license.BodyEntry{inlineBody("Deutsch", "de-DE"), inlineBody("English", "en-US")}
	en := language.Tag("en-US")
	missing := language.ID(1)

	tests := []struct {
		name     string
		spec     license.Specification
		want     int
		warnings int
	}{
		{"first body", license.Specification{Bodies: bodies}, 3, 0},
		{"explicit", license.Specification{Bodies: bodies, DefaultLanguage: &en}, 0, 0},
		{"explicit without license", license.Specification{Bodies: bodies, DefaultLanguage: &missing}, 3, 1},
		{"flagged body", license.Specification{Bodies: []license.BodyEntry{
			bodies[0], {Languages: tags("en-US"), Text: charset.Text("English"), Default: true},
		}}, 0, 0},
		{"flagged disagree", license.Specification{Bodies: []license.BodyEntry{
			{Languages: tags("de-DE"), Text: charset.Text("Deutsch"), Default: true},
			{Languages: tags("en-US"), Text: charset.Text("English"), Default: true},
		}}, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w warnings
			a := newAssembler(t, t.TempDir(), license.WithNonFatalErrorSink(w.sink))
			res, err := a.Assemble(context.Background(), &tt.spec)
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if res.DefaultLanguageID != tt.want {
				t.Fatalf("default = %d, want %d", res.DefaultLanguageID, tt.want)
			}
			if len(w.errs) != tt.warnings {
				t.Fatalf("expected %d warnings, got %v", tt.warnings, w.errs)
			}
		})
	}
}

func TestAssembleFileBodies(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, dir, "license.rtf", []byte(`{\rtf1 Caf\'e9}`))
	testsupport.WriteFile(t, dir, "latin1.txt", []byte{'C', 'a', 'f', 0xE9})
	a := newAssembler(t, dir)
	res, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{
			{Languages: tags("en-US"), File: "license.rtf"},
			{Languages: tags("fr-FR"), File: "latin1.txt", Charset: "ISO-8859-1"},
			{Languages: tags("de-DE"), File: "latin1.txt", Charset: "ISO-8859-1", Type: license.RichText},
		},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got := res.ByLanguageID[0].Body.Type.ResourceType(); got != "RTF " {
		t.Fatalf("expected rich text from .rtf suffix, got %q", got)
	}
	fr := res.ByLanguageID[1].Body
	if fr.Type != license.PlainText || !bytes.Equal(fr.Data, []byte{'C', 'a', 'f', 0x8E}) {
		t.Fatalf("unexpected French body %+v", fr)
	}
	if res.ByLanguageID[3].Body.Type != license.RichText {
		t.Fatal("expected explicit type to win")
	}
}

func TestAssembleMissingBodyFileNamesPath(t *testing.T) {
	a := newAssembler(t, t.TempDir())
	_, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{{Languages: tags("de-DE"), File: "nope.txt"}},
	})
	if err == nil || !strings.Contains(err.Error(), "nope.txt") || !strings.Contains(err.Error(), "German") {
		t.Fatalf("expected path and language in error, got %v", err)
	}
}

func TestAssembleLabelSources(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteText(t, dir, "labels.txt", "Deutsch\nJa\nNein\nDrucken\nSichern\nBitte wählen.\n")
	testsupport.WriteText(t, dir, "labels.json", `{"agree":"Oui","disagree":"Non","print":"Imprimer","save":"Enregistrer","message":"Choisissez."}`)
	testsupport.WriteFile(t, dir, "labels.str", []byte{0, 6, 1, 'I', 1, 'S', 1, 'N', 1, 'P', 1, 'S', 1, 'M'})
	testsupport.WriteText(t, dir, "agree.txt", "Sí")
	testsupport.WriteText(t, dir, "disagree.txt", "No")
	testsupport.WriteText(t, dir, "print.txt", "Imprimir")
	testsupport.WriteText(t, dir, "save.txt", "Guardar")
	testsupport.WriteText(t, dir, "message.txt", "Elija.")
	lf, _ := labels.NamedDelimiter("lf")

	a := newAssembler(t, dir)
	res, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{inlineBody("text", "de-DE", "fr-FR", "it-IT", "es-ES")},
		Labels: []license.LabelEntry{
			{Languages: tags("de-DE"), Source: license.DelimitedLabels{File: "labels.txt", Delimiters: lf}},
			{Languages: tags("fr-FR"), Source: license.JSONLabels{File: "labels.json"}},
			{Languages: tags("it-IT"), Source: license.RawLabels{File: "labels.str"}},
			{Languages: tags("es-ES"), Source: license.OnePerFileLabels{Files: labels.Set[string]{
				Agree: "agree.txt", Disagree: "disagree.txt", Print: "print.txt", Save: "save.txt", Message: "message.txt",
			}}},
		},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(res.InOrder) != 4 {
		t.Fatalf("expected 4 distinct licenses, got %d", len(res.InOrder))
	}

	de, _ := labels.Unpack(res.ByLanguageID[3].Labels, labels.Position{})
	if string(de.Agree) != "Ja" || !bytes.Equal(de.Message, []byte("Bitte w\x8Ahlen.")) {
		t.Fatalf("unexpected German labels %q", de.Message)
	}
	fr, _ := labels.Unpack(res.ByLanguageID[1].Labels, labels.Position{})
	if string(fr.Agree) != "Oui" || !bytes.Equal(fr.LanguageName, []byte{'F', 'r', 'a', 'n', 0x8D, 'a', 'i', 's'}) {
		t.Fatalf("unexpected French labels %q / % x", fr.Agree, fr.LanguageName)
	}
	if !bytes.Equal(res.ByLanguageID[4].Labels, testsupport.ReadFile(t, filepath.Join(dir, "labels.str"))) {
		t.Fatal("expected raw labels verbatim")
	}
	es, _ := labels.Unpack(res.ByLanguageID[8].Labels, labels.Position{})
	if !bytes.Equal(es.Agree, []byte{'S', 0x92}) {
		t.Fatalf("unexpected Spanish agree % x", es.Agree)
	}
}

func TestAssembleJSONLabelsValidation(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteText(t, dir, "array.json", `["a"]`)
	testsupport.WriteText(t, dir, "typed.json", `{"agree":1,"disagree":null,"print":"p","save":"s","message":"m"}`)
	for _, tt := range []struct {
		file string
		want []string
	}{
		{"array.json", []string{"root value is array"}},
		{"typed.json", []string{`"agree" has type number`, `"disagree" has type null`}},
	} {
		t.Run(tt.file, func(t *testing.T) {
			a := newAssembler(t, dir)
			_, err := a.Assemble(context.Background(), &license.Specification{
				Bodies: []license.BodyEntry{inlineBody("text", "en-US")},
				Labels: []license.LabelEntry{{Languages: tags("en-US"), Source: license.JSONLabels{File: tt.file}}},
			})
			if err == nil {
				t.Fatal("expected error")
			}
			for _, fragment := range tt.want {
				if !strings.Contains(err.Error(), fragment) {
					t.Fatalf("expected %q in %q", fragment, err.Error())
				}
			}
		})
	}
}

func TestAssembleDelimitedWrongCount(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteText(t, dir, "short.txt", "a\tb\tc")
	tab, _ := labels.NamedDelimiter("tab")
	a := newAssembler(t, dir)
	_, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{inlineBody("text", "en-US")},
		Labels: []license.LabelEntry{{Languages: tags("en-US"), Source: license.DelimitedLabels{File: "short.txt", Delimiters: tab}}},
	})
	if err == nil || !strings.Contains(err.Error(), "found 3") {
		t.Fatalf("expected piece count error, got %v", err)
	}
}

func TestAssembleBoundedConcurrencyKeepsOrder(t *testing.T) {
	var bodies []license.BodyEntry
	texts := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	langs := []string{"en-US", "fr-FR", "de-DE", "it-IT", "nl-NL", "sv-SE", "es-ES", "da-DK"}
	for i := range texts {
		bodies = append(bodies, inlineBody(texts[i], langs[i]))
	}
	a := newAssembler(t, t.TempDir(), license.WithConcurrency(2))
	res, err := a.Assemble(context.Background(), &license.Specification{Bodies: bodies})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for i, l := range res.InOrder {
		if string(l.Body.Data) != texts[i] {
			t.Fatalf("slot %d holds %q, want %q", i, l.Body.Data, texts[i])
		}
	}
}

func TestAssembleCanceledContext(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteText(t, dir, "body.txt", "text")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := newAssembler(t, dir)
	_, err := a.Assemble(ctx, &license.Specification{
		Bodies: []license.BodyEntry{{Languages: tags("en-US"), File: "body.txt"}},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCodedText(t *testing.T) {
	src, err := license.CodedText("Q2Fm6Q==", "ISO-8859-1", true)
	if err != nil {
		t.Fatalf("CodedText: %v", err)
	}
	if !bytes.Equal(src.Data, []byte{'C', 'a', 'f', 0xE9}) || src.Charset != "ISO-8859-1" {
		t.Fatalf("unexpected source %+v", src)
	}
	if native, _ := license.CodedText("raw", "native", false); !native.IsNative() {
		t.Fatal("expected native source")
	}
	if _, err := license.CodedText("!!", "", true); err == nil {
		t.Fatal("expected base64 error")
	}
}
