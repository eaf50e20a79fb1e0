package language

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultCatalogLookups(t *testing.T) {
	c := Default()
	tests := []struct {
		spec   Specifier
		wantID int
	}{
		{ID(0), 0},
		{Tag("en-US"), 0},
		{Tag("EN-us"), 0},
		{Tag("en_US"), 0},
		{Tag("fr-FR"), 1},
		{Tag("de"), 3},
		{Tag("ja-JP"), 14},
		{ID(49), 49},
		{Tag("zh-Hant"), 53},
	}
	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			l, ok := c.Lookup(tt.spec)
			if !ok {
				t.Fatalf("Lookup(%v) found nothing", tt.spec)
			}
			if l.ID != tt.wantID {
				t.Errorf("Lookup(%v) = %d, want %d", tt.spec, l.ID, tt.wantID)
			}
		})
	}
}

func TestDefaultCatalogInvariants(t *testing.T) {
	c := Default()
	if c != Default() {
		t.Fatal("expected Default to return the same catalog")
	}
	prev := -1
	for _, l := range c.All() {
		if l.ID <= prev {
			t.Fatalf("catalog not in ID order at %d", l.ID)
		}
		prev = l.ID
		if len(l.Charsets) == 0 {
			t.Errorf("%s has no charsets", l)
		}
		if l.EnglishName == "" || l.LocalizedName == "" {
			t.Errorf("language %d is missing a name", l.ID)
		}
	}
	for _, id := range []int{14, 51, 52, 53} {
		l, _ := c.ByID(id)
		if !l.DoubleByte {
			t.Errorf("expected %s to be double-byte", l)
		}
	}
	if en, _ := c.ByID(0); en.Labels == nil || en.Labels.Agree != "Agree" {
		t.Fatalf("expected predefined English labels, got %+v", en.Labels)
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]Language{
		{ID: 1, Tags: []string{"xx"}},
		{ID: 1, Tags: []string{"yy"}},
		{ID: 2, Tags: []string{"XX"}},
	})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	msg := err.Error()
	for _, fragment := range []string{"ID 1", `"XX"`} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in %q", fragment, msg)
		}
	}
}

func TestResolveDeduplicatesAndKeepsOrder(t *testing.T) {
	got, err := Default().Resolve([]Specifier{Tag("de-DE"), ID(0), Tag("de"), ID(3)}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	ids := IDs(got)
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 0 {
		t.Fatalf("unexpected resolution %v", ids)
	}
}

func TestResolveWithoutSinkFailsOnUnknown(t *testing.T) {
	_, err := Default().Resolve([]Specifier{Tag("en-US"), Tag("xx-YY")}, nil)
	var nsl *NoSuchLanguageError
	if !errors.As(err, &nsl) {
		t.Fatalf("expected NoSuchLanguageError, got %v", err)
	}
	if len(nsl.Specifiers) != 1 || nsl.Specifiers[0].Tag != "xx-YY" {
		t.Fatalf("unexpected specifiers %v", nsl.Specifiers)
	}
}

func TestResolveWithSinkSkipsUnknown(t *testing.T) {
	var reported []error
	got, err := Default().Resolve([]Specifier{Tag("xx-YY"), ID(0), ID(9999)}, func(err error) {
		reported = append(reported, err)
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 1 || got[0].ID != 0 {
		t.Fatalf("unexpected resolution %v", IDs(got))
	}
	if len(reported) != 2 {
		t.Fatalf("expected 2 reported errors, got %d", len(reported))
	}
}

func TestResolveFailsWhenNothingMatches(t *testing.T) {
	called := false
	_, err := Default().Resolve([]Specifier{ID(9999)}, func(error) { called = true })
	var nsl *NoSuchLanguageError
	if !errors.As(err, &nsl) {
		t.Fatalf("expected NoSuchLanguageError, got %v", err)
	}
	if called {
		t.Fatal("sink should not be used when nothing resolves")
	}
	if _, err := Default().Resolve(nil, nil); err == nil || err.Error() != "no language specified" {
		t.Fatalf("unexpected error for empty list: %v", err)
	}
}

func TestLanguageString(t *testing.T) {
	l, _ := Default().ByID(3)
	if got := l.String(); got != "German (de-DE, de)" {
		t.Fatalf("String() = %q", got)
	}
}
