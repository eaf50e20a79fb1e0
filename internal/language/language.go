package language

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"dmglicense/internal/errlist"
)

// Specifier selects a language either by classic region ID or by tag.
// A non-empty Tag takes precedence over ID.
type Specifier struct {
	ID  int
	Tag string
}

// ID returns a specifier matching the language with the given region ID.
func ID(id int) Specifier { return Specifier{ID: id} }

// Tag returns a specifier matching a language tag such as "en-US".
func Tag(tag string) Specifier { return Specifier{Tag: tag} }

// IsTag reports whether the specifier selects by tag.
func (s Specifier) IsTag() bool { return s.Tag != "" }

func (s Specifier) String() string {
	if s.IsTag() {
		return strconv.Quote(s.Tag)
	}
	return strconv.Itoa(s.ID)
}

// Labels is a predefined set of installer dialog labels for a language.
type Labels struct {
	LanguageName string
	Agree        string
	Disagree     string
	Print        string
	Save         string
	Message      string
}

// Language describes one installer localization.
type Language struct {
	ID            int
	Tags          []string
	Charsets      []string
	EnglishName   string
	LocalizedName string
	DoubleByte    bool
	Labels        *Labels
}

// PrimaryTag returns the first tag, or the numeric ID when the language has none.
func (l *Language) PrimaryTag() string {
	if len(l.Tags) > 0 {
		return l.Tags[0]
	}
	return strconv.Itoa(l.ID)
}

func (l *Language) String() string {
	if len(l.Tags) == 0 {
		return fmt.Sprintf("%s (%d)", l.EnglishName, l.ID)
	}
	return fmt.Sprintf("%s (%s)", l.EnglishName, strings.Join(l.Tags, ", "))
}

// Names joins the display names of langs for diagnostics.
func Names(langs []*Language) string {
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, l.String())
	}
	return strings.Join(names, "; ")
}

// IDs returns the region IDs of langs in order.
func IDs(langs []*Language) []int {
	ids := make([]int, 0, len(langs))
	for _, l := range langs {
		ids = append(ids, l.ID)
	}
	return ids
}

// Catalog is an immutable set of languages indexed by ID and tag.
type Catalog struct {
	languages []*Language
	byID      map[int]*Language
	byTag     map[string]*Language
}

// NewCatalog indexes entries. Duplicate IDs and tags claimed by more than
// one language are rejected.
func NewCatalog(entries []Language) (*Catalog, error) {
	c := &Catalog{
		languages: make([]*Language, 0, len(entries)),
		byID:      make(map[int]*Language, len(entries)),
		byTag:     make(map[string]*Language, len(entries)*2),
	}
	var errs errlist.Buffer
	for i := range entries {
		l := &entries[i]
		if prev, ok := c.byID[l.ID]; ok {
			errs.Add(fmt.Errorf("language ID %d is used by both %s and %s", l.ID, prev, l))
			continue
		}
		c.byID[l.ID] = l
		c.languages = append(c.languages, l)
		for _, tag := range l.Tags {
			key := normalizeTag(tag)
			if key == "" {
				errs.Add(fmt.Errorf("language %d has an empty tag", l.ID))
				continue
			}
			if prev, ok := c.byTag[key]; ok && prev != l {
				errs.Add(fmt.Errorf("language tag %q is used by both %s and %s", tag, prev, l))
				continue
			}
			c.byTag[key] = l
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	slices.SortFunc(c.languages, func(a, b *Language) int { return cmp.Compare(a.ID, b.ID) })
	return c, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog(builtin())
	if err != nil {
		panic(fmt.Sprintf("language: builtin catalog: %v", err))
	}
	return c
})

// Default returns the built-in catalog of classic installer localizations.
func Default() *Catalog {
	return defaultCatalog()
}

// All returns every language in ID order. The slice must not be modified.
func (c *Catalog) All() []*Language {
	return c.languages
}

// Len returns the number of languages in the catalog.
func (c *Catalog) Len() int {
	return len(c.languages)
}

func (c *Catalog) ByID(id int) (*Language, bool) {
	l, ok := c.byID[id]
	return l, ok
}

// ByTag looks up a language by tag, ignoring case and treating "_" as "-".
func (c *Catalog) ByTag(tag string) (*Language, bool) {
	l, ok := c.byTag[normalizeTag(tag)]
	return l, ok
}

// Lookup resolves a single specifier.
func (c *Catalog) Lookup(s Specifier) (*Language, bool) {
	if s.IsTag() {
		return c.ByTag(s.Tag)
	}
	return c.ByID(s.ID)
}

// Resolve maps specifiers to languages, dropping repeats. Without a sink, any
// unresolved specifier fails the call. With a sink, each unresolved specifier
// is reported there and skipped, and the call fails only when nothing resolved.
func (c *Catalog) Resolve(specs []Specifier, sink func(error)) ([]*Language, error) {
	out := make([]*Language, 0, len(specs))
	seen := make(map[int]struct{}, len(specs))
	var missing []Specifier
	for _, s := range specs {
		l, ok := c.Lookup(s)
		if !ok {
			missing = append(missing, s)
			continue
		}
		if _, dup := seen[l.ID]; dup {
			continue
		}
		seen[l.ID] = struct{}{}
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil, &NoSuchLanguageError{Specifiers: specs}
	}
	if len(missing) > 0 {
		if sink == nil {
			return nil, &NoSuchLanguageError{Specifiers: missing}
		}
		for _, s := range missing {
			sink(&NoSuchLanguageError{Specifiers: []Specifier{s}})
		}
	}
	return out, nil
}

func normalizeTag(tag string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), "_", "-")
}

// NoSuchLanguageError reports specifiers that match no catalog entry.
type NoSuchLanguageError struct {
	Specifiers []Specifier
}

func (e *NoSuchLanguageError) Error() string {
	switch len(e.Specifiers) {
	case 0:
		return "no language specified"
	case 1:
		return fmt.Sprintf("no known language matches %s", e.Specifiers[0])
	}
	parts := make([]string, 0, len(e.Specifiers))
	for _, s := range e.Specifiers {
		parts = append(parts, s.String())
	}
	return "no known languages match " + strings.Join(parts, ", ")
}
