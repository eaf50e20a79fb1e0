package license

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"dmglicense/internal/charset"
	"dmglicense/internal/errlist"
	"dmglicense/internal/labels"
	"dmglicense/internal/language"
	"dmglicense/internal/logging"
)

var (
	// ErrNoBodies is returned for a specification without body entries.
	ErrNoBodies = errors.New("no license bodies were provided")
	// ErrNoLicenses is returned when not a single language could be assembled.
	ErrNoLicenses = errors.New("no licenses could be assembled")
)

const defaultConcurrency = 8

// NoDefaultLabelsError reports a language with neither explicit nor
// predefined labels.
type NoDefaultLabelsError struct {
	Language *language.Language
}

func (e *NoDefaultLabelsError) Error() string {
	return fmt.Sprintf("there are no default labels for %s; you must provide your own labels for this language", e.Language)
}

// CollisionError is the warning raised when several entries of one kind
// claim the same languages.
type CollisionError struct {
	Kind      string
	Languages []*language.Language
}

func (e *CollisionError) Error() string {
	if len(e.Languages) == 1 {
		return fmt.Sprintf("more than one %s was assigned to the language %s; the first applicable %s has been used", e.Kind, e.Languages[0], e.Kind)
	}
	names := make([]string, 0, len(e.Languages))
	for _, l := range e.Languages {
		names = append(names, l.String())
	}
	return fmt.Sprintf("more than one %s was assigned to the languages %s; in each case, the first applicable %s has been used", e.Kind, strings.Join(names, ", "), e.Kind)
}

// AssembledLicense is one body and label resource pair and every language
// that uses it.
type AssembledLicense struct {
	Body        Body
	Labels      []byte
	LanguageIDs []int
}

// Equal reports whether a and b hold byte-identical content.
func (l *AssembledLicense) Equal(o *AssembledLicense) bool {
	return l.Body.Type.ResourceType() == o.Body.Type.ResourceType() &&
		bytes.Equal(l.Body.Data, o.Body.Data) &&
		bytes.Equal(l.Labels, o.Labels)
}

// digest indexes licenses for deduplication. Equal decides.
var digest = func(l *AssembledLicense) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(l.Body.Type.ResourceType())
	_, _ = d.Write(l.Body.Data)
	_, _ = d.Write(l.Labels)
	return d.Sum64()
}

// Result is the outcome of a successful assembly.
type Result struct {
	// InOrder lists distinct licenses in first-assignment order.
	InOrder []*AssembledLicense
	// ByLanguageID maps every assembled language to its license.
	ByLanguageID      map[int]*AssembledLicense
	DefaultLanguageID int
}

type labelResult struct {
	data []byte
	err  error
}

type bodyResult struct {
	body Body
	err  error
}

// Assembler turns specifications into deduplicated per-language licenses.
// One Assembler may serve many Assemble calls; predefined labels are encoded
// once per language and reused.
type Assembler struct {
	catalog     *language.Catalog
	encoder     labels.Encoder
	resolvePath func(string) string
	readFile    func(string) ([]byte, error)
	sink        func(error)
	logger      *slog.Logger
	concurrency int

	mu            sync.Mutex
	defaultLabels map[int]labelResult
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithEncoder replaces the charset negotiator.
func WithEncoder(enc labels.Encoder) Option {
	return func(a *Assembler) {
		if enc != nil {
			a.encoder = enc
		}
	}
}

// WithPathResolver maps file references in a specification to real paths.
func WithPathResolver(fn func(string) string) Option {
	return func(a *Assembler) {
		if fn != nil {
			a.resolvePath = fn
		}
	}
}

// WithFileReader replaces os.ReadFile.
func WithFileReader(fn func(string) ([]byte, error)) Option {
	return func(a *Assembler) {
		if fn != nil {
			a.readFile = fn
		}
	}
}

// WithNonFatalErrorSink receives warnings. Without a sink, warnings fail the
// assembly.
func WithNonFatalErrorSink(fn func(error)) Option {
	return func(a *Assembler) {
		a.sink = fn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logging.NewComponentLogger(logger, "license")
	}
}

// WithConcurrency bounds the number of loads in flight.
func WithConcurrency(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func NewAssembler(catalog *language.Catalog, opts ...Option) *Assembler {
	if catalog == nil {
		catalog = language.Default()
	}
	a := &Assembler{
		catalog:       catalog,
		encoder:       charset.NewNegotiator(),
		resolvePath:   func(p string) string { return p },
		readFile:      os.ReadFile,
		logger:        logging.NewComponentLogger(nil, "license"),
		concurrency:   defaultConcurrency,
		defaultLabels: make(map[int]labelResult),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Catalog returns the catalog languages are resolved against.
func (a *Assembler) Catalog() *language.Catalog {
	return a.catalog
}

func (a *Assembler) loadContext(ctx context.Context) *loadContext {
	return &loadContext{ctx: ctx, resolve: a.resolvePath, readFile: a.readFile, encoder: a.encoder}
}

// DefaultLabels returns the packed predefined labels of lang. Results,
// failures included, are cached for the life of the Assembler.
func (a *Assembler) DefaultLabels(lang *language.Language) ([]byte, error) {
	a.mu.Lock()
	res, ok := a.defaultLabels[lang.ID]
	a.mu.Unlock()
	if ok {
		return res.data, res.err
	}

	res = a.packDefaultLabels(lang)

	a.mu.Lock()
	if prev, ok := a.defaultLabels[lang.ID]; ok {
		res = prev
	} else {
		a.defaultLabels[lang.ID] = res
	}
	a.mu.Unlock()
	return res.data, res.err
}

func (a *Assembler) packDefaultLabels(lang *language.Language) labelResult {
	predefined := lang.Labels
	if predefined == nil {
		return labelResult{err: &NoDefaultLabelsError{Language: lang}}
	}
	set := labels.Set[*charset.Source]{
		Agree:    charset.Text(predefined.Agree),
		Disagree: charset.Text(predefined.Disagree),
		Print:    charset.Text(predefined.Print),
		Save:     charset.Text(predefined.Save),
		Message:  charset.Text(predefined.Message),
	}
	data, err := labels.Pack(set, lang, a.encoder)
	if err != nil {
		return labelResult{err: fmt.Errorf("default labels for %s: %w", lang, err)}
	}
	return labelResult{data: data}
}

type assignment struct {
	lang *language.Language
	body int
}

// run holds the state of one Assemble call.
type run struct {
	ctx  context.Context
	a    *Assembler
	errs errlist.Buffer
}

// warn reports a non-fatal condition. Without a sink it becomes an error.
func (r *run) warn(err error) {
	if r.a.sink == nil {
		r.errs.Add(err)
		return
	}
	r.a.logger.WarnContext(r.ctx, "license specification warning", logging.Error(err))
	r.a.sink(err)
}

// resolveSink is the sink handed to language resolution.
func (r *run) resolveSink() func(error) {
	if r.a.sink == nil {
		return nil
	}
	return r.warn
}

func (r *run) resolveAll(kind string, n int, specs func(int) []language.Specifier) [][]*language.Language {
	out := make([][]*language.Language, n)
	for i := range n {
		langs, err := r.a.catalog.Resolve(specs(i), r.resolveSink())
		if err != nil {
			r.errs.Add(fmt.Errorf("%s %d: %w", kind, i+1, err))
			continue
		}
		out[i] = langs
	}
	return out
}

// index assigns each language to the first entry that declares it and warns
// once about every language claimed again by a later entry.
func (r *run) index(kind string, groups [][]*language.Language) ([]assignment, map[int]int) {
	var order []assignment
	owner := make(map[int]int)
	var collided []*language.Language
	seenCollision := make(map[int]struct{})
	for i, langs := range groups {
		for _, l := range langs {
			if _, taken := owner[l.ID]; taken {
				if _, dup := seenCollision[l.ID]; !dup {
					seenCollision[l.ID] = struct{}{}
					collided = append(collided, l)
				}
				continue
			}
			owner[l.ID] = i
			order = append(order, assignment{lang: l, body: i})
		}
	}
	if len(collided) > 0 {
		r.warn(&CollisionError{Kind: kind, Languages: collided})
	}
	return order, owner
}

// Assemble loads every body and label set the specification declares,
// merges languages with identical content and chooses the default language.
// All failures are collected; on any failure no result is returned.
func (a *Assembler) Assemble(ctx context.Context, spec *Specification) (*Result, error) {
	if spec == nil || len(spec.Bodies) == 0 {
		return nil, ErrNoBodies
	}
	r := &run{ctx: ctx, a: a}
	lc := a.loadContext(ctx)

	bodyLangs := r.resolveAll("license body", len(spec.Bodies), func(i int) []language.Specifier {
		return spec.Bodies[i].Languages
	})
	labelLangs := r.resolveAll("label set", len(spec.Labels), func(i int) []language.Specifier {
		return spec.Labels[i].Languages
	})
	order, _ := r.index("license body", bodyLangs)
	_, labelOwner := r.index("label set", labelLangs)

	used := make([]bool, len(spec.Bodies))
	for _, as := range order {
		used[as.body] = true
	}

	bodies := make([]bodyResult, len(spec.Bodies))
	packed := make([]labelResult, len(order))
	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i := range spec.Bodies {
		if !used[i] {
			continue
		}
		g.Go(func() error {
			body, err := a.prepareBody(lc, spec.Bodies[i], bodyLangs[i])
			bodies[i] = bodyResult{body: body, err: err}
			return nil
		})
	}
	for j, as := range order {
		g.Go(func() error {
			data, err := a.labelsFor(lc, spec, labelOwner, as.lang)
			packed[j] = labelResult{data: data, err: err}
			return nil
		})
	}
	_ = g.Wait()

	byID := make(map[int]*AssembledLicense, len(order))
	buckets := make(map[uint64][]*AssembledLicense)
	var inOrder []*AssembledLicense
	for j, as := range order {
		br, lr := bodies[as.body], packed[j]
		if br.err != nil || lr.err != nil {
			r.errs.Add(br.err)
			r.errs.Add(lr.err)
			continue
		}
		candidate := &AssembledLicense{Body: br.body, Labels: lr.data, LanguageIDs: []int{as.lang.ID}}
		sum := digest(candidate)
		var merged *AssembledLicense
		for _, other := range buckets[sum] {
			if other.Equal(candidate) {
				merged = other
				break
			}
		}
		if merged != nil {
			merged.LanguageIDs = append(merged.LanguageIDs, as.lang.ID)
			byID[as.lang.ID] = merged
			continue
		}
		buckets[sum] = append(buckets[sum], candidate)
		inOrder = append(inOrder, candidate)
		byID[as.lang.ID] = candidate
	}

	if len(inOrder) == 0 {
		r.errs.Add(ErrNoLicenses)
		return nil, r.errs.Err()
	}

	defaultID := r.chooseDefault(spec, bodyLangs, labelLangs, byID, inOrder)
	if err := r.errs.Err(); err != nil {
		return nil, err
	}

	a.logger.DebugContext(ctx, "licenses assembled",
		logging.Assembly(len(inOrder), len(byID)),
		logging.Int("default_language", defaultID),
	)
	return &Result{InOrder: inOrder, ByLanguageID: byID, DefaultLanguageID: defaultID}, nil
}

func (a *Assembler) labelsFor(c *loadContext, spec *Specification, owner map[int]int, lang *language.Language) ([]byte, error) {
	idx, ok := owner[lang.ID]
	if !ok {
		return a.DefaultLabels(lang)
	}
	source := spec.Labels[idx].Source
	if source == nil {
		return nil, fmt.Errorf("label set %d has no source", idx+1)
	}
	data, err := source.load(c, lang)
	if err != nil {
		return nil, fmt.Errorf("%s labels for %s: %w", source.Kind(), lang, err)
	}
	return data, nil
}

// chooseDefault picks the default language: the explicit selector, then
// entries flagged as default, then the first language of the first body,
// then the first assembled language. Candidates without a license are
// reported and skipped.
func (r *run) chooseDefault(spec *Specification, bodyLangs, labelLangs [][]*language.Language, byID map[int]*AssembledLicense, inOrder []*AssembledLicense) int {
	assembled := func(l *language.Language, reason string) bool {
		if _, ok := byID[l.ID]; ok {
			return true
		}
		r.warn(fmt.Errorf("%s %s has no license; choosing another default", reason, l))
		return false
	}

	if sel := spec.DefaultLanguage; sel != nil {
		l, ok := r.a.catalog.Lookup(*sel)
		if !ok {
			r.warn(fmt.Errorf("default language: %w", &language.NoSuchLanguageError{Specifiers: []language.Specifier{*sel}}))
		} else if assembled(l, "the configured default language") {
			return l.ID
		}
	}

	var flagged []*language.Language
	addFlagged := func(langs []*language.Language) {
		if len(langs) == 0 {
			return
		}
		for _, f := range flagged {
			if f.ID == langs[0].ID {
				return
			}
		}
		flagged = append(flagged, langs[0])
	}
	for i, b := range spec.Bodies {
		if b.Default {
			addFlagged(bodyLangs[i])
		}
	}
	for i, le := range spec.Labels {
		if le.Default {
			addFlagged(labelLangs[i])
		}
	}
	if len(flagged) > 1 {
		r.warn(fmt.Errorf("several entries are marked as the default (%s); using %s", language.Names(flagged), flagged[0]))
	}
	if len(flagged) > 0 && assembled(flagged[0], "the default language") {
		return flagged[0].ID
	}

	for _, langs := range bodyLangs {
		if len(langs) == 0 {
			continue
		}
		if _, ok := byID[langs[0].ID]; ok {
			return langs[0].ID
		}
		break
	}
	return inOrder[0].LanguageIDs[0]
}
