package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	"dmglicense/internal/charset"
	"dmglicense/internal/config"
	"dmglicense/internal/language"
	"dmglicense/internal/license"
	"dmglicense/internal/restable"
	"dmglicense/internal/services"
	"dmglicense/internal/specfile"
	"dmglicense/internal/udif"
)

// assembly is everything derived from one license specification file.
type assembly struct {
	Loaded   *specfile.Loaded
	Result   *license.Result
	Table    *restable.Table
	Fork     udif.Fork
	Warnings []string
}

// warningCollector records non-fatal assembly problems and echoes them to
// out unless out is nil.
type warningCollector struct {
	mu       sync.Mutex
	out      io.Writer
	warnings []string
}

func (w *warningCollector) add(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.warnings = append(w.warnings, err.Error())
	if w.out != nil {
		fmt.Fprintf(w.out, "Warning: %s\n", err)
	}
}

func (w *warningCollector) list() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.warnings...)
}

type assembleOptions struct {
	strict  bool
	warnOut io.Writer
}

// assembleFile loads specPath and lays its licenses out as resources.
// Warnings are fatal when strict is set or the configuration asks for it.
func assembleFile(ctx context.Context, cfg *config.Config, logger *slog.Logger, specPath string, opts assembleOptions) (*assembly, error) {
	loaded, err := specfile.Load(specPath)
	if err != nil {
		var invalid *specfile.InvalidError
		if errors.As(err, &invalid) {
			return nil, services.Wrap(services.ErrSpecification, "specification", "load", "", err)
		}
		return nil, services.Wrap(services.ErrInput, "specification", "load", "", err)
	}

	catalog := language.Default()
	negotiator := charset.NewNegotiator(charset.WithCacheSize(cfg.Assembly.ConversionCacheSize))
	collector := &warningCollector{out: opts.warnOut}
	assemblerOpts := []license.Option{
		license.WithEncoder(negotiator),
		license.WithPathResolver(loaded.ResolvePath),
		license.WithLogger(logger),
		license.WithConcurrency(cfg.Assembly.MaxConcurrentLoads),
	}
	if !opts.strict && !cfg.Assembly.WarningsAsErrors {
		assemblerOpts = append(assemblerOpts, license.WithNonFatalErrorSink(collector.add))
	}

	result, err := license.NewAssembler(catalog, assemblerOpts...).Assemble(ctx, loaded.Spec)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, services.Wrap(services.ErrInput, "license", "assemble", "", err)
		}
		return nil, services.Wrap(services.ErrSpecification, "license", "assemble", "", err)
	}

	table, err := restable.FromResult(result, catalog)
	if err != nil {
		return nil, services.Wrap(services.ErrInternal, "restable", "build", "", err)
	}

	return &assembly{
		Loaded:   loaded,
		Result:   result,
		Table:    table,
		Fork:     udif.Resources(table, catalog),
		Warnings: collector.list(),
	}, nil
}
