package logging

import (
	"log/slog"
	"strings"
)

// Attr is the attribute type accepted by every logger in this module.
type Attr = slog.Attr

const (
	// FieldSpecification is the path of the license specification being assembled.
	FieldSpecification = "specification"
	// FieldAssembly groups the outcome counts of one assembly.
	FieldAssembly = "assembly"
	FieldError    = "error"
)

func String(key, value string) Attr { return slog.String(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

// Error records err under FieldError. A nil error is recorded as "<nil>".
func Error(err error) Attr {
	if err == nil {
		return slog.String(FieldError, "<nil>")
	}
	return slog.Any(FieldError, err)
}

// Specification records the specification path.
func Specification(path string) Attr {
	return slog.String(FieldSpecification, path)
}

// Assembly records how many distinct licenses were built and how many
// languages share them.
func Assembly(licenses, languages int) Attr {
	return slog.Group(FieldAssembly, slog.Int("licenses", licenses), slog.Int("languages", languages))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with a component name. A nil logger
// discards.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, strings.TrimSpace(component)))
}
