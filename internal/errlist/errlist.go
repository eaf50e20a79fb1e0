// Package errlist collects independent failures so an operation can report
// all of them at once instead of stopping at the first.
package errlist

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// MultiError holds two or more errors. errors.Is and errors.As see every
// member through Unwrap.
type MultiError struct {
	Errors []error
}

func (m *MultiError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:", len(m.Errors))
	for i, err := range m.Errors {
		first, rest := "├ ", "│ "
		if i == len(m.Errors)-1 {
			first, rest = "└ ", "  "
		}
		for j, line := range strings.Split(err.Error(), "\n") {
			b.WriteByte('\n')
			if j == 0 {
				b.WriteString(first)
			} else {
				b.WriteString(rest)
			}
			b.WriteString(line)
		}
	}
	return b.String()
}

func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Buffer accumulates errors. It is safe for concurrent use; the zero value is
// ready to use.
type Buffer struct {
	mu   sync.Mutex
	errs []error
	seen map[error]struct{}
}

// Add records err. Nil errors are ignored, a *MultiError is flattened into its
// members, and the same pointer-typed error value is only recorded once.
func (b *Buffer) Add(err error) {
	if err == nil {
		return
	}
	if m, ok := err.(*MultiError); ok {
		for _, e := range m.Errors {
			b.Add(e)
		}
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if reflect.TypeOf(err).Kind() == reflect.Pointer {
		if _, dup := b.seen[err]; dup {
			return
		}
		if b.seen == nil {
			b.seen = make(map[error]struct{})
		}
		b.seen[err] = struct{}{}
	}
	b.errs = append(b.errs, err)
}

// Len returns the number of recorded errors.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.errs)
}

// Errors returns a copy of the recorded errors in insertion order.
func (b *Buffer) Errors() []error {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]error, len(b.errs))
	copy(out, b.errs)
	return out
}

// Err returns nil when nothing was recorded, the lone error when there is
// exactly one, and a *MultiError otherwise.
func (b *Buffer) Err() error {
	errs := b.Errors()
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return &MultiError{Errors: errs}
}
