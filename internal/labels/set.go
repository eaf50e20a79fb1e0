// Package labels encodes the six installer dialog labels of one language into
// the length-prefixed string-list resource the installer reads, and back.
package labels

import "fmt"

// Count is the number of fields in a label resource.
const Count = 6

// MaxFieldLen is the largest encoded size of one field.
const MaxFieldLen = 255

// Field identifies one label by position.
type Field int

const (
	LanguageName Field = iota
	Agree
	Disagree
	Print
	Save
	Message
)

var fieldKeys = [Count]string{"languageName", "agree", "disagree", "print", "save", "message"}

var fieldDescriptions = [Count]string{
	"Language name",
	"\"Agree\" button label",
	"\"Disagree\" button label",
	"\"Print\" button label",
	"\"Save\" button label",
	"Instructions text",
}

// Fields lists every field in resource order.
func Fields() [Count]Field {
	return [Count]Field{LanguageName, Agree, Disagree, Print, Save, Message}
}

// Key is the field's name in specification files.
func (f Field) Key() string {
	if f < 0 || int(f) >= Count {
		return fmt.Sprintf("field%d", int(f))
	}
	return fieldKeys[f]
}

// Description is a human-readable name for diagnostics.
func (f Field) Description() string {
	if f < 0 || int(f) >= Count {
		return f.Key()
	}
	return fieldDescriptions[f]
}

func (f Field) String() string { return f.Key() }

// FieldByKey returns the field whose Key matches key.
func FieldByKey(key string) (Field, bool) {
	for i, k := range fieldKeys {
		if k == key {
			return Field(i), true
		}
	}
	return 0, false
}

// Set holds one value per label field.
type Set[T any] struct {
	LanguageName T
	Agree        T
	Disagree     T
	Print        T
	Save         T
	Message      T
}

// Get returns the value of f.
func (s *Set[T]) Get(f Field) T {
	switch f {
	case LanguageName:
		return s.LanguageName
	case Agree:
		return s.Agree
	case Disagree:
		return s.Disagree
	case Print:
		return s.Print
	case Save:
		return s.Save
	default:
		return s.Message
	}
}

// Put stores v in f.
func (s *Set[T]) Put(f Field, v T) {
	switch f {
	case LanguageName:
		s.LanguageName = v
	case Agree:
		s.Agree = v
	case Disagree:
		s.Disagree = v
	case Print:
		s.Print = v
	case Save:
		s.Save = v
	default:
		s.Message = v
	}
}

// Map converts every field of s with fn, in resource order.
func Map[T, U any](s Set[T], fn func(Field, T) U) Set[U] {
	var out Set[U]
	for _, f := range Fields() {
		out.Put(f, fn(f, s.Get(f)))
	}
	return out
}
