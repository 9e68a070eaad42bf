package decode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrTypeMismatch = errors.New("type mismatch")
)

type ErrorKind uint8

const (
	MissingField ErrorKind = iota + 1
	TypeMismatch
)

// Error identifies the first field of a record that could not be decoded.
// Path is ordered from the record root to the offending field.
type Error struct {
	Kind     ErrorKind
	Path     []string
	Expected string
}

func missingField(name string) *Error {
	return &Error{Kind: MissingField, Path: []string{name}}
}

func typeMismatch(expected string) *Error {
	return &Error{Kind: TypeMismatch, Expected: expected}
}

// FieldPath returns the dotted path of the offending field, e.g. "old_chat_member.user.id".
func (e *Error) FieldPath() string {
	return strings.Join(e.Path, ".")
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("%s: %q", ErrMissingField, e.FieldPath())
	case TypeMismatch:
		if len(e.Path) == 0 {
			return fmt.Sprintf("%s: expected %s", ErrTypeMismatch, e.Expected)
		}
		return fmt.Sprintf("%s: field %q: expected %s", ErrTypeMismatch, e.FieldPath(), e.Expected)
	default:
		return "decode error"
	}
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrMissingField:
		return e.Kind == MissingField
	case ErrTypeMismatch:
		return e.Kind == TypeMismatch
	}
	return false
}

// prefixed returns a copy of err with name prepended to its path. Errors that
// did not come from this package are turned into a type mismatch on name.
func prefixed(name string, err error, expected string) *Error {
	var de *Error
	if !errors.As(err, &de) {
		return &Error{Kind: TypeMismatch, Path: []string{name}, Expected: expected}
	}

	path := make([]string, 0, len(de.Path)+1)
	path = append(path, name)
	path = append(path, de.Path...)
	return &Error{Kind: de.Kind, Path: path, Expected: de.Expected}
}
