package goal

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKind     = errors.New("invalid goal kind")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrFormat          = errors.New("malformed goal record")
)

// FormatError reports a record that could not be parsed. Line is 1-based and
// zero when the record was parsed outside a file.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", ErrFormat.Error(), e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", ErrFormat.Error(), e.Msg)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

func formatf(format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}
