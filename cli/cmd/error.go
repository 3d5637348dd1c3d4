package cmd

import (
	"log/slog"
	"slices"
)

// Error is a command failure. Errors derived from a sentinel with Wrap or
// With still match it under [errors.Is].
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

func NewError(msg string) *Error { return &Error{msg: msg} }

func (e *Error) Error() string {
	switch {
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	default:
		return e.msg + ": " + e.err.Error()
	}
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("error", e.msg)}
	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(slices.Concat(attrs, e.attrs)...)
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With returns a copy of e carrying attrs in its log value.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = slices.Concat(e.attrs, attrs)

	return &c
}

var (
	ErrReadSource     = NewError("read program")
	ErrSourceNotFound = NewError("program file not found")
	ErrDefine         = NewError("invalid definition")
	ErrFormat         = NewError("format program")
	ErrWriteConfig    = NewError("write configuration file")
	ErrFileExists     = NewError("file exists (use --force to overwrite)")

	// ErrProgramFailed wraps a program error that has already been shown to
	// the user with its source line.
	ErrProgramFailed = NewError("program failed")
)
