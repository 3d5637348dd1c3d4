package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrParse            = NewError("syntax error")
	ErrReadInput        = NewError("failed to read input")
	ErrInvalidToken     = NewError("invalid token")
	ErrUnterminatedText = NewError("unterminated text literal")
	ErrInvalidNumber    = NewError("invalid number literal")
)

// Error represents an error with optional structured logging attributes and
// source position. It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel through [Error.With], [Error.Wrap] or
// [Error.WithPosition] still match that sentinel with [errors.Is].
type Error struct {
	root   *Error
	err    error
	msg    string
	attrs  []slog.Attr
	pos    Position
	hasPos bool
	eof    bool // input ended before the construct was closed
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.root = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	e := &Error{err: err}
	e.root = e

	return e
}

// Error implements the error interface. The message is prefixed with
// "line:column: " when the error carries a position.
func (e *Error) Error() string {
	if e.hasPos {
		return e.pos.String() + ": " + e.Message()
	}

	return e.Message()
}

// Message returns the error text without position.
func (e *Error) Message() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Incomplete reports whether err was raised because input ended inside an
// unfinished construct, so that further lines could complete it.
func Incomplete(err error) bool {
	var e *Error

	return errors.As(err, &e) && e.eof
}

// Position returns the source position of the error and whether one is set.
func (e *Error) Position() (Position, bool) { return e.pos, e.hasPos }

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.root != nil && t.root == e.root
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.hasPos {
		attrs = append(attrs, slog.String("pos", e.pos.String()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

func (e *Error) clone() *Error {
	c := *e

	return &c
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// WithPosition returns a copy of the error located at pos.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.clone()
	c.pos = pos
	c.hasPos = pos.IsValid()

	return c
}

// Snippet renders the source line containing pos followed by a caret under
// the offending column. It returns the empty string if pos is not within
// source.
func Snippet(source string, pos Position) string {
	if !pos.IsValid() {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	line := strings.TrimRight(lines[pos.Line-1], "\r")
	num := strconv.Itoa(pos.Line)

	var src strings.Builder

	src.WriteString("  ")
	src.WriteString(num)
	src.WriteString(" | ")
	src.WriteString(line)
	src.WriteRune('\n')

	// 2 leading spaces + " | "
	padding := strings.Repeat(" ", len(num)+5)
	if pos.Column > 0 {
		padding += strings.Repeat(" ", pos.Column-1)
	}

	src.WriteString(padding + "^\n")

	return src.String()
}
