package interp

//go:generate go tool stringer --linecomment --type ErrorKind,Flow --output kind_string.go

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/result"
)

// ErrorKind classifies a runtime error.
type ErrorKind int

const (
	KindInvalidOperation           ErrorKind = iota // invalid operation
	KindIncorrectArgumentCount                      // incorrect argument count
	KindIllegalArgument                             // illegal argument
	KindIllegalInvocation                           // illegal invocation
	KindIllegalProcedureInvocation                  // illegal procedure invocation
	KindIllegalParamName                            // illegal parameter name
	KindIllegalForLoop                              // illegal for loop
	KindIllegalRepeatLoop                           // illegal repeat loop
	KindIllegalReturnValue                          // illegal return value
	KindMissingReturnValue                          // missing return value
	KindNonIntegerIndex                             // non-integer index
	KindIllegalReturn                               // illegal return
	KindIllegalExit                                 // illegal exit
	KindInput                                       // input
)

// Predefined errors (sentinel values), one per [ErrorKind].
var (
	ErrInvalidOperation = NewError(KindInvalidOperation,
		"invalid operation")
	ErrIncorrectArgumentCount = NewError(KindIncorrectArgumentCount,
		"incorrect argument count")
	ErrIllegalArgument = NewError(KindIllegalArgument,
		"illegal argument")
	ErrIllegalInvocation = NewError(KindIllegalInvocation,
		"value is not callable")
	ErrIllegalProcedureInvocation = NewError(KindIllegalProcedureInvocation,
		"procedure does not produce a value")
	ErrIllegalParamName = NewError(KindIllegalParamName,
		"illegal parameter name")
	ErrIllegalForLoop = NewError(KindIllegalForLoop,
		"illegal for loop")
	ErrIllegalRepeatLoop = NewError(KindIllegalRepeatLoop,
		"repeat count must be a non-negative integer")
	ErrIllegalReturnValue = NewError(KindIllegalReturnValue,
		"procedure cannot return a value")
	ErrMissingReturnValue = NewError(KindMissingReturnValue,
		"function completed without returning a value")
	ErrNonIntegerIndex = NewError(KindNonIntegerIndex,
		"index must be integer")
	ErrIllegalReturn = NewError(KindIllegalReturn,
		"cannot invoke return outside of procedure/function")
	ErrIllegalExit = NewError(KindIllegalExit,
		"cannot invoke exit outside of loop")
	ErrInput = NewError(KindInput,
		"failed to read input")
)

// Error is a runtime error raised while executing a program. It carries a
// kind, a message, an optional cause, structured logging attributes and the
// source position of the offending node.
//
// Errors match with [errors.Is] when their kinds are equal, so any error
// derived from a sentinel through [Error.With], [Error.Wrap] or
// [Error.WithPosition] still matches that sentinel.
type Error struct {
	err    error
	msg    string
	attrs  []slog.Attr
	pos    lang.Position
	kind   ErrorKind
	hasPos bool
}

// NewError creates a new Error of the given kind.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Kind returns the classification of the error.
func (e *Error) Kind() ErrorKind { return e.kind }

// Error implements the error interface.
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

// Position returns the source position of the error and whether one is set.
func (e *Error) Position() (lang.Position, bool) { return e.pos, e.hasPos }

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.kind == e.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)
	attrs = append(attrs, slog.String("kind", e.kind.String()))

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
func (e *Error) WithPosition(pos lang.Position) *Error {
	c := e.clone()
	c.pos = pos
	c.hasPos = pos.IsValid()

	return c
}

// locate attaches pos to err unless err already carries a position. The
// innermost position wins, so an error raised deep in a call reports the
// statement that failed rather than the call site.
func locate(err error, pos lang.Position) error {
	var e *Error
	if !errors.As(err, &e) {
		return ErrInvalidOperation.Wrap(err).WithPosition(pos)
	}

	if e.hasPos {
		return err
	}

	return e.WithPosition(pos)
}

// unwrap is getOrThrow for the evaluator: a failed Result becomes an
// InvalidOperation error located at pos.
func unwrap[T any](r result.Result[T], pos lang.Position) (T, error) {
	v, err := r.Get()
	if err != nil {
		return v, ErrInvalidOperation.Wrap(err).WithPosition(pos)
	}

	return v, nil
}
