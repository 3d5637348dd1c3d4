// Package result provides a two-variant outcome type used for operational
// failures that a caller is expected to handle or convert.
//
// A [Result] is either a success carrying a value or a failure carrying a
// human-readable reason. Combinators short-circuit: once a failure enters a
// chain it is passed through unchanged, and only [Result.MapError] may rewrite
// its reason.
package result

import "fmt"

// Unit is the payload of a successful operation that produces no value.
type Unit struct{}

// Result holds either a value of type T or a failure reason.
type Result[T any] struct {
	value  T
	reason string
	failed bool
}

// Success returns a successful Result holding v.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure returns a failed Result with the given reason.
func Failure[T any](reason string) Result[T] {
	return Result[T]{reason: reason, failed: true}
}

// Failuref returns a failed Result with a formatted reason.
func Failuref[T any](format string, args ...any) Result[T] {
	return Failure[T](fmt.Sprintf(format, args...))
}

// Ok reports whether r is a success.
func (r Result[T]) Ok() bool { return !r.failed }

// Value returns the held value and whether r is a success.
func (r Result[T]) Value() (T, bool) { return r.value, !r.failed }

// Reason returns the failure reason, or the empty string on success.
func (r Result[T]) Reason() string { return r.reason }

// MapError rewrites the reason of a failed Result. Successes are returned
// unchanged.
func (r Result[T]) MapError(fn func(reason string) string) Result[T] {
	if !r.failed {
		return r
	}

	return Failure[T](fn(r.reason))
}

// Get unwraps r. A failure is returned as a *[Error] carrying the reason.
func (r Result[T]) Get() (T, error) {
	if r.failed {
		var zero T

		return zero, &Error{Reason: r.reason}
	}

	return r.value, nil
}

// String implements [fmt.Stringer].
func (r Result[T]) String() string {
	if r.failed {
		return "Failure(" + r.reason + ")"
	}

	return fmt.Sprintf("Success(%v)", r.value)
}

// Map applies fn to the value of a successful Result.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.failed {
		return Failure[U](r.reason)
	}

	return Success(fn(r.value))
}

// AndThen chains an operation that may itself fail.
func AndThen[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.failed {
		return Failure[U](r.reason)
	}

	return fn(r.value)
}

// Pair is the payload produced by [Zip].
type Pair[T, U any] struct {
	First  T
	Second U
}

// Zip combines two results. The first failure, in argument order, wins.
func Zip[T, U any](a Result[T], b Result[U]) Result[Pair[T, U]] {
	switch {
	case a.failed:
		return Failure[Pair[T, U]](a.reason)
	case b.failed:
		return Failure[Pair[T, U]](b.reason)
	}

	return Success(Pair[T, U]{First: a.value, Second: b.value})
}

// Error is the error returned by [Result.Get] for a failed Result.
type Error struct {
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Reason }
