// Package interp executes Rapira syntax trees.
//
// An [Interpreter] walks the statements of a [lang.Program] against an
// [Environment], a flat map from names to [Variable] cells. Each call to a
// procedure or function gets a fresh environment holding only its
// parameters, its own name (bound read-only, for recursion) and the names
// it declares extern, which alias the caller's variables.
//
// Statements report how control leaves them through an [Outcome]: normally,
// by return, or by exit. Subroutine calls consume returns and loops consume
// exits; one that escapes to the top is reported as an error at the
// statement that raised it.
//
// Operator failures from package value arrive as failed results and are
// converted to [Error] values of kind [KindInvalidOperation] at the position
// of the operator. Every runtime error has an [ErrorKind] and matches the
// sentinel of that kind with [errors.Is]:
//
//	err := in.Run(ctx, prog)
//	if errors.Is(err, interp.ErrIncorrectArgumentCount) {
//		// ...
//	}
package interp
