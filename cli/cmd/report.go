package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/mattmikolay/rapture/lang"
)

// positioned is implemented by the parser and interpreter errors.
type positioned interface {
	error
	Message() string
	Position() (lang.Position, bool)
}

// Report writes a human-readable description of err to w. If err carries a
// source position, the report names the line and column and quotes the
// offending line of source with a caret under the column:
//
//	error: invalid operation: division by zero
//	  at line 2, column 8
//	  2 | x := 1 / 0
//	             ^
func Report(w io.Writer, err error, source string) {
	if err == nil {
		return
	}

	var pe positioned
	if !errors.As(err, &pe) {
		fmt.Fprintf(w, "error: %v\n", err)

		return
	}

	fmt.Fprintf(w, "error: %s\n", pe.Message())

	pos, ok := pe.Position()
	if !ok {
		return
	}

	fmt.Fprintf(w, "  at line %d, column %d\n", pos.Line, pos.Column)
	fmt.Fprint(w, lang.Snippet(source, pos))
}
