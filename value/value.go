// Package value defines the runtime values of Rapira and the operators over
// them.
//
// The variant set is closed: [Empty], [Logical], [Integer], [Real], [Text],
// [Sequence], [*Procedure], [*Function] and [*Native]. Values are immutable;
// every operator returns a new value wrapped in a [result.Result], and an
// unsupported operand combination yields a failure rather than a panic.
package value

//go:generate go tool stringer --linecomment --type Kind,ParamMode --output kind_string.go

import (
	"strconv"
	"strings"

	"github.com/mattmikolay/rapture/lang"
)

// Kind identifies the variant of a [Value].
type Kind int

const (
	KindEmpty     Kind = iota // empty
	KindLogical               // logical
	KindInteger               // integer
	KindReal                  // real
	KindText                  // text
	KindSequence              // sequence
	KindProcedure             // procedure
	KindFunction              // function
	KindNative                // native function
)

// Value is a Rapira runtime value.
type Value interface {
	Kind() Kind
	// String returns the canonical literal form of the value.
	String() string
}

type (
	// Empty is the absent value.
	Empty struct{}

	// Logical is yes or no.
	Logical bool

	// Integer is a 64-bit signed integer.
	Integer int64

	// Real is a 64-bit float.
	Real float64

	// Text is a string of characters. Indexing and length count runes.
	Text string

	// Sequence is an ordered list of values, indexed from 1. Sequences are
	// never modified in place.
	Sequence []Value
)

func (Empty) Kind() Kind    { return KindEmpty }
func (Logical) Kind() Kind  { return KindLogical }
func (Integer) Kind() Kind  { return KindInteger }
func (Real) Kind() Kind     { return KindReal }
func (Text) Kind() Kind     { return KindText }
func (Sequence) Kind() Kind { return KindSequence }

func (Empty) String() string { return "empty" }

func (v Logical) String() string {
	if v {
		return "yes"
	}

	return "no"
}

func (v Integer) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Real) String() string    { return lang.FormatReal(float64(v)) }
func (v Text) String() string    { return lang.QuoteText(string(v)) }

func (v Sequence) String() string {
	if len(v) == 0 {
		return "<* *>"
	}

	part := make([]string, len(v))
	for i, e := range v {
		part[i] = e.String()
	}

	return "<* " + strings.Join(part, ", ") + " *>"
}

// Len returns the number of characters in v.
func (v Text) Len() int { return len([]rune(string(v))) }

// ParamMode is the passing mode of a subroutine parameter.
type ParamMode int

const (
	In    ParamMode = iota // in
	InOut                  // in-out
)

// Parameter is a declared subroutine parameter.
type Parameter struct {
	Name string
	Mode ParamMode
}

// Subroutine is the definition shared by procedures and functions.
type Subroutine struct {
	Name   string
	Params []Parameter
	Extern []string
	Body   []lang.Stmt
	Pos    lang.Position
}

// Signature returns the parameter listing, e.g. "swap(=>a, =>b)".
func (s *Subroutine) Signature() string {
	var sb strings.Builder

	sb.WriteString(s.Name)
	sb.WriteString("(")

	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		if p.Mode == InOut {
			sb.WriteString("=>")
		}

		sb.WriteString(p.Name)
	}

	sb.WriteString(")")

	return sb.String()
}

// Procedure is a subroutine invoked for its effects. Procedures compare by
// identity.
type Procedure struct {
	*Subroutine
}

// Function is a subroutine that returns a value. Functions compare by
// identity.
type Function struct {
	*Subroutine
}

// Native is a built-in function implemented in Go. Impl is called with
// exactly Arity arguments.
type Native struct {
	Impl  func(args []Value) (Value, error)
	Name  string
	Arity int
}

func (*Procedure) Kind() Kind { return KindProcedure }
func (*Function) Kind() Kind  { return KindFunction }
func (*Native) Kind() Kind    { return KindNative }

func (p *Procedure) String() string { return named("proc", p.Name) }
func (f *Function) String() string  { return named("fun", f.Name) }
func (n *Native) String() string    { return named("fun", n.Name) }

func named(kw, name string) string {
	if name == "" {
		return kw
	}

	return kw + "[" + strconv.Quote(name) + "]"
}

// IsNumeric reports whether v is an Integer or a Real.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Integer, Real:
		return true
	default:
		return false
	}
}

// IsCallable reports whether v can be invoked.
func IsCallable(v Value) bool {
	switch v.(type) {
	case *Procedure, *Function, *Native:
		return true
	default:
		return false
	}
}
