package interp

import (
	"context"

	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/value"
)

// Argument is a call-site actual. Evaluate runs against the caller's
// environment and yields the variable bound to the matching parameter in the
// callee's environment.
type Argument interface {
	Mode() value.ParamMode
	Pos() lang.Position
	Evaluate(ctx context.Context, in *Interpreter, env *Environment) (Variable, error)
}

// InArgument passes the value of an expression. The callee receives a new
// variable, so assignments to the parameter are not seen by the caller.
type InArgument struct {
	Expr lang.Expr
}

// Mode implements [Argument].
func (InArgument) Mode() value.ParamMode { return value.In }

// Pos implements [Argument].
func (a InArgument) Pos() lang.Position { return a.Expr.Pos() }

// Evaluate implements [Argument].
func (a InArgument) Evaluate(ctx context.Context, in *Interpreter, env *Environment) (Variable, error) {
	v, err := in.eval(ctx, env, a.Expr)
	if err != nil {
		return nil, err
	}

	return NewSimple(v), nil
}

// InOutArgument passes an existing variable. The callee shares it with the
// caller, so assignments to the parameter are seen after the call returns.
type InOutArgument struct {
	Ref lang.Expr
}

// Mode implements [Argument].
func (InOutArgument) Mode() value.ParamMode { return value.InOut }

// Pos implements [Argument].
func (a InOutArgument) Pos() lang.Position { return a.Ref.Pos() }

// Evaluate implements [Argument].
func (a InOutArgument) Evaluate(ctx context.Context, in *Interpreter, env *Environment) (Variable, error) {
	return in.resolve(ctx, env, a.Ref)
}

// valueArgument passes an already computed value. It lets Go code call
// subroutines through [Interpreter.Call].
type valueArgument struct {
	v value.Value
}

func (valueArgument) Mode() value.ParamMode { return value.In }

func (valueArgument) Pos() lang.Position { return lang.Position{} }

func (a valueArgument) Evaluate(context.Context, *Interpreter, *Environment) (Variable, error) {
	return NewSimple(a.v), nil
}

func arguments(args []*lang.Arg) []Argument {
	out := make([]Argument, len(args))

	for i, a := range args {
		if a.InOut {
			out[i] = InOutArgument{Ref: a.X}
		} else {
			out[i] = InArgument{Expr: a.X}
		}
	}

	return out
}
