package interp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/value"
)

// eval computes the value of an expression in env.
func (in *Interpreter) eval(ctx context.Context, env *Environment, e lang.Expr) (value.Value, error) {
	switch x := e.(type) {
	case *lang.IntegerLit:
		return value.Integer(x.Value), nil

	case *lang.RealLit:
		return value.Real(x.Value), nil

	case *lang.TextLit:
		return value.Text(x.Value), nil

	case *lang.LogicalLit:
		return value.Logical(x.Value), nil

	case *lang.EmptyLit:
		return value.Empty{}, nil

	case *lang.Ident:
		return in.lookup(env, x)

	case *lang.Unary:
		a, err := in.eval(ctx, env, x.X)
		if err != nil {
			return nil, err
		}

		return unwrap(value.Unary(x.Op, a), x.Position)

	case *lang.Binary:
		a, err := in.eval(ctx, env, x.X)
		if err != nil {
			return nil, err
		}

		b, err := in.eval(ctx, env, x.Y)
		if err != nil {
			return nil, err
		}

		return unwrap(value.Binary(x.Op, a, b), x.Position)

	case *lang.Index:
		a, err := in.eval(ctx, env, x.X)
		if err != nil {
			return nil, err
		}

		i, err := in.eval(ctx, env, x.Index)
		if err != nil {
			return nil, err
		}

		return unwrap(value.ElementAt(a, i), x.Position)

	case *lang.Slice:
		a, err := in.eval(ctx, env, x.X)
		if err != nil {
			return nil, err
		}

		lo, hi, err := in.bounds(ctx, env, x)
		if err != nil {
			return nil, err
		}

		return unwrap(value.Slice(a, lo, hi), x.Position)

	case *lang.Call:
		return in.evalCall(ctx, env, x)

	case *lang.SeqLit:
		seq := make(value.Sequence, len(x.Elems))

		for i, el := range x.Elems {
			v, err := in.eval(ctx, env, el)
			if err != nil {
				return nil, err
			}

			seq[i] = v
		}

		return seq, nil

	case *lang.SubLit:
		return in.define(x.Sub)

	default:
		return nil, ErrInvalidOperation.
			Wrap(fmt.Errorf("unsupported expression %T", e)).
			WithPosition(e.Pos())
	}
}

// lookup reads a name: a bound variable first, then a builtin. Anything
// else is Empty.
func (in *Interpreter) lookup(env *Environment, id *lang.Ident) (value.Value, error) {
	if v, ok := env.Lookup(id.Name); ok {
		return unwrap(v.Get(), id.Position)
	}

	if n, ok := in.builtins[id.Name]; ok {
		return n, nil
	}

	return value.Empty{}, nil
}

// evalCall invokes a function in expression position.
func (in *Interpreter) evalCall(ctx context.Context, env *Environment, call *lang.Call) (value.Value, error) {
	callee, err := in.eval(ctx, env, call.Fn)
	if err != nil {
		return nil, err
	}

	if p, isProc := callee.(*value.Procedure); isProc {
		return nil, ErrIllegalProcedureInvocation.
			With(slog.String("callee", p.String())).
			WithPosition(call.Position)
	}

	return in.invoke(ctx, callee, arguments(call.Args), env, call.Position)
}

func (in *Interpreter) bounds(ctx context.Context, env *Environment, s *lang.Slice) (lo, hi value.Value, err error) {
	if s.Lo != nil {
		if lo, err = in.eval(ctx, env, s.Lo); err != nil {
			return nil, nil, err
		}
	}

	if s.Hi != nil {
		if hi, err = in.eval(ctx, env, s.Hi); err != nil {
			return nil, nil, err
		}
	}

	return lo, hi, nil
}

// resolve finds the variable an assignment target or in-out argument
// refers to. Selectors wrap the variable of their operand, so x[i][j]
// becomes Indexed(Indexed(x, i), j).
func (in *Interpreter) resolve(ctx context.Context, env *Environment, e lang.Expr) (Variable, error) {
	switch x := e.(type) {
	case *lang.Ident:
		return env.Get(x.Name), nil

	case *lang.Index:
		parent, err := in.resolve(ctx, env, x.X)
		if err != nil {
			return nil, err
		}

		i, err := in.eval(ctx, env, x.Index)
		if err != nil {
			return nil, err
		}

		n, isInt := i.(value.Integer)
		if !isInt {
			return nil, nonIntegerIndex(i, x.Index.Pos())
		}

		return NewIndexed(parent, int64(n)), nil

	case *lang.Slice:
		parent, err := in.resolve(ctx, env, x.X)
		if err != nil {
			return nil, err
		}

		lo, hi, err := in.bounds(ctx, env, x)
		if err != nil {
			return nil, err
		}

		for _, b := range []struct {
			v    value.Value
			node lang.Node
		}{{lo, x.Lo}, {hi, x.Hi}} {
			if _, isInt := b.v.(value.Integer); b.v != nil && !isInt {
				return nil, nonIntegerIndex(b.v, b.node.Pos())
			}
		}

		return NewSlice(parent, lo, hi), nil

	default:
		return nil, ErrInvalidOperation.
			Wrap(fmt.Errorf("%T is not a variable reference", e)).
			WithPosition(e.Pos())
	}
}

func nonIntegerIndex(v value.Value, pos lang.Position) error {
	return ErrNonIntegerIndex.
		With(slog.String("kind", v.Kind().String())).
		Wrap(fmt.Errorf("got %s", v)).
		WithPosition(pos)
}
