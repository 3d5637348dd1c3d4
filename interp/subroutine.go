package interp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/value"
)

// define turns a procedure or function definition into a callable value.
// Parameter and extern names may not repeat or name a builtin.
func (in *Interpreter) define(sub *lang.Subroutine) (value.Value, error) {
	seen := make(map[string]bool, len(sub.Params)+len(sub.Extern))

	check := func(name string, pos lang.Position) error {
		switch {
		case in.builtins[name] != nil:
			return ErrIllegalParamName.
				With(slog.String("name", name)).
				Wrap(fmt.Errorf("%q is a builtin", name)).
				WithPosition(pos)
		case seen[name]:
			return ErrIllegalParamName.
				With(slog.String("name", name)).
				Wrap(fmt.Errorf("%q declared more than once", name)).
				WithPosition(pos)
		}

		seen[name] = true

		return nil
	}

	def := &value.Subroutine{
		Name:   sub.Name,
		Params: make([]value.Parameter, len(sub.Params)),
		Extern: sub.Extern,
		Body:   sub.Body,
		Pos:    sub.Position,
	}

	for i, p := range sub.Params {
		if err := check(p.Name, p.Position); err != nil {
			return nil, err
		}

		def.Params[i] = value.Parameter{Name: p.Name, Mode: value.In}
		if p.InOut {
			def.Params[i].Mode = value.InOut
		}
	}

	for _, name := range sub.Extern {
		if err := check(name, sub.Position); err != nil {
			return nil, err
		}
	}

	if sub.Kind == lang.SubFun {
		return &value.Function{Subroutine: def}, nil
	}

	return &value.Procedure{Subroutine: def}, nil
}

// invoke calls callee with args evaluated in the caller's environment. A
// procedure call yields a nil value.
func (in *Interpreter) invoke(
	ctx context.Context,
	callee value.Value,
	args []Argument,
	caller *Environment,
	pos lang.Position,
) (value.Value, error) {
	switch fn := callee.(type) {
	case *value.Procedure:
		return in.call(ctx, fn, fn.Subroutine, false, args, caller, pos)
	case *value.Function:
		return in.call(ctx, fn, fn.Subroutine, true, args, caller, pos)
	case *value.Native:
		return in.callNative(ctx, fn, args, caller, pos)
	default:
		return nil, ErrIllegalInvocation.
			With(slog.String("value", kindOf(callee).String())).
			Wrap(fmt.Errorf("cannot call %s", kindOf(callee))).
			WithPosition(pos)
	}
}

func (in *Interpreter) call(
	ctx context.Context,
	self value.Value,
	sub *value.Subroutine,
	isFun bool,
	args []Argument,
	caller *Environment,
	pos lang.Position,
) (value.Value, error) {
	if len(args) != len(sub.Params) {
		return nil, argCountError(self.String(), len(sub.Params), len(args), pos)
	}

	for i, p := range sub.Params {
		arg := args[i]

		switch {
		case isFun && arg.Mode() != value.In:
			return nil, ErrIllegalArgument.
				With(slog.String("param", p.Name)).
				Wrap(fmt.Errorf("function argument %q cannot be passed by reference", p.Name)).
				WithPosition(argPos(arg, pos))
		case arg.Mode() != p.Mode:
			return nil, ErrIllegalArgument.
				With(slog.String("param", p.Name)).
				Wrap(fmt.Errorf("parameter %q expects %s argument, got %s", p.Name, p.Mode, arg.Mode())).
				WithPosition(argPos(arg, pos))
		}
	}

	env := NewEnvironment()

	for i, p := range sub.Params {
		v, err := args[i].Evaluate(ctx, in, caller)
		if err != nil {
			return nil, err
		}

		env.Set(p.Name, v)
	}

	if sub.Name != "" {
		env.Set(sub.Name, NewReadOnly(self))
	}

	for _, name := range sub.Extern {
		env.Set(name, caller.Get(name))
	}

	in.depth++
	defer func() { in.depth-- }()

	in.logger.TraceContext(ctx, "invoke",
		slog.String("callee", self.String()),
		slog.Int("args", len(args)),
		slog.Int("depth", in.depth))

	out, err := in.execBlock(ctx, env, sub.Body)
	if err != nil {
		return nil, err
	}

	switch out.Flow {
	case FlowExit:
		return nil, ErrIllegalExit.WithPosition(out.Pos)
	case FlowReturn:
		if isFun {
			if out.Value == nil {
				return nil, ErrMissingReturnValue.WithPosition(out.Pos)
			}

			return out.Value, nil
		}

		if out.Value != nil && out.Value.Kind() != value.KindEmpty {
			return nil, ErrIllegalReturnValue.
				With(slog.String("value", out.Value.String())).
				WithPosition(out.Pos)
		}

		return nil, nil
	default:
		if isFun {
			return nil, ErrMissingReturnValue.
				With(slog.String("callee", self.String())).
				WithPosition(pos)
		}

		return nil, nil
	}
}

func (in *Interpreter) callNative(
	ctx context.Context,
	fn *value.Native,
	args []Argument,
	caller *Environment,
	pos lang.Position,
) (value.Value, error) {
	if len(args) != fn.Arity {
		return nil, argCountError(fn.Name, fn.Arity, len(args), pos)
	}

	vals := make([]value.Value, len(args))

	for i, arg := range args {
		if arg.Mode() != value.In {
			return nil, ErrIllegalArgument.
				With(slog.String("callee", fn.Name)).
				Wrap(fmt.Errorf("%s arguments cannot be passed by reference", fn.Name)).
				WithPosition(argPos(arg, pos))
		}

		v, err := arg.Evaluate(ctx, in, caller)
		if err != nil {
			return nil, err
		}

		vals[i], _ = v.Get().Value()
	}

	in.logger.TraceContext(ctx, "invoke native",
		slog.String("callee", fn.Name),
		slog.Int("args", len(args)))

	v, err := fn.Impl(vals)
	if err != nil {
		return nil, locate(err, pos)
	}

	return v, nil
}

func argCountError(callee string, expected, actual int, pos lang.Position) error {
	return ErrIncorrectArgumentCount.
		With(
			slog.String("callee", callee),
			slog.Int("expected", expected),
			slog.Int("actual", actual),
		).
		Wrap(fmt.Errorf("%s expects %d, got %d", callee, expected, actual)).
		WithPosition(pos)
}

func argPos(arg Argument, fallback lang.Position) lang.Position {
	if p := arg.Pos(); p.IsValid() {
		return p
	}

	return fallback
}
