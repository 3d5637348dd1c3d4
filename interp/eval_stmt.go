package interp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/value"
)

// execBlock runs stmts in order. It stops at the first error or at the
// first statement whose outcome is not FlowNormal, and returns that outcome.
func (in *Interpreter) execBlock(ctx context.Context, env *Environment, stmts []lang.Stmt) (Outcome, error) {
	for _, s := range stmts {
		out, err := in.exec(ctx, env, s)
		if err != nil || out.Flow != FlowNormal {
			return out, err
		}
	}

	return normal, nil
}

func (in *Interpreter) exec(ctx context.Context, env *Environment, s lang.Stmt) (Outcome, error) {
	switch x := s.(type) {
	case *lang.Assign:
		return normal, in.execAssign(ctx, env, x)

	case *lang.CallStmt:
		callee, err := in.eval(ctx, env, x.Call.Fn)
		if err != nil {
			return normal, err
		}

		_, err = in.invoke(ctx, callee, arguments(x.Call.Args), env, x.Call.Position)

		return normal, err

	case *lang.SubDecl:
		v, err := in.define(x.Sub)
		if err != nil {
			return normal, err
		}

		return normal, store(env.Get(x.Sub.Name), v, x.Sub.Position)

	case *lang.If:
		cond, err := in.condition(ctx, env, x.Cond)
		if err != nil {
			return normal, err
		}

		if cond {
			return in.execBlock(ctx, env, x.Then)
		}

		return in.execBlock(ctx, env, x.Else)

	case *lang.Case:
		return in.execCase(ctx, env, x)

	case *lang.Loop:
		return in.execLoop(ctx, env, x)

	case *lang.Output:
		return normal, in.execOutput(ctx, env, x)

	case *lang.Input:
		return normal, in.execInput(ctx, env, x)

	case *lang.Exit:
		return exited(x.Position), nil

	case *lang.Return:
		if x.Value == nil {
			return returned(nil, x.Position), nil
		}

		v, err := in.eval(ctx, env, x.Value)
		if err != nil {
			return normal, err
		}

		return returned(v, x.Position), nil

	default:
		return normal, ErrInvalidOperation.
			Wrap(fmt.Errorf("unsupported statement %T", s)).
			WithPosition(s.Pos())
	}
}

func (in *Interpreter) execAssign(ctx context.Context, env *Environment, a *lang.Assign) error {
	v, err := in.eval(ctx, env, a.Value)
	if err != nil {
		return err
	}

	target, err := in.resolve(ctx, env, a.Target)
	if err != nil {
		return err
	}

	return store(target, v, a.Position)
}

func store(target Variable, v value.Value, pos lang.Position) error {
	_, err := unwrap(target.Set(v), pos)

	return err
}

// condition evaluates the test of an if statement or a subject-less case
// arm, which must be Logical.
func (in *Interpreter) condition(ctx context.Context, env *Environment, e lang.Expr) (bool, error) {
	v, err := in.eval(ctx, env, e)
	if err != nil {
		return false, err
	}

	b, isLog := v.(value.Logical)
	if !isLog {
		return false, ErrInvalidOperation.
			With(slog.String("kind", v.Kind().String())).
			Wrap(fmt.Errorf("condition must be logical, got %s", v.Kind())).
			WithPosition(e.Pos())
	}

	return bool(b), nil
}

func (in *Interpreter) execCase(ctx context.Context, env *Environment, c *lang.Case) (Outcome, error) {
	var subject value.Value

	if c.Subject != nil {
		v, err := in.eval(ctx, env, c.Subject)
		if err != nil {
			return normal, err
		}

		subject = v
	}

	for _, w := range c.Whens {
		for _, e := range w.Values {
			var (
				match bool
				err   error
			)

			if subject == nil {
				match, err = in.condition(ctx, env, e)
			} else {
				var v value.Value

				v, err = in.eval(ctx, env, e)
				match = err == nil && value.Equal(subject, v)
			}

			if err != nil {
				return normal, err
			}

			if match {
				return in.execBlock(ctx, env, w.Body)
			}
		}
	}

	return in.execBlock(ctx, env, c.Else)
}

// controller builds the loop controller for a header. Clauses are set up
// in source order: for, then repeat, then while.
func (in *Interpreter) controller(ctx context.Context, env *Environment, l *lang.Loop) (Master, error) {
	var m Master

	if f := l.For; f != nil {
		var from, to, step value.Value

		for _, c := range []struct {
			dst *value.Value
			e   lang.Expr
		}{{&from, f.From}, {&to, f.To}, {&step, f.Step}} {
			if c.e == nil {
				continue
			}

			v, err := in.eval(ctx, env, c.e)
			if err != nil {
				return nil, err
			}

			*c.dst = v
		}

		fc, err := NewFor(env.Get(f.Var.Name), from, to, step)
		if err != nil {
			return nil, locate(err, f.Position)
		}

		m = append(m, fc)
	}

	if l.Repeat != nil {
		count, err := in.eval(ctx, env, l.Repeat)
		if err != nil {
			return nil, err
		}

		rc, err := NewRepeat(count)
		if err != nil {
			return nil, locate(err, l.Repeat.Pos())
		}

		m = append(m, rc)
	}

	if l.While != nil {
		cond := l.While

		m = append(m, NewWhile(func() (value.Value, error) {
			return in.eval(ctx, env, cond)
		}))
	}

	return m, nil
}

func (in *Interpreter) execLoop(ctx context.Context, env *Environment, l *lang.Loop) (Outcome, error) {
	m, err := in.controller(ctx, env, l)
	if err != nil {
		return normal, err
	}

	for pass := 0; ; pass++ {
		active, err := m.IsActive()
		if err != nil {
			return normal, locate(err, l.Position)
		}

		if !active {
			in.logger.TraceContext(ctx, "loop done", slog.Int("passes", pass))

			return normal, nil
		}

		out, err := in.execBlock(ctx, env, l.Body)
		if err != nil {
			return normal, err
		}

		switch out.Flow {
		case FlowExit:
			return normal, nil
		case FlowReturn:
			return out, nil
		}

		if err := m.Update(); err != nil {
			return normal, locate(err, l.Position)
		}
	}
}

func (in *Interpreter) execOutput(ctx context.Context, env *Environment, o *lang.Output) error {
	part := make([]string, len(o.Items))

	for i, e := range o.Items {
		v, err := in.eval(ctx, env, e)
		if err != nil {
			return err
		}

		part[i] = value.Format(v)
	}

	line := strings.Join(part, " ")
	if !o.NoNewline {
		line += "\n"
	}

	if _, err := io.WriteString(in.out, line); err != nil {
		return ErrInvalidOperation.Wrap(err).WithPosition(o.Position)
	}

	return nil
}

// execInput reads one line per target. Without "text" the line is parsed
// and evaluated as an expression in env.
func (in *Interpreter) execInput(ctx context.Context, env *Environment, s *lang.Input) error {
	for _, t := range s.Targets {
		target, err := in.resolve(ctx, env, t)
		if err != nil {
			return err
		}

		line, err := in.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return ErrInput.Wrap(err).WithPosition(t.Pos())
		}

		line = strings.TrimRight(line, "\r\n")

		var v value.Value = value.Text(line)

		if !s.Text {
			e, err := lang.ParseExpr(ctx, line, lang.WithLogger(in.logger))
			if err != nil {
				return ErrInput.Wrap(err).WithPosition(t.Pos())
			}

			if v, err = in.eval(ctx, env, e); err != nil {
				return ErrInput.Wrap(err).WithPosition(t.Pos())
			}
		}

		if err := store(target, v, t.Pos()); err != nil {
			return err
		}
	}

	return nil
}
