package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/log"
	"github.com/mattmikolay/rapture/value"
)

// defines evaluates each NAME=EXPR definition and returns the resulting
// values keyed by name.
//
// EXPR is an expr-lang expression evaluated on the host before the program
// starts. It may call env(KEY) to read the process environment and may refer
// to names defined earlier in the list:
//
//	--define n=10 --define 'greeting="hi " + env("USER")' --define 'xs=[1, n]'
//
// The result must convert to a Rapira value: nil, bool, integer, float,
// string, or a list of those.
func defines(ctx context.Context, defs []string) (map[string]value.Value, error) {
	if len(defs) == 0 {
		return nil, nil
	}

	env := map[string]any{"env": os.Getenv}
	vars := make(map[string]value.Value, len(defs))

	for _, def := range defs {
		name, src, ok := strings.Cut(def, "=")
		name = strings.TrimSpace(name)

		if !ok || !isIdent(ctx, name) {
			return nil, ErrDefine.
				With(slog.String("definition", def)).
				Wrap(errExpectedNameExpr)
		}

		program, err := expr.Compile(src, expr.Env(env))
		if err != nil {
			return nil, ErrDefine.
				With(slog.String("definition", def)).
				Wrap(err)
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return nil, ErrDefine.
				With(slog.String("definition", def)).
				Wrap(err)
		}

		v, err := value.FromNative(result)
		if err != nil {
			return nil, ErrDefine.
				With(slog.String("definition", def)).
				Wrap(err)
		}

		log.TraceContext(ctx, "define",
			slog.String("name", name),
			slog.String("value", v.String()))

		env[name] = result
		vars[name] = v
	}

	return vars, nil
}

var errExpectedNameExpr = NewError("expected NAME=EXPR")

// isIdent reports whether s is a Rapira identifier that is not a keyword.
func isIdent(ctx context.Context, s string) bool {
	x, err := lang.ParseExpr(ctx, s)
	if err != nil {
		return false
	}

	_, ok := x.(*lang.Ident)

	return ok
}
