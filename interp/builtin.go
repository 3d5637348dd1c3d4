package interp

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/mattmikolay/rapture/value"
)

// Private singleton cache.
//
//nolint:gochecknoglobals
var nativeTable = sync.OnceValue(func() map[string]*value.Native {
	table := make(map[string]*value.Native)

	add := func(name string, impl func(value.Value) (value.Value, error)) {
		table[name] = &value.Native{
			Name:  name,
			Arity: 1,
			Impl: func(args []value.Value) (value.Value, error) {
				return impl(args[0])
			},
		}
	}

	add("abs", func(x value.Value) (value.Value, error) {
		switch n := x.(type) {
		case value.Integer:
			if n < 0 {
				return -n, nil
			}

			return n, nil
		case value.Real:
			return value.Real(math.Abs(float64(n))), nil
		default:
			return nil, illegalArgument("abs", x)
		}
	})

	add("sign", func(x value.Value) (value.Value, error) {
		if !value.IsNumeric(x) {
			return nil, illegalArgument("sign", x)
		}

		c, _ := value.Compare(x, value.Integer(0)).Value()

		return value.Integer(c), nil
	})

	add("entier", func(x value.Value) (value.Value, error) {
		switch n := x.(type) {
		case value.Integer:
			return n, nil
		case value.Real:
			return value.Integer(math.Floor(float64(n))), nil
		default:
			return nil, illegalArgument("entier", x)
		}
	})

	add("round", func(x value.Value) (value.Value, error) {
		switch n := x.(type) {
		case value.Integer:
			return n, nil
		case value.Real:
			return value.Integer(math.Round(float64(n))), nil
		default:
			return nil, illegalArgument("round", x)
		}
	})

	mathFn := func(name string, fn func(float64) float64, valid func(float64) bool, domain string) {
		add(name, func(x value.Value) (value.Value, error) {
			f, ok := toFloat(x)
			if !ok {
				return nil, illegalArgument(name, x)
			}

			if valid != nil && !valid(f) {
				return nil, ErrIllegalArgument.
					With(slog.String("callee", name), slog.String("value", x.String())).
					Wrap(fmt.Errorf("%s argument must be %s, got %s", name, domain, x))
			}

			return value.Real(fn(f)), nil
		})
	}

	mathFn("sqrt", math.Sqrt, func(f float64) bool { return f >= 0 }, "non-negative")
	mathFn("ln", math.Log, func(f float64) bool { return f > 0 }, "positive")
	mathFn("exp", math.Exp, nil, "")
	mathFn("sin", math.Sin, nil, "")
	mathFn("cos", math.Cos, nil, "")
	mathFn("tg", math.Tan, nil, "")
	mathFn("arcsin", math.Asin, func(f float64) bool { return f >= -1 && f <= 1 }, "in [-1, 1]")
	mathFn("arctg", math.Atan, nil, "")
	mathFn("rand", func(f float64) float64 { return rand.Float64() * f }, //nolint:gosec
		func(f float64) bool { return f > 0 }, "positive")

	add("int_rand", func(x value.Value) (value.Value, error) {
		n, isInt := x.(value.Integer)
		if !isInt || n <= 0 {
			return nil, ErrIllegalArgument.
				With(slog.String("callee", "int_rand"), slog.String("value", x.String())).
				Wrap(fmt.Errorf("int_rand argument must be a positive integer, got %s", x))
		}

		return value.Integer(1 + rand.Int64N(int64(n))), nil //nolint:gosec
	})

	is := func(name string, kinds ...value.Kind) {
		add(name, func(x value.Value) (value.Value, error) {
			return value.Logical(slices.Contains(kinds, x.Kind())), nil
		})
	}

	is("is_empty", value.KindEmpty)
	is("is_log", value.KindLogical)
	is("is_int", value.KindInteger)
	is("is_real", value.KindReal)
	is("is_text", value.KindText)
	is("is_seq", value.KindSequence)
	is("is_proc", value.KindProcedure)
	is("is_fun", value.KindFunction, value.KindNative)

	return table
})

// makeBuiltins returns a copy of the native function table. The copy may be
// extended or trimmed without affecting other interpreters.
func makeBuiltins() map[string]*value.Native {
	return maps.Clone(nativeTable())
}

func toFloat(x value.Value) (float64, bool) {
	switch n := x.(type) {
	case value.Integer:
		return float64(n), true
	case value.Real:
		return float64(n), true
	default:
		return 0, false
	}
}

func illegalArgument(name string, x value.Value) error {
	return ErrIllegalArgument.
		With(slog.String("callee", name), slog.String("kind", x.Kind().String())).
		Wrap(fmt.Errorf("%s expects a number, got %s", name, x.Kind()))
}
