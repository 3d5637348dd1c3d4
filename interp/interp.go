package interp

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/log"
	"github.com/mattmikolay/rapture/value"
)

// Interpreter executes Rapira programs. The global environment persists
// across calls to [Interpreter.Run] and [Interpreter.Exec], so an
// interactive session can build on earlier input.
//
// An Interpreter is not safe for concurrent use.
type Interpreter struct {
	globals  *Environment
	builtins map[string]*value.Native
	in       *bufio.Reader
	out      io.Writer
	logger   log.Logger
	depth    int
}

// Option configures an [Interpreter].
type Option func(*Interpreter)

// WithInput sets the reader used by input statements. The default is
// [os.Stdin].
func WithInput(r io.Reader) Option {
	return func(in *Interpreter) { in.in = bufio.NewReader(r) }
}

// WithOutput sets the writer used by output statements. The default is
// [os.Stdout].
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// WithGlobals binds each name in vars to a new variable in the global
// environment.
func WithGlobals(vars map[string]value.Value) Option {
	return func(in *Interpreter) {
		for name, v := range vars {
			in.globals.Set(name, NewSimple(v))
		}
	}
}

// WithNative adds a native function to the builtins, replacing any builtin
// of the same name.
func WithNative(n *value.Native) Option {
	return func(in *Interpreter) { in.builtins[n.Name] = n }
}

// New returns an Interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		globals:  NewEnvironment(),
		builtins: makeBuiltins(),
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Run executes a program in the global environment. It stops at the first
// error. A return or exit that is not caught by a subroutine or loop is an
// error located at the offending statement.
func (in *Interpreter) Run(ctx context.Context, prog *lang.Program) error {
	in.logger.DebugContext(ctx, "run",
		slog.Int("statement_count", len(prog.Stmts)))

	return in.Exec(ctx, prog.Stmts)
}

// Exec executes statements in the global environment.
func (in *Interpreter) Exec(ctx context.Context, stmts []lang.Stmt) error {
	in.depth = 0

	out, err := in.execBlock(ctx, in.globals, stmts)
	if err != nil {
		in.logger.TraceContext(ctx, "exec failed", slog.Any("error", err))

		return err
	}

	return escaped(out)
}

// Eval evaluates an expression in the global environment.
func (in *Interpreter) Eval(ctx context.Context, e lang.Expr) (value.Value, error) {
	return in.eval(ctx, in.globals, e)
}

// Call invokes a procedure, function or native function with values as in
// arguments. A procedure call returns a nil value.
func (in *Interpreter) Call(ctx context.Context, fn value.Value, args ...value.Value) (value.Value, error) {
	actual := make([]Argument, len(args))
	for i, a := range args {
		actual[i] = valueArgument{v: a}
	}

	return in.invoke(ctx, fn, actual, in.globals, lang.Position{})
}

// Globals returns the global environment.
func (in *Interpreter) Globals() *Environment { return in.globals }

// Builtins returns the names of the native functions in sorted order.
func (in *Interpreter) Builtins() []string {
	return slices.Sorted(maps.Keys(in.builtins))
}

// Signature returns the parameter listing of the callable bound to name,
// such as "proc swap(=>a, =>b)" or "fun sqrt(x)". A global variable shadows
// a builtin of the same name.
func (in *Interpreter) Signature(name string) (string, bool) {
	if v, ok := in.globals.Lookup(name); ok {
		cur, _ := v.Get().Value()

		var (
			sub *value.Subroutine
			kw  string
		)

		switch fn := cur.(type) {
		case *value.Procedure:
			sub, kw = fn.Subroutine, "proc"
		case *value.Function:
			sub, kw = fn.Subroutine, "fun"
		case *value.Native:
			return nativeSignature(name, fn), true
		default:
			return "", false
		}

		named := *sub
		named.Name = name

		return kw + " " + named.Signature(), true
	}

	if n, ok := in.builtins[name]; ok {
		return nativeSignature(name, n), true
	}

	return "", false
}

func nativeSignature(name string, n *value.Native) string {
	param := make([]string, n.Arity)
	for i := range param {
		param[i] = string(rune('x' + i))
	}

	return "fun " + name + "(" + strings.Join(param, ", ") + ")"
}
