package repl

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/mattmikolay/rapture/interp"
	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/log"
	"github.com/mattmikolay/rapture/value"
)

// Config describes an interactive session.
type Config struct {
	// Globals are bound before any input is read.
	Globals map[string]value.Value
	// Preload is a program run before the first prompt. PreloadName names it
	// in messages.
	Preload     string
	PreloadName string
	// HistoryDir holds the history file. History is not saved if it is empty.
	HistoryDir string
	// Report renders an error with source context.
	Report func(w io.Writer, err error, source string)
	Logger log.Logger
}

// Session evaluates interactive input against one interpreter, so that
// globals defined by earlier input stay visible to later input.
type Session struct {
	in     *interp.Interpreter
	logger log.Logger
	report func(w io.Writer, err error, source string)
}

// NewSession returns a session whose programs read input statements from r
// and write output statements to w.
func NewSession(cfg Config, r io.Reader, w io.Writer) *Session {
	return &Session{
		in: interp.New(
			interp.WithInput(r),
			interp.WithOutput(w),
			interp.WithLogger(cfg.Logger),
			interp.WithGlobals(cfg.Globals),
		),
		logger: cfg.Logger,
		report: cfg.Report,
	}
}

// Load runs a complete program in the session.
func (s *Session) Load(ctx context.Context, src string) error {
	prog, err := lang.ParseString(ctx, src, lang.WithLogger(s.logger))
	if err != nil {
		return err
	}

	return s.in.Run(ctx, prog)
}

// Eval executes one line of input. Statements run in the global environment
// and produce no result, except that a lone call of a function yields the
// function's value. Input that is not a statement but parses as an
// expression is evaluated, and its value is returned in literal form.
func (s *Session) Eval(ctx context.Context, input string) (string, error) {
	stmts, err := lang.ParseLine(ctx, input, lang.WithLogger(s.logger))
	if err == nil {
		call, isFn := s.functionCall(ctx, stmts)
		if !isFn {
			return "", s.in.Exec(ctx, stmts)
		}

		return s.eval(ctx, call)
	}

	x, xerr := lang.ParseExpr(ctx, input, lang.WithLogger(s.logger))
	if xerr != nil {
		return "", err
	}

	return s.eval(ctx, x)
}

// functionCall returns the call when stmts is a single call statement whose
// callee is a function. Procedure calls stay statements.
func (s *Session) functionCall(ctx context.Context, stmts []lang.Stmt) (*lang.Call, bool) {
	if len(stmts) != 1 {
		return nil, false
	}

	cs, isCall := stmts[0].(*lang.CallStmt)
	if !isCall {
		return nil, false
	}

	if _, isName := cs.Call.Fn.(*lang.Ident); !isName {
		return nil, false
	}

	fn, err := s.in.Eval(ctx, cs.Call.Fn)
	if err != nil {
		return nil, false
	}

	switch fn.(type) {
	case *value.Function, *value.Native:
		return cs.Call, true
	}

	return nil, false
}

func (s *Session) eval(ctx context.Context, x lang.Expr) (string, error) {
	v, err := s.in.Eval(ctx, x)
	if err != nil {
		return "", err
	}

	s.logger.TraceContext(ctx, "repl eval result",
		slog.String("kind", v.Kind().String()))

	return v.String(), nil
}

// Report writes err to w with the offending line of src.
func (s *Session) Report(w io.Writer, err error, src string) {
	if s.report != nil {
		s.report(w, err, src)

		return
	}

	io.WriteString(w, "error: "+err.Error()+"\n") //nolint:errcheck
}

// binding is a global name and its current value in literal form.
type binding struct {
	name  string
	value string
}

// bindings returns the global variables in name order.
func (s *Session) bindings() []binding {
	env := s.in.Globals()
	names := env.Names()
	out := make([]binding, 0, len(names))

	for _, name := range names {
		v, _ := env.Lookup(name)

		cur, ok := v.Get().Value()
		if !ok {
			continue
		}

		out = append(out, binding{name: name, value: cur.String()})
	}

	return out
}

// candidates returns every name that may complete a word: keywords,
// builtins and globals.
func (s *Session) candidates() []string {
	names := slices.Concat(lang.Keywords(), s.in.Builtins(), s.in.Globals().Names())
	slices.Sort(names)

	return slices.Compact(names)
}

// signature returns the parameter listing of the callable bound to name and
// the individual parameters, such as "proc swap(=>a, =>b)" and
// ["=>a", "=>b"].
func (s *Session) signature(name string) (string, []string) {
	sig, ok := s.in.Signature(name)
	if !ok {
		return "", nil
	}

	open := strings.IndexByte(sig, '(')
	if open < 0 || !strings.HasSuffix(sig, ")") {
		return sig, nil
	}

	list := sig[open+1 : len(sig)-1]
	if list == "" {
		return sig, nil
	}

	return sig, strings.Split(list, ", ")
}
