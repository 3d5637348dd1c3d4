package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the program in native Rapira syntax to the writer. Nested
// blocks are indented by indent spaces per level; an indent of zero writes
// every statement flush left.
func (p *Program) Format(_ context.Context, w io.Writer, indent int) error {
	var f formatter

	f.block(p.Stmts, 0)

	for _, ln := range f.lines {
		pad := ""
		if indent > 0 {
			pad = strings.Repeat(" ", ln.depth*indent)
		}

		if _, err := fmt.Fprintln(w, pad+ln.text); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the program as JSON to the writer.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program as YAML to the writer.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, p.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatExpr returns the source form of an expression.
func FormatExpr(x Expr) string {
	return exprString(x, 0)
}

type line struct {
	text  string
	depth int
	// open lines introduce a block and need no separator after them.
	open bool
}

type formatter struct {
	lines []line
}

func (f *formatter) put(depth int, open bool, text string) {
	f.lines = append(f.lines, line{text: text, depth: depth, open: open})
}

func (f *formatter) block(stmts []Stmt, depth int) {
	for _, s := range stmts {
		f.stmt(s, depth)
	}
}

func (f *formatter) stmt(s Stmt, depth int) {
	switch x := s.(type) {
	case *Assign:
		f.put(depth, false, exprString(x.Target, 0)+" := "+exprString(x.Value, 0))
	case *CallStmt:
		f.put(depth, false, exprString(x.Call, 0))
	case *SubDecl:
		f.sub(x.Sub, depth)
	case *If:
		f.put(depth, true, "if "+exprString(x.Cond, 0)+" then")
		f.block(x.Then, depth+1)

		if x.Else != nil {
			f.put(depth, true, "else")
			f.block(x.Else, depth+1)
		}

		f.put(depth, false, "fi")
	case *Case:
		head := "case"
		if x.Subject != nil {
			head += " " + exprString(x.Subject, 0)
		}

		f.put(depth, true, head)

		for _, w := range x.Whens {
			f.put(depth, true, "when "+exprList(w.Values)+":")
			f.block(w.Body, depth+1)
		}

		if x.Else != nil {
			f.put(depth, true, "else")
			f.block(x.Else, depth+1)
		}

		f.put(depth, false, "esac")
	case *Loop:
		f.put(depth, true, loopHeader(x))
		f.block(x.Body, depth+1)
		f.put(depth, false, "od")
	case *Output:
		head := "output"
		if x.NoNewline {
			head += " nlf"
		}

		head += ":"
		if len(x.Items) > 0 {
			head += " " + exprList(x.Items)
		}

		f.put(depth, false, head)
	case *Input:
		head := "input"
		if x.Text {
			head += " text"
		}

		f.put(depth, false, head+": "+exprList(x.Targets))
	case *Exit:
		f.put(depth, false, "exit")
	case *Return:
		if x.Value == nil {
			f.put(depth, false, "return")
		} else {
			f.put(depth, false, "return "+exprString(x.Value, 0))
		}
	}
}

func (f *formatter) sub(s *Subroutine, depth int) {
	f.put(depth, true, subHeader(s))
	f.block(s.Body, depth+1)
	f.put(depth, false, "end")
}

// inline renders the formatter's lines on a single line.
func (f *formatter) inline() string {
	var sb strings.Builder

	for i, ln := range f.lines {
		if i > 0 {
			if f.lines[i-1].open {
				sb.WriteString(" ")
			} else {
				sb.WriteString("; ")
			}
		}

		sb.WriteString(ln.text)
	}

	return sb.String()
}

func subHeader(s *Subroutine) string {
	var sb strings.Builder

	sb.WriteString(s.Kind.Keyword())

	if s.Name != "" {
		sb.WriteString(" ")
		sb.WriteString(s.Name)
	}

	sb.WriteString("(")

	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		if p.InOut {
			sb.WriteString("=>")
		}

		sb.WriteString(p.Name)
	}

	sb.WriteString(")")

	if len(s.Extern) > 0 {
		sb.WriteString(" extern: ")
		sb.WriteString(strings.Join(s.Extern, ", "))
	}

	return sb.String()
}

func loopHeader(l *Loop) string {
	var part []string

	if f := l.For; f != nil {
		s := "for " + f.Var.Name
		if f.From != nil {
			s += " from " + exprString(f.From, 0)
		}

		if f.To != nil {
			s += " to " + exprString(f.To, 0)
		}

		if f.Step != nil {
			s += " step " + exprString(f.Step, 0)
		}

		part = append(part, s)
	}

	if l.Repeat != nil {
		part = append(part, "repeat "+exprString(l.Repeat, 0))
	}

	if l.While != nil {
		part = append(part, "while "+exprString(l.While, 0))
	}

	return strings.Join(append(part, "do"), " ")
}

func exprList(xs []Expr) string {
	part := make([]string, len(xs))
	for i, x := range xs {
		part[i] = exprString(x, 0)
	}

	return strings.Join(part, ", ")
}

const (
	unaryPrecedence   = 7
	postfixPrecedence = 9
)

// exprPrecedence returns the binding power of the top-level construct of x.
func exprPrecedence(x Expr) int {
	switch e := x.(type) {
	case *Binary:
		return e.Op.precedence()
	case *Unary:
		if e.Op == OpNot {
			return notPrecedence
		}

		return unaryPrecedence
	default:
		return postfixPrecedence
	}
}

// exprString renders x, parenthesized if it binds looser than min.
func exprString(x Expr, min int) string {
	var s string

	switch e := x.(type) {
	case *IntegerLit:
		s = strconv.FormatInt(e.Value, 10)
	case *RealLit:
		s = FormatReal(e.Value)
	case *TextLit:
		s = QuoteText(e.Value)
	case *LogicalLit:
		s = "no"
		if e.Value {
			s = "yes"
		}
	case *EmptyLit:
		s = "empty"
	case *Ident:
		s = e.Name
	case *Unary:
		switch e.Op {
		case OpNot:
			s = "not " + exprString(e.X, notPrecedence)
		default:
			s = e.Op.Symbol() + exprString(e.X, unaryPrecedence)
		}
	case *Binary:
		p := e.Op.precedence()
		if e.Op == OpPow {
			s = exprString(e.X, postfixPrecedence) + " ** " + exprString(e.Y, unaryPrecedence)
		} else {
			s = exprString(e.X, p) + " " + e.Op.Symbol() + " " + exprString(e.Y, p+1)
		}
	case *Index:
		s = exprString(e.X, postfixPrecedence) + "[" + exprString(e.Index, 0) + "]"
	case *Slice:
		lo, hi := "", ""
		if e.Lo != nil {
			lo = exprString(e.Lo, 0)
		}

		if e.Hi != nil {
			hi = exprString(e.Hi, 0)
		}

		s = exprString(e.X, postfixPrecedence) + "[" + lo + ":" + hi + "]"
	case *Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = exprString(a.X, 0)
			if a.InOut {
				args[i] = "=>" + args[i]
			}
		}

		s = exprString(e.Fn, postfixPrecedence) + "(" + strings.Join(args, ", ") + ")"
	case *SeqLit:
		if len(e.Elems) == 0 {
			s = "<* *>"
		} else {
			s = "<* " + exprList(e.Elems) + " *>"
		}
	case *SubLit:
		var f formatter

		f.sub(e.Sub, 0)
		s = f.inline()
	}

	if exprPrecedence(x) < min {
		return "(" + s + ")"
	}

	return s
}

// FormatReal renders a real number so that it reads back as a real: a
// whole value keeps a trailing ".0".
func FormatReal(f float64) string {
	format := byte('f')
	if a := math.Abs(f); a >= 1e21 || (a != 0 && a < 1e-6) {
		format = 'g'
	}

	s := strconv.FormatFloat(f, format, -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}

	return s + ".0"
}

// QuoteText renders s as a text literal, doubling embedded quotes.
func QuoteText(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
