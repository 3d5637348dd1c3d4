package lang

import (
	"io"
	"strconv"
	"strings"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() Position
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed source unit.
type Program struct {
	Source string
	Stmts  []Stmt
}

// SubKind distinguishes procedures from functions.
type SubKind int

const (
	SubProc SubKind = iota
	SubFun
)

// Keyword returns the introducing keyword of the subroutine kind.
func (k SubKind) Keyword() string {
	if k == SubFun {
		return "fun"
	}

	return "proc"
}

// Param is a declared subroutine parameter. InOut parameters are written
// with a leading "=>".
type Param struct {
	Position

	Name  string
	InOut bool
}

// Subroutine is a procedure or function definition, named or anonymous.
type Subroutine struct {
	Position

	Name   string
	Params []*Param
	Extern []string
	Body   []Stmt
	Kind   SubKind
}

type (
	// IntegerLit is an integer literal.
	IntegerLit struct {
		Position

		Value int64
	}

	// RealLit is a real literal.
	RealLit struct {
		Position

		Value float64
	}

	// TextLit is a text literal with quotes and escapes removed.
	TextLit struct {
		Position

		Value string
	}

	// LogicalLit is yes or no.
	LogicalLit struct {
		Position

		Value bool
	}

	// EmptyLit is the empty literal.
	EmptyLit struct {
		Position
	}

	// Ident is a variable reference.
	Ident struct {
		Position

		Name string
	}

	// Unary is a prefix operation: -x, #x or not x.
	Unary struct {
		Position

		X  Expr
		Op Operator
	}

	// Binary is an infix operation.
	Binary struct {
		Position

		X  Expr
		Y  Expr
		Op Operator
	}

	// Index selects one element: X[Index].
	Index struct {
		Position

		X     Expr
		Index Expr
	}

	// Slice selects a range: X[Lo:Hi]. Either bound may be nil.
	Slice struct {
		Position

		X  Expr
		Lo Expr
		Hi Expr
	}

	// Arg is a call-site argument. InOut arguments are written "=>ref".
	Arg struct {
		Position

		X     Expr
		InOut bool
	}

	// Call invokes Fn with Args.
	Call struct {
		Position

		Fn   Expr
		Args []*Arg
	}

	// SeqLit is a sequence literal: <* a, b *>.
	SeqLit struct {
		Position

		Elems []Expr
	}

	// SubLit is an anonymous procedure or function literal.
	SubLit struct {
		Sub *Subroutine
	}
)

// Pos implements [Node].
func (s *SubLit) Pos() Position { return s.Sub.Position }

func (*IntegerLit) exprNode() {}
func (*RealLit) exprNode()    {}
func (*TextLit) exprNode()    {}
func (*LogicalLit) exprNode() {}
func (*EmptyLit) exprNode()   {}
func (*Ident) exprNode()      {}
func (*Unary) exprNode()      {}
func (*Binary) exprNode()     {}
func (*Index) exprNode()      {}
func (*Slice) exprNode()      {}
func (*Call) exprNode()       {}
func (*SeqLit) exprNode()     {}
func (*SubLit) exprNode()     {}

type (
	// Assign stores Value into Target.
	Assign struct {
		Position

		Target Expr
		Value  Expr
	}

	// CallStmt invokes a subroutine and discards any result.
	CallStmt struct {
		Call *Call
	}

	// SubDecl binds a named subroutine in the current environment.
	SubDecl struct {
		Sub *Subroutine
	}

	// If is a two-way conditional.
	If struct {
		Position

		Cond Expr
		Then []Stmt
		Else []Stmt
	}

	// When is one arm of a case statement.
	When struct {
		Position

		Values []Expr
		Body   []Stmt
	}

	// Case selects the first arm whose value matches Subject. Without a
	// Subject each arm value is a condition.
	Case struct {
		Position

		Subject Expr
		Whens   []*When
		Else    []Stmt
	}

	// ForClause is the "for v from a to b step c" part of a loop header.
	ForClause struct {
		Position

		Var  *Ident
		From Expr
		To   Expr
		Step Expr
	}

	// Loop is a do ... od loop with optional for, repeat and while clauses.
	Loop struct {
		Position

		For    *ForClause
		Repeat Expr
		While  Expr
		Body   []Stmt
	}

	// Output writes formatted values.
	Output struct {
		Position

		Items     []Expr
		NoNewline bool
	}

	// Input reads one line per target.
	Input struct {
		Position

		Targets []Expr
		Text    bool
	}

	// Exit leaves the innermost loop.
	Exit struct {
		Position
	}

	// Return leaves the current subroutine.
	Return struct {
		Position

		Value Expr
	}
)

// Pos implements [Node].
func (s *CallStmt) Pos() Position { return s.Call.Position }

// Pos implements [Node].
func (s *SubDecl) Pos() Position { return s.Sub.Position }

func (*Assign) stmtNode()   {}
func (*CallStmt) stmtNode() {}
func (*SubDecl) stmtNode()  {}
func (*If) stmtNode()       {}
func (*Case) stmtNode()     {}
func (*Loop) stmtNode()     {}
func (*Output) stmtNode()   {}
func (*Input) stmtNode()    {}
func (*Exit) stmtNode()     {}
func (*Return) stmtNode()   {}

// IsReference reports whether e may appear as an assignment target or
// in-out argument.
func IsReference(e Expr) bool {
	switch x := e.(type) {
	case *Ident:
		return true
	case *Index:
		return IsReference(x.X)
	case *Slice:
		return IsReference(x.X)
	default:
		return false
	}
}

func writer(w io.Writer) func(eol string, item ...string) {
	return func(eol string, item ...string) {
		_, err := io.WriteString(w, strings.Join(item, ": ")+eol)
		if err != nil {
			panic(err)
		}
	}
}

// Print writes an indented tree dump of the program.
func (p *Program) Print(w io.Writer) {
	for _, s := range p.Stmts {
		printNode(w, s, 0)
	}
}

func printNode(w io.Writer, n Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	put := writer(w)
	at := "@" + n.Pos().String()

	block := func(label string, stmts []Stmt) {
		if stmts == nil {
			return
		}

		put("\n", prefix+"  "+label)

		for _, s := range stmts {
			printNode(w, s, indent+2)
		}
	}

	child := func(label string, e Node) {
		if e == nil {
			return
		}

		put("\n", prefix+"  "+label)
		printNode(w, e, indent+2)
	}

	switch x := n.(type) {
	case *IntegerLit:
		put("\n", prefix+"Integer", strconv.FormatInt(x.Value, 10), at)
	case *RealLit:
		put("\n", prefix+"Real", strconv.FormatFloat(x.Value, 'g', -1, 64), at)
	case *TextLit:
		put("\n", prefix+"Text", strconv.Quote(x.Value), at)
	case *LogicalLit:
		put("\n", prefix+"Logical", strconv.FormatBool(x.Value), at)
	case *EmptyLit:
		put("\n", prefix+"Empty", at)
	case *Ident:
		put("\n", prefix+"Ident", x.Name, at)
	case *Unary:
		put("\n", prefix+"Unary", x.Op.Symbol(), at)
		printNode(w, x.X, indent+1)
	case *Binary:
		put("\n", prefix+"Binary", x.Op.Symbol(), at)
		printNode(w, x.X, indent+1)
		printNode(w, x.Y, indent+1)
	case *Index:
		put("\n", prefix+"Index", at)
		printNode(w, x.X, indent+1)
		child("At", x.Index)
	case *Slice:
		put("\n", prefix+"Slice", at)
		printNode(w, x.X, indent+1)
		child("From", x.Lo)
		child("To", x.Hi)
	case *Call:
		put("\n", prefix+"Call", at)
		printNode(w, x.Fn, indent+1)

		for _, a := range x.Args {
			label := "In"
			if a.InOut {
				label = "InOut"
			}

			child(label, a.X)
		}
	case *SeqLit:
		put("\n", prefix+"Sequence", strconv.Itoa(len(x.Elems)), at)

		for _, e := range x.Elems {
			printNode(w, e, indent+1)
		}
	case *SubLit:
		printSub(w, x.Sub, indent)
	case *SubDecl:
		printSub(w, x.Sub, indent)
	case *Assign:
		put("\n", prefix+"Assign", at)
		printNode(w, x.Target, indent+1)
		printNode(w, x.Value, indent+1)
	case *CallStmt:
		printNode(w, x.Call, indent)
	case *If:
		put("\n", prefix+"If", at)
		printNode(w, x.Cond, indent+1)
		block("Then", x.Then)
		block("Else", x.Else)
	case *Case:
		put("\n", prefix+"Case", at)

		if x.Subject != nil {
			printNode(w, x.Subject, indent+1)
		}

		for _, wh := range x.Whens {
			put("\n", prefix+"  When", "@"+wh.Pos().String())

			for _, v := range wh.Values {
				printNode(w, v, indent+2)
			}

			block("Do", wh.Body)
		}

		block("Else", x.Else)
	case *Loop:
		put("\n", prefix+"Loop", at)

		if f := x.For; f != nil {
			put("\n", prefix+"  For", f.Var.Name)
			child("From", f.From)
			child("To", f.To)
			child("Step", f.Step)
		}

		child("Repeat", x.Repeat)
		child("While", x.While)
		block("Do", x.Body)
	case *Output:
		put("\n", prefix+"Output", strconv.FormatBool(!x.NoNewline), at)

		for _, e := range x.Items {
			printNode(w, e, indent+1)
		}
	case *Input:
		put("\n", prefix+"Input", strconv.FormatBool(x.Text), at)

		for _, e := range x.Targets {
			printNode(w, e, indent+1)
		}
	case *Exit:
		put("\n", prefix+"Exit", at)
	case *Return:
		put("\n", prefix+"Return", at)

		if x.Value != nil {
			printNode(w, x.Value, indent+1)
		}
	}
}

func printSub(w io.Writer, s *Subroutine, indent int) {
	prefix := strings.Repeat("  ", indent)
	put := writer(w)

	name := s.Name
	if name == "" {
		name = "(anonymous)"
	}

	put("\n", prefix+strings.ToUpper(s.Kind.Keyword()[:1])+s.Kind.Keyword()[1:],
		name, "@"+s.Pos().String())

	for _, p := range s.Params {
		mode := "In"
		if p.InOut {
			mode = "InOut"
		}

		put("\n", prefix+"  Param", p.Name, mode)
	}

	if len(s.Extern) > 0 {
		put("\n", prefix+"  Extern", strings.Join(s.Extern, ", "))
	}

	for _, st := range s.Body {
		printNode(w, st, indent+1)
	}
}
