package lang

// Builder provides a programmatic API for constructing syntax trees without
// parsing source text. It is mostly useful for testing the interpreter
// against hand-built trees.
//
// Nodes created by a Builder carry the Builder's current position, which is
// the zero (invalid) position unless set with [Builder.At].
//
// Example:
//
//	b := lang.NewBuilder()
//	prog := b.Program(
//	    b.Assign(b.Ident("x"), b.Int(1)),
//	    b.Output(b.Ident("x")),
//	)
type Builder struct {
	pos Position
}

// NewBuilder creates a new syntax tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// At returns a Builder whose nodes are located at line:col.
func (b *Builder) At(line, col int) *Builder {
	return &Builder{pos: Position{Line: line, Column: col}}
}

// Program creates a [Program] from statements.
func (b *Builder) Program(stmts ...Stmt) *Program {
	return &Program{Stmts: stmts}
}

// Int creates an integer literal.
func (b *Builder) Int(n int64) *IntegerLit {
	return &IntegerLit{Position: b.pos, Value: n}
}

// Real creates a real literal.
func (b *Builder) Real(f float64) *RealLit {
	return &RealLit{Position: b.pos, Value: f}
}

// Text creates a text literal.
func (b *Builder) Text(s string) *TextLit {
	return &TextLit{Position: b.pos, Value: s}
}

// Bool creates a logical literal.
func (b *Builder) Bool(v bool) *LogicalLit {
	return &LogicalLit{Position: b.pos, Value: v}
}

// Empty creates the empty literal.
func (b *Builder) Empty() *EmptyLit {
	return &EmptyLit{Position: b.pos}
}

// Ident creates a variable reference.
func (b *Builder) Ident(name string) *Ident {
	return &Ident{Position: b.pos, Name: name}
}

// Unary creates a prefix operation.
func (b *Builder) Unary(op Operator, x Expr) *Unary {
	return &Unary{Position: b.pos, Op: op, X: x}
}

// Binary creates an infix operation.
func (b *Builder) Binary(op Operator, x, y Expr) *Binary {
	return &Binary{Position: b.pos, Op: op, X: x, Y: y}
}

// Index creates an element selection.
func (b *Builder) Index(x, index Expr) *Index {
	return &Index{Position: b.pos, X: x, Index: index}
}

// Slice creates a range selection. Either bound may be nil.
func (b *Builder) Slice(x, lo, hi Expr) *Slice {
	return &Slice{Position: b.pos, X: x, Lo: lo, Hi: hi}
}

// Seq creates a sequence literal.
func (b *Builder) Seq(elems ...Expr) *SeqLit {
	if elems == nil {
		elems = []Expr{}
	}

	return &SeqLit{Position: b.pos, Elems: elems}
}

// In creates a by-value call argument.
func (b *Builder) In(x Expr) *Arg {
	return &Arg{Position: b.pos, X: x}
}

// InOut creates a by-reference call argument.
func (b *Builder) InOut(x Expr) *Arg {
	return &Arg{Position: b.pos, X: x, InOut: true}
}

// Call creates a call expression.
func (b *Builder) Call(fn Expr, args ...*Arg) *Call {
	return &Call{Position: b.pos, Fn: fn, Args: args}
}

// Param creates a by-value parameter.
func (b *Builder) Param(name string) *Param {
	return &Param{Position: b.pos, Name: name}
}

// RefParam creates an in-out parameter.
func (b *Builder) RefParam(name string) *Param {
	return &Param{Position: b.pos, Name: name, InOut: true}
}

// Proc creates a procedure definition. An empty name makes it anonymous.
func (b *Builder) Proc(name string, params []*Param, extern []string, body ...Stmt) *Subroutine {
	return b.sub(SubProc, name, params, extern, body)
}

// Fun creates a function definition. An empty name makes it anonymous.
func (b *Builder) Fun(name string, params []*Param, extern []string, body ...Stmt) *Subroutine {
	return b.sub(SubFun, name, params, extern, body)
}

func (b *Builder) sub(kind SubKind, name string, params []*Param, extern []string, body []Stmt) *Subroutine {
	return &Subroutine{
		Position: b.pos,
		Kind:     kind,
		Name:     name,
		Params:   params,
		Extern:   extern,
		Body:     body,
	}
}

// Lit wraps a subroutine as an expression.
func (b *Builder) Lit(sub *Subroutine) *SubLit {
	return &SubLit{Sub: sub}
}

// Decl wraps a subroutine as a declaration statement.
func (b *Builder) Decl(sub *Subroutine) *SubDecl {
	return &SubDecl{Sub: sub}
}

// Assign creates an assignment statement.
func (b *Builder) Assign(target, value Expr) *Assign {
	return &Assign{Position: b.pos, Target: target, Value: value}
}

// Do creates a call statement.
func (b *Builder) Do(fn Expr, args ...*Arg) *CallStmt {
	return &CallStmt{Call: b.Call(fn, args...)}
}

// If creates a conditional statement. A nil els omits the else branch.
func (b *Builder) If(cond Expr, then, els []Stmt) *If {
	return &If{Position: b.pos, Cond: cond, Then: then, Else: els}
}

// When creates a case arm.
func (b *Builder) When(values []Expr, body ...Stmt) *When {
	return &When{Position: b.pos, Values: values, Body: body}
}

// Case creates a case statement. A nil subject makes each arm value a
// condition.
func (b *Builder) Case(subject Expr, whens []*When, els []Stmt) *Case {
	return &Case{Position: b.pos, Subject: subject, Whens: whens, Else: els}
}

// For creates a for clause. Nil from, to or step take their defaults.
func (b *Builder) For(name string, from, to, step Expr) *ForClause {
	return &ForClause{Position: b.pos, Var: b.Ident(name), From: from, To: to, Step: step}
}

// Loop creates a loop statement. Any of the header clauses may be nil.
func (b *Builder) Loop(f *ForClause, repeat, while Expr, body ...Stmt) *Loop {
	return &Loop{Position: b.pos, For: f, Repeat: repeat, While: while, Body: body}
}

// Output creates an output statement that ends with a newline.
func (b *Builder) Output(items ...Expr) *Output {
	return &Output{Position: b.pos, Items: items}
}

// OutputNlf creates an output statement without a trailing newline.
func (b *Builder) OutputNlf(items ...Expr) *Output {
	return &Output{Position: b.pos, Items: items, NoNewline: true}
}

// Input creates an input statement. When text is true each line is stored
// as raw text instead of being evaluated.
func (b *Builder) Input(text bool, targets ...Expr) *Input {
	return &Input{Position: b.pos, Targets: targets, Text: text}
}

// Exit creates an exit statement.
func (b *Builder) Exit() *Exit {
	return &Exit{Position: b.pos}
}

// Return creates a return statement. A nil value returns nothing.
func (b *Builder) Return(value Expr) *Return {
	return &Return{Position: b.pos, Value: value}
}
