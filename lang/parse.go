package lang

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/mattmikolay/rapture/log"
)

// Option configures the parser.
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger sets the logger used for parser trace output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func makeOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// ParseProgram parses a complete source file.
func ParseProgram(ctx context.Context, src string, opts ...Option) (*Program, error) {
	o := makeOptions(opts...)

	p, err := newParser(src)
	if err != nil {
		return nil, err
	}

	stmts, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokEOF); err != nil {
		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("source_bytes", len(src)),
		slog.Int("token_count", len(p.toks)),
		slog.Int("statement_count", len(stmts)))

	return &Program{Source: src, Stmts: stmts}, nil
}

// ParseLine parses one unit of interactive input. The input may hold
// several statements separated by ";" or newlines.
func ParseLine(ctx context.Context, src string, opts ...Option) ([]Stmt, error) {
	prog, err := ParseProgram(ctx, src, opts...)
	if err != nil {
		return nil, err
	}

	return prog.Stmts, nil
}

// ParseExpr parses a single expression.
func ParseExpr(ctx context.Context, src string, opts ...Option) (Expr, error) {
	o := makeOptions(opts...)

	p, err := newParser(src)
	if err != nil {
		return nil, err
	}

	p.skipNewlines()

	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.skipNewlines()

	if err := p.expect(TokEOF); err != nil {
		return nil, err
	}

	o.logger.TraceContext(ctx, "parse expression complete",
		slog.Int("source_bytes", len(src)))

	return x, nil
}

// parser is a recursive descent parser over a token slice. While depth is
// positive the parser is inside (), [] or <* *> and newlines are skipped.
type parser struct {
	toks  []Token
	i     int
	depth int
}

func newParser(src string) (*parser, error) {
	toks, err := Scan(src)
	if err != nil {
		return nil, err
	}

	return &parser{toks: toks}, nil
}

func (p *parser) peek() Token {
	if p.depth > 0 {
		p.skipNewlines()
	}

	return p.toks[p.i]
}

func (p *parser) next() Token {
	tok := p.peek()
	if tok.Kind != TokEOF {
		p.i++
	}

	return tok
}

func (p *parser) at(kinds ...TokenKind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *parser) accept(kind TokenKind) bool {
	if p.peek().Kind == kind {
		p.next()

		return true
	}

	return false
}

func (p *parser) expect(kind TokenKind) error {
	tok := p.peek()
	if tok.Kind != kind {
		err := p.unexpected(tok, strconv.Quote(kind.String()))
		err.eof = tok.Kind == TokEOF

		return err
	}

	p.next()

	return nil
}

func (p *parser) skipNewlines() {
	for p.toks[p.i].Kind == TokNewline {
		p.i++
	}
}

func (p *parser) unexpected(tok Token, expected string) *Error {
	err := ErrParse.WithPosition(tok.Pos).
		With(slog.String("expected", expected), slog.String("found", tok.String())).
		Wrap(fmt.Errorf("expected %s, found %s", expected, tok))
	err.eof = tok.Kind == TokEOF && p.depth > 0

	return err
}

// nest runs fn with newline skipping enabled or, when flat is true,
// disabled. Subroutine literal bodies are parsed flat even when nested in
// brackets.
func (p *parser) nest(flat bool, fn func() error) error {
	saved := p.depth

	if flat {
		p.depth = 0
	} else {
		p.depth++
	}

	err := fn()
	p.depth = saved

	return err
}

// blockEnd lists tokens that close a statement block.
var blockEnd = []TokenKind{
	TokEOF, TokEnd, TokFi, TokElse, TokEsac, TokWhen, TokOd,
}

// parseBlock parses statements up to, but not including, a block terminator.
func (p *parser) parseBlock() ([]Stmt, error) {
	stmts := make([]Stmt, 0)

	for {
		for p.at(TokSemicolon, TokNewline) {
			p.next()
		}

		if p.at(blockEnd...) {
			return stmts, nil
		}

		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, s)

		if !p.at(TokSemicolon, TokNewline) && !p.at(blockEnd...) {
			return nil, p.unexpected(p.peek(), "end of statement")
		}
	}
}

func (p *parser) parseStmt() (Stmt, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokProc, TokFun:
		if p.toks[p.i+1].Kind == TokIdent {
			sub, err := p.parseSubroutine(true)
			if err != nil {
				return nil, err
			}

			return &SubDecl{Sub: sub}, nil
		}
	case TokIf:
		return p.parseIf()
	case TokCase:
		return p.parseCase()
	case TokFor, TokRepeat, TokWhile, TokDo:
		return p.parseLoop()
	case TokOutput:
		return p.parseOutput()
	case TokInput:
		return p.parseInput()
	case TokExit:
		p.next()

		return &Exit{Position: tok.Pos}, nil
	case TokReturn:
		p.next()

		ret := &Return{Position: tok.Pos}
		if p.at(TokSemicolon, TokNewline) || p.at(blockEnd...) {
			return ret, nil
		}

		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		ret.Value = x

		return ret, nil
	}

	x, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	if assign := p.peek(); assign.Kind == TokAssign {
		if !IsReference(x) {
			return nil, ErrParse.WithPosition(x.Pos()).
				Wrap(fmt.Errorf("cannot assign to %s", describe(x)))
		}

		p.next()
		p.skipNewlines()

		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &Assign{Position: assign.Pos, Target: x, Value: v}, nil
	}

	if call, ok := x.(*Call); ok {
		return &CallStmt{Call: call}, nil
	}

	return nil, p.unexpected(p.peek(), `":=" or call arguments`)
}

func (p *parser) parseIf() (Stmt, error) {
	s := &If{Position: p.next().Pos}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	s.Cond = cond

	p.skipNewlines()

	if err := p.expect(TokThen); err != nil {
		return nil, err
	}

	if s.Then, err = p.parseBlock(); err != nil {
		return nil, err
	}

	if p.accept(TokElse) {
		if s.Else, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(TokFi); err != nil {
		return nil, err
	}

	return s, nil
}

func (p *parser) parseCase() (Stmt, error) {
	s := &Case{Position: p.next().Pos}

	p.skipNewlines()

	if !p.at(TokWhen) {
		subject, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		s.Subject = subject

		p.skipNewlines()
	}

	for p.at(TokWhen) {
		w := &When{Position: p.next().Pos}

		values, err := p.parseExprList()
		if err != nil {
			return nil, err
		}

		w.Values = values

		if err := p.expect(TokColon); err != nil {
			return nil, err
		}

		if w.Body, err = p.parseBlock(); err != nil {
			return nil, err
		}

		s.Whens = append(s.Whens, w)
	}

	if len(s.Whens) == 0 {
		return nil, p.unexpected(p.peek(), strconv.Quote(TokWhen.String()))
	}

	if p.accept(TokElse) {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		s.Else = body
	}

	if err := p.expect(TokEsac); err != nil {
		return nil, err
	}

	return s, nil
}

func (p *parser) parseLoop() (Stmt, error) {
	s := &Loop{Position: p.peek().Pos}

	var err error

	if p.at(TokFor) {
		if s.For, err = p.parseFor(); err != nil {
			return nil, err
		}
	}

	if p.accept(TokRepeat) {
		if s.Repeat, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	if p.accept(TokWhile) {
		if s.While, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	p.skipNewlines()

	if err := p.expect(TokDo); err != nil {
		return nil, err
	}

	if s.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}

	if err := p.expect(TokOd); err != nil {
		return nil, err
	}

	return s, nil
}

func (p *parser) parseFor() (*ForClause, error) {
	f := &ForClause{Position: p.next().Pos}

	name := p.peek()
	if name.Kind != TokIdent {
		return nil, p.unexpected(name, "loop variable")
	}

	p.next()

	f.Var = &Ident{Position: name.Pos, Name: name.Lit}

	var err error

	if p.accept(TokFrom) || p.accept(TokAssign) {
		if f.From, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	if p.accept(TokTo) {
		if f.To, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	if p.accept(TokStep) {
		if f.Step, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (p *parser) parseOutput() (Stmt, error) {
	s := &Output{Position: p.next().Pos}
	s.NoNewline = p.accept(TokNlf)

	if err := p.expect(TokColon); err != nil {
		return nil, err
	}

	if p.at(TokSemicolon, TokNewline) || p.at(blockEnd...) {
		return s, nil
	}

	items, err := p.parseExprList()
	if err != nil {
		return nil, err
	}

	s.Items = items

	return s, nil
}

func (p *parser) parseInput() (Stmt, error) {
	s := &Input{Position: p.next().Pos}
	s.Text = p.accept(TokTextKw)

	if err := p.expect(TokColon); err != nil {
		return nil, err
	}

	targets, err := p.parseExprList()
	if err != nil {
		return nil, err
	}

	for _, t := range targets {
		if !IsReference(t) {
			return nil, ErrParse.WithPosition(t.Pos()).
				Wrap(fmt.Errorf("cannot read into %s", describe(t)))
		}
	}

	s.Targets = targets

	return s, nil
}

// parseSubroutine parses a proc or fun definition starting at its keyword.
func (p *parser) parseSubroutine(named bool) (*Subroutine, error) {
	kw := p.next()

	sub := &Subroutine{Position: kw.Pos, Kind: SubProc}
	if kw.Kind == TokFun {
		sub.Kind = SubFun
	}

	if named {
		sub.Name = p.next().Lit
	}

	err := p.nest(true, func() error {
		if p.at(TokLParen) {
			params, err := p.parseParams()
			if err != nil {
				return err
			}

			sub.Params = params
		}

		p.skipNewlines()

		if p.accept(TokExtern) {
			if err := p.expect(TokColon); err != nil {
				return err
			}

			for {
				name := p.peek()
				if name.Kind != TokIdent {
					return p.unexpected(name, "extern name")
				}

				p.next()

				sub.Extern = append(sub.Extern, name.Lit)

				if !p.accept(TokComma) {
					break
				}

				p.skipNewlines()
			}
		}

		body, err := p.parseBlock()
		if err != nil {
			return err
		}

		sub.Body = body

		return p.expect(TokEnd)
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (p *parser) parseParams() ([]*Param, error) {
	var params []*Param

	err := p.nest(false, func() error {
		p.next()

		if p.accept(TokRParen) {
			return nil
		}

		for {
			start := p.peek()
			inout := p.accept(TokArrow)

			name := p.peek()
			if name.Kind != TokIdent {
				return p.unexpected(name, "parameter name")
			}

			p.next()

			params = append(params, &Param{Position: start.Pos, Name: name.Lit, InOut: inout})

			if !p.accept(TokComma) {
				break
			}
		}

		return p.expect(TokRParen)
	})

	return params, err
}

func (p *parser) parseExprList() ([]Expr, error) {
	var list []Expr

	for {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		list = append(list, x)

		if !p.accept(TokComma) {
			return list, nil
		}

		p.skipNewlines()
	}
}

// notPrecedence is the level of the "not" prefix, between "and" and the
// comparisons.
const notPrecedence = 3

func (p *parser) parseExpr() (Expr, error) {
	return p.parseBinary(OpOr.precedence())
}

// parseBinary parses a left-associative chain of operators with precedence
// at least prec.
func (p *parser) parseBinary(prec int) (Expr, error) {
	switch prec {
	case OpMul.precedence() + 1:
		return p.parseUnary()
	case notPrecedence:
		if tok := p.peek(); tok.Kind == TokNot {
			p.next()

			y, err := p.parseBinary(notPrecedence)
			if err != nil {
				return nil, err
			}

			return &Unary{Position: tok.Pos, Op: OpNot, X: y}, nil
		}

		return p.parseBinary(prec + 1)
	}

	x, err := p.parseBinary(prec + 1)
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()

		op, ok := binaryOps[tok.Kind]
		if !ok || op.precedence() != prec {
			return x, nil
		}

		p.next()
		p.skipNewlines()

		y, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}

		x = &Binary{Position: tok.Pos, Op: op, X: x, Y: y}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	tok := p.peek()

	var op Operator

	switch tok.Kind {
	case TokMinus:
		op = OpNeg
	case TokHash:
		op = OpLen
	case TokPlus:
		p.next()

		return p.parseUnary()
	default:
		return p.parsePower()
	}

	p.next()

	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &Unary{Position: tok.Pos, Op: op, X: x}, nil
}

// parsePower parses a right-associative exponentiation. The exponent may
// carry its own sign.
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	if tok.Kind != TokPower {
		return base, nil
	}

	p.next()
	p.skipNewlines()

	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &Binary{Position: tok.Pos, Op: OpPow, X: base, Y: exp}, nil
}

func (p *parser) parsePostfix() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch tok := p.peek(); tok.Kind {
		case TokLBrack:
			if x, err = p.parseSelectors(x); err != nil {
				return nil, err
			}
		case TokLParen:
			if x, err = p.parseCall(x); err != nil {
				return nil, err
			}
		default:
			return x, nil
		}
	}
}

// parseSelectors parses "[s1, s2, ...]" where each selector is an index or
// a "lo:hi" range. Selectors apply left to right.
func (p *parser) parseSelectors(x Expr) (Expr, error) {
	err := p.nest(false, func() error {
		pos := p.next().Pos

		for {
			var lo, hi Expr

			if !p.at(TokColon) {
				e, err := p.parseExpr()
				if err != nil {
					return err
				}

				lo = e
			}

			if p.accept(TokColon) {
				if !p.at(TokComma, TokRBrack) {
					e, err := p.parseExpr()
					if err != nil {
						return err
					}

					hi = e
				}

				x = &Slice{Position: pos, X: x, Lo: lo, Hi: hi}
			} else {
				x = &Index{Position: pos, X: x, Index: lo}
			}

			if !p.accept(TokComma) {
				break
			}
		}

		return p.expect(TokRBrack)
	})
	if err != nil {
		return nil, err
	}

	return x, nil
}

func (p *parser) parseCall(fn Expr) (Expr, error) {
	call := &Call{Position: fn.Pos(), Fn: fn}

	err := p.nest(false, func() error {
		p.next()

		if p.accept(TokRParen) {
			return nil
		}

		for {
			start := p.peek()
			inout := p.accept(TokArrow)

			x, err := p.parseExpr()
			if err != nil {
				return err
			}

			if inout && !IsReference(x) {
				return ErrParse.WithPosition(x.Pos()).
					Wrap(fmt.Errorf("cannot pass %s by reference", describe(x)))
			}

			call.Args = append(call.Args, &Arg{Position: start.Pos, X: x, InOut: inout})

			if !p.accept(TokComma) {
				break
			}
		}

		return p.expect(TokRParen)
	})
	if err != nil {
		return nil, err
	}

	return call, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokInt:
		p.next()

		n, err := strconv.ParseInt(tok.Lit, 10, 64)
		if err != nil {
			return nil, ErrInvalidNumber.WithPosition(tok.Pos).
				With(slog.String("literal", tok.Lit)).Wrap(err)
		}

		return &IntegerLit{Position: tok.Pos, Value: n}, nil
	case TokReal:
		p.next()

		f, err := strconv.ParseFloat(tok.Lit, 64)
		if err != nil {
			return nil, ErrInvalidNumber.WithPosition(tok.Pos).
				With(slog.String("literal", tok.Lit)).Wrap(err)
		}

		return &RealLit{Position: tok.Pos, Value: f}, nil
	case TokText:
		p.next()

		return &TextLit{Position: tok.Pos, Value: tok.Lit}, nil
	case TokYes, TokNo:
		p.next()

		return &LogicalLit{Position: tok.Pos, Value: tok.Kind == TokYes}, nil
	case TokEmpty:
		p.next()

		return &EmptyLit{Position: tok.Pos}, nil
	case TokIdent:
		p.next()

		return &Ident{Position: tok.Pos, Name: tok.Lit}, nil
	case TokLParen:
		var x Expr

		err := p.nest(false, func() error {
			p.next()

			e, err := p.parseExpr()
			if err != nil {
				return err
			}

			x = e

			return p.expect(TokRParen)
		})

		return x, err
	case TokLSeq:
		seq := &SeqLit{Position: tok.Pos, Elems: []Expr{}}

		err := p.nest(false, func() error {
			p.next()

			if p.accept(TokRSeq) {
				return nil
			}

			elems, err := p.parseExprList()
			if err != nil {
				return err
			}

			seq.Elems = elems

			return p.expect(TokRSeq)
		})

		return seq, err
	case TokProc, TokFun:
		sub, err := p.parseSubroutine(false)
		if err != nil {
			return nil, err
		}

		return &SubLit{Sub: sub}, nil
	}

	return nil, p.unexpected(tok, "expression")
}

func describe(x Expr) string {
	switch x.(type) {
	case *Call:
		return "call result"
	case *IntegerLit, *RealLit, *TextLit, *LogicalLit, *EmptyLit, *SeqLit:
		return "literal"
	case *SubLit:
		return "subroutine literal"
	default:
		return "expression"
	}
}
