package lang

//go:generate go tool stringer --linecomment --type TokenKind,Operator --output token_string.go

import (
	"fmt"
	"slices"
)

// Position identifies a location in source text. Line and Column are 1-based;
// Column counts characters, not bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Pos returns p. It lets syntax nodes satisfy [Node] by embedding Position.
func (p Position) Pos() Position { return p }

// IsValid reports whether p refers to an actual source location.
func (p Position) IsValid() bool { return p.Line > 0 }

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokEOF       TokenKind = iota // end of input
	TokNewline                    // newline
	TokIdent                      // identifier
	TokInt                        // integer
	TokReal                       // real
	TokText                       // text
	TokAssign                     // :=
	TokColon                      // :
	TokSemicolon                  // ;
	TokComma                      // ,
	TokLParen                     // (
	TokRParen                     // )
	TokLBrack                     // [
	TokRBrack                     // ]
	TokLSeq                       // <*
	TokRSeq                       // *>
	TokArrow                      // =>
	TokPlus                       // +
	TokMinus                      // -
	TokStar                       // *
	TokSlash                      // /
	TokDSlash                     // //
	TokPercent                    // %
	TokPower                      // **
	TokHash                       // #
	TokEq                         // =
	TokNe                         // /=
	TokLt                         // <
	TokGt                         // >
	TokLe                         // <=
	TokGe                         // >=
	TokProc                       // proc
	TokFun                        // fun
	TokEnd                        // end
	TokExtern                     // extern
	TokIf                         // if
	TokThen                       // then
	TokElse                       // else
	TokFi                         // fi
	TokCase                       // case
	TokWhen                       // when
	TokEsac                       // esac
	TokFor                        // for
	TokFrom                       // from
	TokTo                         // to
	TokStep                       // step
	TokWhile                      // while
	TokRepeat                     // repeat
	TokDo                         // do
	TokOd                         // od
	TokExit                       // exit
	TokReturn                     // return
	TokOutput                     // output
	TokNlf                        // nlf
	TokInput                      // input
	TokTextKw                     // text
	TokAnd                        // and
	TokOr                         // or
	TokNot                        // not
	TokYes                        // yes
	TokNo                         // no
	TokEmpty                      // empty
)

// keywords maps reserved words to their token kinds.
var keywords = func() map[string]TokenKind {
	m := make(map[string]TokenKind, TokEmpty-TokProc+1)
	for k := TokProc; k <= TokEmpty; k++ {
		m[k.String()] = k
	}

	return m
}()

// Keywords returns the reserved words of the language in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}

	slices.Sort(words)

	return words
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	_, ok := keywords[s]

	return ok
}

// Token is a lexical token with its source position.
type Token struct {
	Lit  string
	Pos  Position
	Kind TokenKind
}

// String describes the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case TokIdent, TokInt, TokReal:
		return t.Kind.String() + " " + t.Lit
	case TokText:
		return "text literal"
	default:
		return fmt.Sprintf("%q", t.Kind.String())
	}
}

// Operator identifies a unary or binary operator.
type Operator int

const (
	OpAdd    Operator = iota // +
	OpSub                    // -
	OpMul                    // *
	OpDiv                    // /
	OpIntDiv                 // //
	OpMod                    // %
	OpPow                    // **
	OpEq                     // =
	OpNe                     // /=
	OpLt                     // <
	OpGt                     // >
	OpLe                     // <=
	OpGe                     // >=
	OpAnd                    // and
	OpOr                     // or
	OpNot                    // not
	OpNeg                    // -x
	OpLen                    // #
)

// binaryOps maps binary operator tokens to operators.
var binaryOps = map[TokenKind]Operator{
	TokPlus:    OpAdd,
	TokMinus:   OpSub,
	TokStar:    OpMul,
	TokSlash:   OpDiv,
	TokDSlash:  OpIntDiv,
	TokPercent: OpMod,
	TokPower:   OpPow,
	TokEq:      OpEq,
	TokNe:      OpNe,
	TokLt:      OpLt,
	TokGt:      OpGt,
	TokLe:      OpLe,
	TokGe:      OpGe,
	TokAnd:     OpAnd,
	TokOr:      OpOr,
}

// Symbol returns the operator as written in source.
func (op Operator) Symbol() string {
	switch op {
	case OpNeg:
		return "-"
	default:
		return op.String()
	}
}

// precedence returns the binding power of a binary operator. Higher binds
// tighter.
func (op Operator) precedence() int {
	switch op {
	case OpOr:
		return 1
	case OpAnd:
		return 2
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
		return 4
	case OpAdd, OpSub:
		return 5
	case OpMul, OpDiv, OpIntDiv, OpMod:
		return 6
	case OpPow:
		return 8
	default:
		return 0
	}
}
