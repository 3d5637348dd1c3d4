package lang

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanner splits source text into tokens. Newlines are significant and
// reported as [TokNewline]; runs of blank lines and comments collapse into
// one.
type scanner struct {
	input []byte
	pos   int
	line  int
	col   int
}

func newScanner(src string) *scanner {
	return &scanner{input: []byte(src), line: 1, col: 1}
}

// Scan tokenizes src completely. The final token is always [TokEOF].
func Scan(src string) ([]Token, error) {
	s := newScanner(src)

	var toks []Token

	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}

		if tok.Kind == TokNewline && len(toks) > 0 &&
			toks[len(toks)-1].Kind == TokNewline {
			continue
		}

		toks = append(toks, tok)

		if tok.Kind == TokEOF {
			return toks, nil
		}
	}
}

func (s *scanner) next() (Token, error) {
	s.skipBlanks()

	pos := s.position()

	if s.eof() {
		return Token{Kind: TokEOF, Pos: pos}, nil
	}

	ch := s.peek()

	switch {
	case ch == '\n':
		s.advance()

		return Token{Kind: TokNewline, Lit: "\n", Pos: pos}, nil
	case ch == '"':
		return s.scanText(pos)
	case isDigit(ch):
		return s.scanNumber(pos)
	case isIdentifierStart(ch):
		return s.scanWord(pos), nil
	}

	if kind, n := s.punct(); n > 0 {
		lit := string(s.input[s.pos : s.pos+n])
		for range n {
			s.advance()
		}

		return Token{Kind: kind, Lit: lit, Pos: pos}, nil
	}

	return Token{}, ErrInvalidToken.WithPosition(pos).
		With(slog.String("found", string(ch)))
}

// punct matches the longest punctuation token at the current position.
func (s *scanner) punct() (TokenKind, int) {
	two := s.peekN(2)

	switch two {
	case ":=":
		return TokAssign, 2
	case "<*":
		return TokLSeq, 2
	case "*>":
		return TokRSeq, 2
	case "=>":
		return TokArrow, 2
	case "//":
		return TokDSlash, 2
	case "**":
		return TokPower, 2
	case "/=":
		return TokNe, 2
	case "<=":
		return TokLe, 2
	case ">=":
		return TokGe, 2
	}

	switch s.peek() {
	case ':':
		return TokColon, 1
	case ';':
		return TokSemicolon, 1
	case ',':
		return TokComma, 1
	case '(':
		return TokLParen, 1
	case ')':
		return TokRParen, 1
	case '[':
		return TokLBrack, 1
	case ']':
		return TokRBrack, 1
	case '+':
		return TokPlus, 1
	case '-':
		return TokMinus, 1
	case '*':
		return TokStar, 1
	case '/':
		return TokSlash, 1
	case '%':
		return TokPercent, 1
	case '#':
		return TokHash, 1
	case '=':
		return TokEq, 1
	case '<':
		return TokLt, 1
	case '>':
		return TokGt, 1
	}

	return TokEOF, 0
}

func (s *scanner) scanWord(pos Position) Token {
	start := s.pos

	for !s.eof() && isIdentifierContinue(s.peek()) {
		s.advance()
	}

	word := string(s.input[start:s.pos])
	if kind, ok := keywords[word]; ok {
		return Token{Kind: kind, Lit: word, Pos: pos}
	}

	return Token{Kind: TokIdent, Lit: word, Pos: pos}
}

func (s *scanner) scanNumber(pos Position) (Token, error) {
	start := s.pos
	kind := TokInt

	s.digits()

	// A fraction needs a digit after the point.
	if s.peek() == '.' && s.pos+1 < len(s.input) && isDigit(rune(s.input[s.pos+1])) {
		kind = TokReal

		s.advance()
		s.digits()
	}

	if c := s.peek(); c == 'e' || c == 'E' {
		save := *s

		s.advance()

		if c := s.peek(); c == '+' || c == '-' {
			s.advance()
		}

		if !isDigit(s.peek()) {
			*s = save

			return Token{}, ErrInvalidNumber.WithPosition(pos).
				With(slog.String("literal", string(s.input[start:s.pos+1])))
		}

		kind = TokReal

		s.digits()
	}

	if isIdentifierStart(s.peek()) {
		return Token{}, ErrInvalidNumber.WithPosition(pos).
			With(slog.String("literal", string(s.input[start:s.pos])+string(s.peek())))
	}

	return Token{Kind: kind, Lit: string(s.input[start:s.pos]), Pos: pos}, nil
}

func (s *scanner) digits() {
	for !s.eof() && isDigit(s.peek()) {
		s.advance()
	}
}

// scanText reads a quoted literal. A doubled quote stands for one quote
// character. The token literal holds the decoded text.
func (s *scanner) scanText(pos Position) (Token, error) {
	s.advance()

	var sb strings.Builder

	for !s.eof() {
		ch := s.peek()
		s.advance()

		if ch != '"' {
			sb.WriteRune(ch)

			continue
		}

		if s.peek() == '"' {
			s.advance()
			sb.WriteRune('"')

			continue
		}

		return Token{Kind: TokText, Lit: sb.String(), Pos: pos}, nil
	}

	return Token{}, ErrUnterminatedText.WithPosition(pos)
}

// skipBlanks skips horizontal whitespace and comments. A comment runs from a
// backslash up to, but not including, the end of the line.
func (s *scanner) skipBlanks() {
	for !s.eof() {
		switch ch := s.peek(); {
		case ch == '\\':
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		case ch != '\n' && unicode.IsSpace(ch):
			s.advance()
		default:
			return
		}
	}
}

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(s.input[s.pos:])

	return r
}

func (s *scanner) peekN(n int) string {
	if s.pos+n > len(s.input) {
		return string(s.input[s.pos:])
	}

	return string(s.input[s.pos : s.pos+n])
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}

	r, size := utf8.DecodeRune(s.input[s.pos:])

	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.col,
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Character classification

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
