package lang

import (
	"errors"
	"testing"
)

func TestScan_Tokens(t *testing.T) {
	t.Parallel()

	toks, err := Scan("x := <* 1, 2.5, \"a\"\"b\" *> \\ trailing comment\n\n\nyes")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []struct {
		kind TokenKind
		lit  string
	}{
		{TokIdent, "x"},
		{TokAssign, ":="},
		{TokLSeq, "<*"},
		{TokInt, "1"},
		{TokComma, ","},
		{TokReal, "2.5"},
		{TokComma, ","},
		{TokText, `a"b`},
		{TokRSeq, "*>"},
		{TokNewline, "\n"},
		{TokYes, "yes"},
		{TokEOF, ""},
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(want))
	}

	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Lit != w.lit {
			t.Errorf("token %d = %v %q, want %v %q", i, toks[i].Kind, toks[i].Lit, w.kind, w.lit)
		}
	}

	if p := toks[1].Pos; p.Line != 1 || p.Column != 3 {
		t.Errorf(":= at %v, want 1:3", p)
	}

	if p := toks[10].Pos; p.Line != 4 || p.Column != 1 {
		t.Errorf("yes at %v, want 4:1", p)
	}
}

func TestScan_Operators(t *testing.T) {
	t.Parallel()

	toks, err := Scan("a//b**c/=d<=e>=f=>g*h/i%j#k")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	var got []TokenKind

	for _, tok := range toks {
		if tok.Kind != TokIdent {
			got = append(got, tok.Kind)
		}
	}

	want := []TokenKind{
		TokDSlash, TokPower, TokNe, TokLe, TokGe, TokArrow,
		TokStar, TokSlash, TokPercent, TokHash, TokEOF,
	}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("operator %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScan_UnicodeColumns(t *testing.T) {
	t.Parallel()

	toks, err := Scan(`"привет" + счёт`)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if toks[1].Pos.Column != 10 {
		t.Errorf("+ at column %d, want 10", toks[1].Pos.Column)
	}

	if toks[2].Kind != TokIdent || toks[2].Lit != "счёт" {
		t.Errorf("got %v, want identifier счёт", toks[2])
	}
}

func TestScan_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want *Error
		col  int
	}{
		{"unterminated", `x := "abc`, ErrUnterminatedText, 6},
		{"invalid char", "x @ y", ErrInvalidToken, 3},
		{"letters after digits", "12abc", ErrInvalidNumber, 1},
		{"bare exponent", "1e+", ErrInvalidNumber, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Scan(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Scan(%q) error = %v, want %v", tt.src, err, tt.want)
			}

			var le *Error
			if !errors.As(err, &le) {
				t.Fatalf("error %T is not *Error", err)
			}

			if pos, ok := le.Position(); !ok || pos.Column != tt.col {
				t.Errorf("position = %v (%v), want column %d", pos, ok, tt.col)
			}
		})
	}
}
