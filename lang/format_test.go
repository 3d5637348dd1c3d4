package lang

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestProgram_Format(t *testing.T) {
	t.Parallel()

	src := `fun fact(n)
  if n <= 1 then return 1 fi
  return n*fact(n-1)
end
x := <* 1, "a""b", 2.0, -(1+2), 2 ** (1 - 3) *>
output nlf: fact(5), x[1:2], x[:1], #x
case x[1] when 1, 2: exit else output: fi_value esac
for i := 1 to 3 while not (i = 2) do output: i od
`

	prog, err := ParseProgram(t.Context(), src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.Format(t.Context(), &buf, 2); err != nil {
		t.Fatalf("Format: %v", err)
	}

	want := `fun fact(n)
  if n <= 1 then
    return 1
  fi
  return n * fact(n - 1)
end
x := <* 1, "a""b", 2.0, -(1 + 2), 2 ** (1 - 3) *>
output nlf: fact(5), x[1:2], x[:1], #x
case x[1]
when 1, 2:
  exit
else
  output: fi_value
esac
for i from 1 to 3 while not i = 2 do
  output: i
od
`

	if got := buf.String(); got != want {
		t.Errorf("Format:\n%s\nwant:\n%s", got, want)
	}

	// Formatting is stable: the output parses back to the same text.
	again, err := ParseProgram(t.Context(), want)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	var buf2 bytes.Buffer
	if err := again.Format(t.Context(), &buf2, 2); err != nil {
		t.Fatalf("Format: %v", err)
	}

	if buf2.String() != want {
		t.Errorf("reformat differs:\n%s", buf2.String())
	}
}

func TestFormatExpr_SubroutineLiteral(t *testing.T) {
	t.Parallel()

	x, err := ParseExpr(t.Context(), "proc (=>a) extern: b\n a := b\n if a then exit fi\nend")
	if err != nil {
		t.Fatalf("ParseExpr: %v", err)
	}

	const want = "proc(=>a) extern: b a := b; if a then exit; fi; end"
	if got := FormatExpr(x); got != want {
		t.Errorf("FormatExpr = %q, want %q", got, want)
	}

	back, err := ParseExpr(t.Context(), want)
	if err != nil {
		t.Fatalf("inline form does not parse: %v", err)
	}

	if got := FormatExpr(back); got != want {
		t.Errorf("FormatExpr(reparsed) = %q", got)
	}
}

func TestFormatReal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{1.4, "1.4"},
		{2, "2.0"},
		{-0.5, "-0.5"},
		{1234567, "1234567.0"},
		{1e22, "1e+22"},
	}

	for _, tt := range tests {
		if got := FormatReal(tt.in); got != tt.want {
			t.Errorf("FormatReal(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgram_FormatJSON(t *testing.T) {
	t.Parallel()

	prog, err := ParseProgram(t.Context(), "x := 1 + 2")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.FormatJSON(t.Context(), &buf, 0); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var tree struct {
		Node       string `json:"node"`
		Statements []struct {
			Node  string `json:"node"`
			Pos   string `json:"pos"`
			Value struct {
				Op string `json:"op"`
			} `json:"value"`
		} `json:"statements"`
	}

	if err := json.Unmarshal(buf.Bytes(), &tree); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if tree.Node != "program" || len(tree.Statements) != 1 {
		t.Fatalf("tree = %+v", tree)
	}

	st := tree.Statements[0]
	if st.Node != "assign" || st.Pos != "1:3" || st.Value.Op != "+" {
		t.Errorf("statement = %+v", st)
	}
}

func TestProgram_FormatYAML(t *testing.T) {
	t.Parallel()

	prog, err := ParseProgram(t.Context(), "output: \"hi\"")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.FormatYAML(t.Context(), &buf, 2); err != nil {
		t.Fatalf("FormatYAML: %v", err)
	}

	for _, want := range []string{"node: program", "node: output", "value: hi"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("YAML output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestProgram_Print(t *testing.T) {
	t.Parallel()

	prog, err := ParseProgram(t.Context(), "x[2] := -y")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}

	var buf bytes.Buffer

	prog.Print(&buf)

	want := `Assign: @1:6
  Index: @1:2
    Ident: x: @1:1
    At
      Integer: 2: @1:3
  Unary: -: @1:9
    Ident: y: @1:10
`
	if buf.String() != want {
		t.Errorf("Print:\n%s\nwant:\n%s", buf.String(), want)
	}
}
