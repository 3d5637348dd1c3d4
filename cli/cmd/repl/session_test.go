package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/mattmikolay/rapture/interp"
	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/value"
)

func newTestSession(input string) (*Session, *strings.Builder) {
	var out strings.Builder

	return NewSession(Config{}, strings.NewReader(input), &out), &out
}

func TestSession_Eval(t *testing.T) {
	t.Parallel()

	s, out := newTestSession("")

	steps := []struct {
		input   string
		result  string
		output  string
		wantErr error
	}{
		{input: "x := 6", result: ""},
		{input: "x * 7", result: "42"},
		{input: "output: x; output: x + 1", output: "6\n7\n"},
		{input: "fun sq(n) return n * n end", result: ""},
		{input: "sq(x)", result: "36"},
		{input: "sqrt(16)", result: "4.0"},
		{input: "proc show(n) output: n end", result: ""},
		{input: "show(x)", result: "", output: "6\n"},
		{input: "sq(x); sq(2)", result: ""},
		{input: `"a" + "b"`, result: `"ab"`},
		{input: "<* x, yes *>", result: "<* 6, yes *>"},
		{input: "x / 0", wantErr: interp.ErrInvalidOperation},
		{input: "x := ", wantErr: lang.ErrParse},
		{input: "x", result: "6"},
	}

	for _, step := range steps {
		out.Reset()

		got, err := s.Eval(t.Context(), step.input)
		if step.wantErr != nil {
			if !errors.Is(err, step.wantErr) {
				t.Fatalf("Eval(%q) error = %v, want %v", step.input, err, step.wantErr)
			}

			continue
		}

		if err != nil {
			t.Fatalf("Eval(%q): %v", step.input, err)
		}

		if got != step.result {
			t.Errorf("Eval(%q) = %q, want %q", step.input, got, step.result)
		}

		if out.String() != step.output {
			t.Errorf("Eval(%q) output = %q, want %q", step.input, out.String(), step.output)
		}
	}
}

func TestSession_Load(t *testing.T) {
	t.Parallel()

	s, out := newTestSession("5\n")

	src := "proc greet(name)\n  output: \"hi \" + name\nend\ninput: n\ngreet(\"bob\")\n"
	if err := s.Load(t.Context(), src); err != nil {
		t.Fatal(err)
	}

	if out.String() != "hi bob\n" {
		t.Errorf("output = %q", out.String())
	}

	if got, err := s.Eval(t.Context(), "n + 1"); err != nil || got != "6" {
		t.Errorf("n + 1 = %q, %v", got, err)
	}
}

func TestSession_Globals(t *testing.T) {
	t.Parallel()

	s := NewSession(Config{
		Globals: map[string]value.Value{"limit": value.Integer(3)},
	}, strings.NewReader(""), io.Discard)

	if _, err := s.Eval(t.Context(), `name := "rapira"`); err != nil {
		t.Fatal(err)
	}

	got := s.bindings()
	want := []binding{{"limit", "3"}, {"name", `"rapira"`}}

	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("bindings = %v, want %v", got, want)
	}
}

func TestSession_Signature(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession("")

	if _, err := s.Eval(t.Context(), "proc swap(=>a, =>b) end; fun zero() return 0 end; v := 1"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		sig    string
		params []string
	}{
		{"swap", "proc swap(=>a, =>b)", []string{"=>a", "=>b"}},
		{"zero", "fun zero()", nil},
		{"sqrt", "fun sqrt(x)", []string{"x"}},
		{"v", "", nil},
		{"missing", "", nil},
	}

	for _, tt := range tests {
		sig, params := s.signature(tt.name)
		if sig != tt.sig || fmt.Sprint(params) != fmt.Sprint(tt.params) {
			t.Errorf("signature(%q) = %q, %q, want %q, %q", tt.name, sig, params, tt.sig, tt.params)
		}
	}
}

func TestSession_Report(t *testing.T) {
	t.Parallel()

	var calls int

	s := NewSession(Config{
		Report: func(w io.Writer, err error, source string) {
			calls++

			fmt.Fprintf(w, "custom %s", source)
		},
	}, strings.NewReader(""), io.Discard)

	var b strings.Builder

	s.Report(&b, errors.New("boom"), "src")

	if calls != 1 || b.String() != "custom src" {
		t.Errorf("Report wrote %q with %d calls", b.String(), calls)
	}

	s, _ = newTestSession("")
	b.Reset()
	s.Report(&b, errors.New("boom"), "src")

	if b.String() != "error: boom\n" {
		t.Errorf("default Report wrote %q", b.String())
	}
}
