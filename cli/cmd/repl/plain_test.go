package repl

import (
	"io"
	"strings"
	"testing"
)

func TestRunPlain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		preload string
		input   string
		wantOut string
		wantErr string
	}{
		{
			name:    "statements and expressions",
			input:   "x := 2\nx * 21\noutput: \"hi\"\n",
			wantOut: "42\nhi\n",
		},
		{
			name:    "block continues across lines",
			input:   "proc greet(n)\n  output: \"hello \" + n\nend\ngreet(\"ann\")\n",
			wantOut: "hello ann\n",
		},
		{
			name:    "bracket continues across lines",
			input:   "s := <* 1,\n2, 3 *>\n#s\n",
			wantOut: "3\n",
		},
		{
			name:    "input reads next line",
			input:   "input: n\n40\nn + 2\n",
			wantOut: "42\n",
		},
		{
			name:    "preload defines globals",
			preload: "fun sq(x) return x * x end\n",
			input:   "sq(9)\n",
			wantOut: "81\n",
		},
		{
			name:    "error keeps session alive",
			input:   "y := 1 / 0\noutput: \"after\"\n",
			wantOut: "after\n",
			wantErr: "error:",
		},
		{
			name:    "list command",
			input:   "a := <* 1 *>\n:list\n",
			wantOut: "  a <* 1 *>\n",
		},
		{
			name:    "quit stops reading",
			input:   ":quit\noutput: 1\n",
			wantOut: "",
		},
		{
			name:    "unknown command",
			input:   ":frobnicate\n",
			wantErr: "unknown command: frobnicate",
		},
		{
			name:    "unfinished block at end of input",
			input:   "do output: 1\n",
			wantErr: `expected "od"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out, errw strings.Builder

			cfg := Config{Preload: tt.preload}

			err := RunPlain(t.Context(), cfg, strings.NewReader(tt.input), &out, &errw, false)
			if err != nil {
				t.Fatalf("RunPlain: %v", err)
			}

			if out.String() != tt.wantOut {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOut)
			}

			if tt.wantErr == "" && errw.Len() > 0 {
				t.Errorf("unexpected errors: %q", errw.String())
			}

			if !strings.Contains(errw.String(), tt.wantErr) {
				t.Errorf("errors = %q, want %q", errw.String(), tt.wantErr)
			}
		})
	}
}

type fakeLines []string

func (f *fakeLines) Prompt(string) (string, error) {
	if len(*f) == 0 {
		return "", io.EOF
	}

	line := (*f)[0]
	*f = (*f)[1:]

	return line, nil
}

func TestPromptReader(t *testing.T) {
	t.Parallel()

	lines := fakeLines{"first", "second"}
	r := &promptReader{lines: &lines}

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "first\nsecond\n" {
		t.Errorf("read %q", data)
	}
}

func TestPlainComplete(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession("")
	p := &plainSession{session: s}

	head, got, tail := p.complete("output: sq + 1", 10)
	if head != "output: " || tail != " + 1" {
		t.Errorf("head, tail = %q, %q", head, tail)
	}

	if len(got) != 1 || got[0] != "sqrt" {
		t.Errorf("completions = %q", got)
	}

	if _, got, _ := p.complete(`x := "sq`, 8); got != nil {
		t.Errorf("completions in text = %q", got)
	}
}
