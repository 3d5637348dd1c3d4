package interp_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mattmikolay/rapture/interp"
	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/value"
)

func TestInvoke(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "in argument is a copy",
			src:  "proc bump(n) n := n + 1 end\nx := 1\nbump(x)\noutput: x",
			want: "1\n",
		},
		{
			name: "in-out argument is shared",
			src:  "proc bump(=>n) n := n + 1 end\nx := 1\nbump(=>x)\noutput: x",
			want: "2\n",
		},
		{
			name: "swap",
			src:  "proc swap(=>a, =>b) t := a; a := b; b := t end\nx := 1; y := \"two\"\nswap(=>x, =>y)\noutput: x, y",
			want: "two 1\n",
		},
		{
			name: "in-out element",
			src:  "proc zero(=>e) e := 0 end\ns := <* 1, 2, 3 *>\nzero(=>s[2])\noutput: s",
			want: "<* 1, 0, 3 *>\n",
		},
		{
			name: "in-out slice",
			src:  "proc up(=>t) t := \"XY\" end\ns := \"abcd\"\nup(=>s[2:3])\noutput: s",
			want: "aXYd\n",
		},
		{
			name: "recursion through own name",
			src:  "fun fact(n)\n  if n <= 1 then return 1 fi\n  return n * fact(n - 1)\nend\noutput: fact(10)",
			want: "3628800\n",
		},
		{
			name: "anonymous function",
			src:  "sq := fun(x) return x * x end\noutput: sq(7), sq",
			want: "49 fun\n",
		},
		{
			name: "named forms",
			src:  "proc p() end\nfun f() return 1 end\noutput: p, f",
			want: `proc["p"] fun["f"]` + "\n",
		},
		{
			name: "no implicit closure",
			src:  "x := 5\nproc show() output: x end\nshow()",
			want: "empty\n",
		},
		{
			name: "extern aliases caller variable",
			src:  "count := 0\nproc tick() extern: count\n  count := count + 1\nend\ntick(); tick()\noutput: count",
			want: "2\n",
		},
		{
			name: "extern creates missing name in caller",
			src:  "proc init() extern: fresh\n  fresh := 9\nend\ninit()\noutput: fresh",
			want: "9\n",
		},
		{
			name: "procedure empty return",
			src:  "proc p() output: 1; return; output: 2 end\np()\nproc q() return empty end\nq()",
			want: "1\n",
		},
		{
			name: "return leaves loops",
			src:  "fun first(s) for i from 1 to #s do if s[i] > 2 then return i fi od; return 0 end\noutput: first(<* 1, 5, 9 *>)",
			want: "2\n",
		},
		{
			name: "function call as statement",
			src:  "fun f() output: \"side\"; return 1 end\nf()",
			want: "side\n",
		},
		{
			name: "exit inside loop inside procedure",
			src:  "proc p() do exit od; output: \"after\" end\np()",
			want: "after\n",
		},
		{
			name: "subroutine values compare by identity",
			src:  "proc p() end\nq := p\nproc r() end\noutput: p = q, p = r",
			want: "yes no\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := run(t, tt.src, "")
			if err != nil {
				t.Fatalf("Run: %v", err)
			}

			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvoke_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr error
		wantPos string
	}{
		{
			name:    "function with in-out argument",
			src:     "fun f(x) output: \"body\"; return x end\ny := 1\nz := f(=>y)",
			wantErr: interp.ErrIllegalArgument,
			wantPos: "3:10",
		},
		{
			name:    "in-out parameter given a value",
			src:     "proc p(=>x) output: \"body\" end\np(1)",
			wantErr: interp.ErrIllegalArgument,
			wantPos: "2:3",
		},
		{
			name:    "in parameter given a reference",
			src:     "proc p(x) output: \"body\" end\ny := 1\np(=>y)",
			wantErr: interp.ErrIllegalArgument,
			wantPos: "3:5",
		},
		{
			name:    "too few arguments",
			src:     "proc p(a, b) end\np(1)",
			wantErr: interp.ErrIncorrectArgumentCount,
			wantPos: "2:1",
		},
		{
			name:    "too many arguments",
			src:     "f := fun() return 1 end\nx := f(1)",
			wantErr: interp.ErrIncorrectArgumentCount,
			wantPos: "2:6",
		},
		{
			name:    "procedure returns a value",
			src:     "proc p()\n  return 1\nend\np()",
			wantErr: interp.ErrIllegalReturnValue,
			wantPos: "2:3",
		},
		{
			name:    "function falls off the end",
			src:     "fun f() x := 1 end\ny := f()",
			wantErr: interp.ErrMissingReturnValue,
			wantPos: "2:6",
		},
		{
			name:    "function returns nothing",
			src:     "fun f()\n  return\nend\ny := f()",
			wantErr: interp.ErrMissingReturnValue,
			wantPos: "2:3",
		},
		{
			name:    "procedure used as a value",
			src:     "proc p() output: \"body\" end\nx := p()",
			wantErr: interp.ErrIllegalProcedureInvocation,
			wantPos: "2:6",
		},
		{
			name:    "exit escapes procedure",
			src:     "proc p()\n  exit\nend\ndo p() od",
			wantErr: interp.ErrIllegalExit,
			wantPos: "2:3",
		},
		{
			name:    "assign to own name",
			src:     "proc p()\n  p := 1\nend\np()",
			wantErr: interp.ErrInvalidOperation,
			wantPos: "2:5",
		},
		{
			name:    "parameter named after builtin",
			src:     "proc p(sqrt) end",
			wantErr: interp.ErrIllegalParamName,
			wantPos: "1:8",
		},
		{
			name:    "duplicate parameter",
			src:     "f := fun(a, a) return a end",
			wantErr: interp.ErrIllegalParamName,
			wantPos: "1:13",
		},
		{
			name:    "extern repeats parameter",
			src:     "proc p(a) extern: a\nend",
			wantErr: interp.ErrIllegalParamName,
			wantPos: "1:1",
		},
		{
			name:    "error inside callee keeps its position",
			src:     "fun f(x)\n  return x / 0\nend\ny := f(1)",
			wantErr: interp.ErrInvalidOperation,
			wantPos: "2:12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := run(t, tt.src, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}

			if strings.Contains(got, "body") {
				t.Errorf("body ran before argument check: %q", got)
			}

			var e *interp.Error
			if !errors.As(err, &e) {
				t.Fatalf("error %T is not *interp.Error", err)
			}

			if pos, _ := e.Position(); pos.String() != tt.wantPos {
				t.Errorf("position = %v, want %s", pos, tt.wantPos)
			}
		})
	}
}

func TestCall(t *testing.T) {
	t.Parallel()

	var out strings.Builder

	in := interp.New(interp.WithOutput(&out))

	stmts, err := lang.ParseLine(t.Context(),
		"fun add(a, b) return a + b end; proc show(x) output: x end; proc ref(=>x) end")
	if err != nil {
		t.Fatal(err)
	}

	if err := in.Exec(t.Context(), stmts); err != nil {
		t.Fatal(err)
	}

	fn := func(name string) value.Value {
		v, err := in.Eval(t.Context(), &lang.Ident{Name: name})
		if err != nil {
			t.Fatal(err)
		}

		return v
	}

	got, err := in.Call(t.Context(), fn("add"), value.Integer(2), value.Real(0.5))
	if err != nil || got != value.Real(2.5) {
		t.Errorf("add(2, 0.5) = %v, %v", got, err)
	}

	got, err = in.Call(t.Context(), fn("show"), value.Text("hi"))
	if err != nil || got != nil {
		t.Errorf("show(\"hi\") = %v, %v", got, err)
	}

	if out.String() != "hi\n" {
		t.Errorf("output = %q", out.String())
	}

	if _, err := in.Call(t.Context(), fn("ref"), value.Integer(1)); !errors.Is(err, interp.ErrIllegalArgument) {
		t.Errorf("ref(1) error = %v", err)
	}

	if _, err := in.Call(t.Context(), value.Integer(1)); !errors.Is(err, interp.ErrIllegalInvocation) {
		t.Errorf("calling an integer: error = %v", err)
	}
}

func TestError_LogValue(t *testing.T) {
	t.Parallel()

	_, err := run(t, "proc p(a, b) end\np(1)", "")

	var e *interp.Error
	if !errors.As(err, &e) {
		t.Fatalf("error = %v", err)
	}

	if e.Kind() != interp.KindIncorrectArgumentCount {
		t.Errorf("Kind = %v", e.Kind())
	}

	attrs := map[string]string{}
	for _, a := range e.LogValue().Group() {
		attrs[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"kind":     "incorrect argument count",
		"callee":   `proc["p"]`,
		"expected": "2",
		"actual":   "1",
		"pos":      "2:1",
	}

	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("attr %s = %q, want %q", k, attrs[k], v)
		}
	}
}
