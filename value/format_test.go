package value

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	fn := &Function{Subroutine: &Subroutine{Name: "fact"}}

	tests := []struct {
		in   Value
		want string
	}{
		{Empty{}, "empty"},
		{Logical(true), "yes"},
		{Logical(false), "no"},
		{Integer(123), "123"},
		{Integer(-4), "-4"},
		{Real(1.4), "1.4"},
		{Real(3), "3.0"},
		{Text(`say "hi"`), `say "hi"`},
		{Sequence{Integer(1), Integer(2), Integer(3)}, "<* 1, 2, 3 *>"},
		{Sequence{Text(`a"b`), Sequence{}}, `<* "a""b", <* *> *>`},
		{&Procedure{Subroutine: &Subroutine{}}, "proc"},
		{&Procedure{Subroutine: &Subroutine{Name: "swap"}}, `proc["swap"]`},
		{&Function{Subroutine: &Subroutine{}}, "fun"},
		{fn, `fun["fact"]`},
		{&Native{Name: "sqrt", Arity: 1}, `fun["sqrt"]`},
	}

	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromNative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{nil, "empty"},
		{true, "yes"},
		{42, "42"},
		{uint8(7), "7"},
		{2.5, "2.5"},
		{float32(0.5), "0.5"},
		{"x", `"x"`},
		{[]any{1, "a", []int{2, 3}}, `<* 1, "a", <* 2, 3 *> *>`},
		{[2]bool{true, false}, "<* yes, no *>"},
	}

	for _, tt := range tests {
		got, err := FromNative(tt.in)
		if err != nil {
			t.Errorf("FromNative(%#v): %v", tt.in, err)

			continue
		}

		if got.String() != tt.want {
			t.Errorf("FromNative(%#v) = %v, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := FromNative(map[string]any{"a": 1}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("FromNative(map) error = %v, want ErrUnsupportedType", err)
	}
}

func TestToNative(t *testing.T) {
	t.Parallel()

	got := ToNative(Sequence{Integer(1), Real(2), Text("s"), Logical(true), Empty{}})

	seq, isSlice := got.([]any)
	if !isSlice || len(seq) != 5 {
		t.Fatalf("ToNative = %#v", got)
	}

	if seq[0] != int64(1) || seq[1] != 2.0 || seq[2] != "s" || seq[3] != true || seq[4] != nil {
		t.Errorf("ToNative = %#v", seq)
	}
}
