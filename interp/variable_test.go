package interp

import (
	"testing"

	"github.com/mattmikolay/rapture/value"
)

func get(t *testing.T, v Variable) value.Value {
	t.Helper()

	got, err := v.Get().Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	return got
}

func TestSlice_RoundTrip(t *testing.T) {
	t.Parallel()

	base := NewSimple(value.Text("Hello, world!"))
	view := NewSlice(base, value.Integer(4), value.Integer(8))

	if got := get(t, view); got != value.Text("lo, w") {
		t.Fatalf("slice = %v, want \"lo, w\"", got)
	}

	if r := view.Set(value.Text("p me escape from this w")); !r.Ok() {
		t.Fatalf("Set: %v", r)
	}

	if got := get(t, base); got != value.Text("Help me escape from this world!") {
		t.Errorf("base = %v", got)
	}

	if got := get(t, view); got != value.Text("p me ") {
		t.Errorf("slice after set = %v, want \"p me \"", got)
	}
}

func TestSlice_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   value.Value
		lo, hi value.Value
		v      value.Value
		want   string
		ok     bool
	}{
		{"insert at start", value.Text("world"), value.Integer(1), value.Integer(0),
			value.Text("hello "), `"hello world"`, true},
		{"append", value.Text("ab"), value.Integer(3), nil, value.Text("cd"), `"abcd"`, true},
		{"replace all", value.Text("ab"), nil, nil, value.Text("z"), `"z"`, true},
		{"sequence middle",
			value.Sequence{value.Integer(1), value.Integer(2), value.Integer(3)},
			value.Integer(2), value.Integer(2),
			value.Sequence{value.Text("a"), value.Text("b")},
			`<* 1, "a", "b", 3 *>`, true},
		{"text into sequence", value.Sequence{value.Integer(1)}, value.Integer(1), value.Integer(1),
			value.Text("x"), "", false},
		{"real bound", value.Text("abc"), value.Real(1), nil, value.Text("x"), "", false},
		{"out of range", value.Text("abc"), value.Integer(2), value.Integer(9), value.Text("x"), "", false},
		{"not a container", value.Integer(5), value.Integer(1), value.Integer(1), value.Integer(1), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base := NewSimple(tt.base)

			r := NewSlice(base, tt.lo, tt.hi).Set(tt.v)
			if r.Ok() != tt.ok {
				t.Fatalf("Set = %v, want ok=%v", r, tt.ok)
			}

			got := get(t, base)

			if !tt.ok {
				if !value.Equal(got, tt.base) {
					t.Errorf("failed Set modified base: %v", got)
				}

				return
			}

			if got.String() != tt.want {
				t.Errorf("base = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestIndexed_WriteThrough(t *testing.T) {
	t.Parallel()

	first := value.Sequence{value.Integer(1)}
	third := value.Sequence{value.Text("c")}
	base := NewSimple(value.Sequence{first, value.Integer(2), third})

	if r := NewIndexed(base, 2).Set(value.Text("two")); !r.Ok() {
		t.Fatalf("Set: %v", r)
	}

	got, isSeq := get(t, base).(value.Sequence)
	if !isSeq || len(got) != 3 {
		t.Fatalf("base = %v", got)
	}

	if got[1] != value.Text("two") {
		t.Errorf("base[2] = %v", got[1])
	}

	if g := got[0].(value.Sequence); &g[0] != &first[0] {
		t.Error("base[1] was copied")
	}

	if g := got[2].(value.Sequence); &g[0] != &third[0] {
		t.Error("base[3] was copied")
	}

	if got := get(t, NewIndexed(base, 2)); got != value.Text("two") {
		t.Errorf("Indexed.Get = %v", got)
	}
}

func TestIndexed_Text(t *testing.T) {
	t.Parallel()

	base := NewSimple(value.Text("cat"))

	if r := NewIndexed(base, 1).Set(value.Text("b")); !r.Ok() {
		t.Fatalf("Set: %v", r)
	}

	if got := get(t, base); got != value.Text("bat") {
		t.Errorf("base = %v", got)
	}

	for _, v := range []value.Value{value.Text("ab"), value.Text(""), value.Integer(1)} {
		if r := NewIndexed(base, 1).Set(v); r.Ok() {
			t.Errorf("Set(%v) succeeded", v)
		}
	}

	for _, i := range []int64{0, 4} {
		if r := NewIndexed(base, i).Set(value.Text("x")); r.Ok() {
			t.Errorf("[%d] Set succeeded", i)
		}

		if r := NewIndexed(base, i).Get(); r.Ok() {
			t.Errorf("[%d] Get succeeded", i)
		}
	}
}

func TestIndexed_Nested(t *testing.T) {
	t.Parallel()

	base := NewSimple(value.Sequence{
		value.Sequence{value.Integer(1), value.Integer(2)},
		value.Text("xyz"),
	})

	if r := NewIndexed(NewIndexed(base, 1), 2).Set(value.Integer(20)); !r.Ok() {
		t.Fatalf("Set: %v", r)
	}

	if r := NewIndexed(NewIndexed(base, 2), 3).Set(value.Text("Z")); !r.Ok() {
		t.Fatalf("Set: %v", r)
	}

	if got := get(t, base).String(); got != `<* <* 1, 20 *>, "xyZ" *>` {
		t.Errorf("base = %s", got)
	}
}

func TestReadOnly(t *testing.T) {
	t.Parallel()

	ro := NewReadOnly(value.Integer(3))

	if r := ro.Set(value.Integer(4)); r.Reason() != "cannot assign to read-only variable" {
		t.Errorf("Set = %v", r)
	}

	if got := get(t, ro); got != value.Integer(3) {
		t.Errorf("Get = %v", got)
	}
}

func TestEnvironment(t *testing.T) {
	t.Parallel()

	env := NewEnvironment()

	if _, ok := env.Lookup("x"); ok {
		t.Fatal("Lookup found unbound name")
	}

	x := env.Get("x")
	if got := get(t, x); got != (value.Empty{}) {
		t.Errorf("unbound Get = %v, want empty", got)
	}

	if env.Get("x") != x {
		t.Error("Get returned a different variable for a bound name")
	}

	y := NewSimple(value.Integer(1))
	env.Set("y", y)
	env.Set("a", NewSimple(nil))

	if v, ok := env.Lookup("y"); !ok || v != y {
		t.Error("Lookup did not return the bound variable")
	}

	names := env.Names()
	if len(names) != 3 || names[0] != "a" || names[1] != "x" || names[2] != "y" {
		t.Errorf("Names = %v", names)
	}
}
