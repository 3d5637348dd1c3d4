package interp

import (
	"errors"
	"math"
	"testing"

	"github.com/mattmikolay/rapture/value"
)

// drive runs c to completion, collecting the loop variable on each active
// pass. It gives up after limit passes.
func drive(t *testing.T, c LoopController, v Variable, limit int) []value.Value {
	t.Helper()

	var seen []value.Value

	for range limit {
		active, err := c.IsActive()
		if err != nil {
			t.Fatalf("IsActive: %v", err)
		}

		if !active {
			return seen
		}

		if v != nil {
			seen = append(seen, get(t, v))
		}

		if err := c.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	return seen
}

func TestFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		from, to, step value.Value
		want           string
	}{
		{"ascending", value.Integer(1), value.Integer(5), nil, "<* 1, 2, 3, 4, 5 *>"},
		{"descending", value.Integer(5), value.Integer(1), value.Integer(-1), "<* 5, 4, 3, 2, 1 *>"},
		{"default from", nil, value.Integer(3), nil, "<* 1, 2, 3 *>"},
		{"by two", value.Integer(0), value.Integer(5), value.Integer(2), "<* 0, 2, 4 *>"},
		{"empty range", value.Integer(3), value.Integer(1), nil, "<* *>"},
		{"real step", value.Integer(0), value.Integer(1), value.Real(0.5), "<* 0, 0.5, 1.0 *>"},
		{"nan bound", value.Integer(1), value.Real(math.NaN()), nil, "<* *>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := NewSimple(nil)

			c, err := NewFor(v, tt.from, tt.to, tt.step)
			if err != nil {
				t.Fatalf("NewFor: %v", err)
			}

			if got := value.Sequence(drive(t, c, v, 100)).String(); got != tt.want {
				t.Errorf("passes = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFor_Unbounded(t *testing.T) {
	t.Parallel()

	v := NewSimple(nil)

	c, err := NewFor(v, value.Integer(1), nil, nil)
	if err != nil {
		t.Fatalf("NewFor: %v", err)
	}

	if got := drive(t, c, v, 50); len(got) != 50 {
		t.Errorf("unbounded loop stopped after %d passes", len(got))
	}
}

func TestFor_Illegal(t *testing.T) {
	t.Parallel()

	for _, c := range []struct{ from, to, step value.Value }{
		{value.Text("a"), nil, nil},
		{nil, value.Text("z"), nil},
		{nil, value.Integer(3), value.Logical(true)},
	} {
		if _, err := NewFor(NewSimple(nil), c.from, c.to, c.step); !errors.Is(err, ErrIllegalForLoop) {
			t.Errorf("NewFor(%v, %v, %v) error = %v", c.from, c.to, c.step, err)
		}
	}

	v := NewSimple(nil)

	c, err := NewFor(v, value.Integer(1), value.Integer(3), nil)
	if err != nil {
		t.Fatalf("NewFor: %v", err)
	}

	v.Set(value.Text("oops"))

	if _, err := c.IsActive(); !errors.Is(err, ErrIllegalForLoop) {
		t.Errorf("IsActive with text variable error = %v", err)
	}
}

func TestRepeat(t *testing.T) {
	t.Parallel()

	for n := range int64(4) {
		c, err := NewRepeat(value.Integer(n))
		if err != nil {
			t.Fatalf("NewRepeat(%d): %v", n, err)
		}

		counter := NewSimple(value.Integer(0))
		passes := drive(t, c, counter, 10)

		if int64(len(passes)) != n {
			t.Errorf("repeat %d ran %d passes", n, len(passes))
		}
	}

	for _, bad := range []value.Value{value.Integer(-1), value.Real(2), value.Text("3"), value.Empty{}} {
		if _, err := NewRepeat(bad); !errors.Is(err, ErrIllegalRepeatLoop) {
			t.Errorf("NewRepeat(%v) error = %v", bad, err)
		}
	}
}

func TestWhile(t *testing.T) {
	t.Parallel()

	results := []value.Value{value.Logical(true), value.Empty{}, value.Integer(0), value.Logical(false)}
	calls := 0

	w := NewWhile(func() (value.Value, error) {
		v := results[calls]
		calls++

		return v, nil
	})

	if got := drive(t, w, nil, 10); got != nil || calls != 4 {
		t.Errorf("while stopped after %d checks, want 4", calls)
	}
}

type stubController struct {
	active  bool
	checks  int
	updates int
}

func (s *stubController) IsActive() (bool, error) {
	s.checks++

	return s.active, nil
}

func (s *stubController) Update() error {
	s.updates++

	return nil
}

func TestMaster(t *testing.T) {
	t.Parallel()

	for mask := range 8 {
		cs := []*stubController{
			{active: mask&1 != 0},
			{active: mask&2 != 0},
			{active: mask&4 != 0},
		}

		m := Master{cs[0], cs[1], cs[2]}

		active, err := m.IsActive()
		if err != nil {
			t.Fatal(err)
		}

		if want := mask == 7; active != want {
			t.Errorf("mask %03b: IsActive = %v, want %v", mask, active, want)
		}

		if err := m.Update(); err != nil {
			t.Fatal(err)
		}

		for i, c := range cs {
			if c.checks != 1 || c.updates != 1 {
				t.Errorf("mask %03b: controller %d checked %d, updated %d", mask, i, c.checks, c.updates)
			}
		}
	}
}
