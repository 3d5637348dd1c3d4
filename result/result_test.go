package result_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/mattmikolay/rapture/result"
)

func TestMap(t *testing.T) {
	t.Parallel()

	double := func(n int) int { return n * 2 }

	got, ok := result.Map(result.Success(21), double).Value()
	if !ok || got != 42 {
		t.Errorf("Map(Success(21)) = (%d, %v), want (42, true)", got, ok)
	}

	failed := result.Map(result.Failure[int]("boom"), double)
	if failed.Ok() || failed.Reason() != "boom" {
		t.Errorf("Map(Failure) = %v, want Failure(boom)", failed)
	}
}

func TestAndThen_ShortCircuits(t *testing.T) {
	t.Parallel()

	calls := 0
	parse := func(s string) result.Result[int] {
		calls++

		n, err := strconv.Atoi(s)
		if err != nil {
			return result.Failuref[int]("not a number: %q", s)
		}

		return result.Success(n)
	}

	r := result.AndThen(result.AndThen(result.Success("x1"), parse),
		func(n int) result.Result[int] {
			calls++

			return result.Success(n + 1)
		})

	if r.Ok() {
		t.Fatalf("expected failure, got %v", r)
	}

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	if want := `not a number: "x1"`; r.Reason() != want {
		t.Errorf("reason = %q, want %q", r.Reason(), want)
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	prefix := func(s string) string { return "index: " + s }

	if r := result.Success(1).MapError(prefix); !r.Ok() {
		t.Errorf("MapError altered a success: %v", r)
	}

	r := result.Failure[int]("out of range").MapError(prefix)
	if r.Reason() != "index: out of range" {
		t.Errorf("reason = %q", r.Reason())
	}
}

func TestZip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		a      result.Result[int]
		b      result.Result[string]
		ok     bool
		reason string
	}{
		{"both", result.Success(1), result.Success("a"), true, ""},
		{"first_fails", result.Failure[int]("a"), result.Failure[string]("b"), false, "a"},
		{"second_fails", result.Success(1), result.Failure[string]("b"), false, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := result.Zip(tt.a, tt.b)
			if r.Ok() != tt.ok || r.Reason() != tt.reason {
				t.Errorf("Zip = %v, want ok=%v reason=%q", r, tt.ok, tt.reason)
			}

			if tt.ok {
				p, _ := r.Value()
				if p.First != 1 || p.Second != "a" {
					t.Errorf("pair = %+v", p)
				}
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	if v, err := result.Success(7).Get(); err != nil || v != 7 {
		t.Errorf("Get() = (%d, %v)", v, err)
	}

	_, err := result.Failure[int]("Illegal + operation").Get()

	var re *result.Error
	if !errors.As(err, &re) || re.Reason != "Illegal + operation" {
		t.Errorf("Get() error = %v, want *result.Error", err)
	}
}
