package interp

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattmikolay/rapture/result"
	"github.com/mattmikolay/rapture/value"
)

// LoopController drives one clause of a loop header. The loop body runs
// while IsActive reports true; Update advances the controller after each
// pass.
type LoopController interface {
	IsActive() (bool, error)
	Update() error
}

// For counts a variable from a start value by a step, optionally up or down
// to a bound.
type For struct {
	v    Variable
	to   value.Value
	step value.Value
}

// NewFor assigns from to v and returns a controller stepping v by step
// towards to. A nil from or step defaults to 1; a nil to means no bound.
// Every given value must be numeric.
func NewFor(v Variable, from, to, step value.Value) (*For, error) {
	if from == nil {
		from = value.Integer(1)
	}

	if step == nil {
		step = value.Integer(1)
	}

	for _, c := range []struct {
		v    value.Value
		name string
	}{{from, "from"}, {to, "to"}, {step, "step"}} {
		if c.v != nil && !value.IsNumeric(c.v) {
			return nil, ErrIllegalForLoop.
				With(slog.String(c.name, c.v.String())).
				Wrap(fmt.Errorf("%s value must be numeric, got %s", c.name, c.v.Kind()))
		}
	}

	if r := v.Set(from); !r.Ok() {
		return nil, ErrIllegalForLoop.Wrap(errors.New(r.Reason()))
	}

	return &For{v: v, to: to, step: step}, nil
}

// IsActive implements [LoopController]. With a bound it reports whether
// sign(step) * (to - current) >= 0.
func (f *For) IsActive() (bool, error) {
	if f.to == nil {
		return true, nil
	}

	cur, ok := f.v.Get().Value()
	if !ok || !value.IsNumeric(cur) {
		return false, ErrIllegalForLoop.
			Wrap(fmt.Errorf("loop variable must be numeric, got %s", kindOf(cur)))
	}

	dir, _ := value.Compare(f.step, value.Integer(0)).Value()

	// A NaN bound or counter is unordered and ends the loop.
	gap, ordered := value.Compare(f.to, cur).Value()

	return ordered && dir*gap >= 0, nil
}

// Update implements [LoopController].
func (f *For) Update() error {
	r := result.AndThen(f.v.Get(), func(cur value.Value) result.Result[value.Value] {
		return value.Add(cur, f.step)
	})

	next, err := r.Get()
	if err != nil {
		return ErrIllegalForLoop.Wrap(err)
	}

	if r := f.v.Set(next); !r.Ok() {
		return ErrIllegalForLoop.Wrap(errors.New(r.Reason()))
	}

	return nil
}

// While re-evaluates a condition before every pass. Only the value no stops
// the loop.
type While struct {
	cond func() (value.Value, error)
}

// NewWhile returns a controller testing cond.
func NewWhile(cond func() (value.Value, error)) *While {
	return &While{cond: cond}
}

// IsActive implements [LoopController].
func (w *While) IsActive() (bool, error) {
	v, err := w.cond()
	if err != nil {
		return false, err
	}

	return v != value.Logical(false), nil
}

// Update implements [LoopController].
func (*While) Update() error { return nil }

// Repeat runs a fixed number of passes.
type Repeat struct {
	n int64
}

// NewRepeat returns a controller for count passes. The count must be a
// non-negative Integer.
func NewRepeat(count value.Value) (*Repeat, error) {
	n, isInt := count.(value.Integer)
	if !isInt || n < 0 {
		return nil, ErrIllegalRepeatLoop.With(slog.String("count", count.String()))
	}

	return &Repeat{n: int64(n)}, nil
}

// IsActive implements [LoopController].
func (r *Repeat) IsActive() (bool, error) { return r.n > 0, nil }

// Update implements [LoopController].
func (r *Repeat) Update() error {
	r.n--

	return nil
}

// Master combines the controllers of a multi-clause loop header. Every
// controller is consulted on every check and updated on every pass, so
// side effects in each clause happen regardless of the others.
type Master []LoopController

// IsActive implements [LoopController].
func (m Master) IsActive() (bool, error) {
	active := true

	for _, c := range m {
		ok, err := c.IsActive()
		if err != nil {
			return false, err
		}

		active = active && ok
	}

	return active, nil
}

// Update implements [LoopController].
func (m Master) Update() error {
	for _, c := range m {
		if err := c.Update(); err != nil {
			return err
		}
	}

	return nil
}

func kindOf(v value.Value) value.Kind {
	if v == nil {
		return value.KindEmpty
	}

	return v.Kind()
}
