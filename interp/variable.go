package interp

import (
	"github.com/mattmikolay/rapture/result"
	"github.com/mattmikolay/rapture/value"
)

// Variable is an addressable storage cell. Get and Set report operational
// failures through [result.Result]; neither panics.
type Variable interface {
	Get() result.Result[value.Value]
	Set(v value.Value) result.Result[result.Unit]
}

var unit = result.Success(result.Unit{})

// Simple is a Variable that owns its value.
type Simple struct {
	v value.Value
}

// NewSimple returns a Simple holding v, or Empty if v is nil.
func NewSimple(v value.Value) *Simple {
	if v == nil {
		v = value.Empty{}
	}

	return &Simple{v: v}
}

// Get implements [Variable].
func (s *Simple) Get() result.Result[value.Value] { return result.Success(s.v) }

// Set implements [Variable].
func (s *Simple) Set(v value.Value) result.Result[result.Unit] {
	s.v = v

	return unit
}

// ReadOnly is a Variable bound to a fixed value. It binds a named
// subroutine inside its own body.
type ReadOnly struct {
	v value.Value
}

// NewReadOnly returns a ReadOnly wrapping v.
func NewReadOnly(v value.Value) *ReadOnly { return &ReadOnly{v: v} }

// Get implements [Variable].
func (r *ReadOnly) Get() result.Result[value.Value] { return result.Success(r.v) }

// Set implements [Variable]. It always fails.
func (*ReadOnly) Set(value.Value) result.Result[result.Unit] {
	return result.Failure[result.Unit]("cannot assign to read-only variable")
}

// Indexed is a view of one element of its parent's value. Writes replace
// that element and store the rebuilt container back into the parent.
type Indexed struct {
	parent Variable
	index  int64
}

// NewIndexed returns a view of parent[index], 1-based.
func NewIndexed(parent Variable, index int64) *Indexed {
	return &Indexed{parent: parent, index: index}
}

// Get implements [Variable].
func (x *Indexed) Get() result.Result[value.Value] {
	return result.AndThen(x.parent.Get(), func(p value.Value) result.Result[value.Value] {
		return value.ElementAt(p, value.Integer(x.index))
	})
}

// Set implements [Variable]. A Text parent accepts only a single-character
// Text; a Sequence parent accepts any value.
func (x *Indexed) Set(v value.Value) result.Result[result.Unit] {
	return result.AndThen(x.parent.Get(), func(p value.Value) result.Result[result.Unit] {
		if r := value.ElementAt(p, value.Integer(x.index)); !r.Ok() {
			return result.Failure[result.Unit](r.Reason())
		}

		var piece value.Value

		switch p.(type) {
		case value.Text:
			t, isText := v.(value.Text)
			if !isText || t.Len() != 1 {
				return result.Failuref[result.Unit](
					"text element must be a single character, got %s", v)
			}

			piece = t
		default:
			piece = value.Sequence{v}
		}

		return splice(x.parent, p, x.index, x.index, piece)
	})
}

// Slice is a view of the range [start:end] of its parent's value. Either
// bound may be nil, meaning the start or end of the container.
type Slice struct {
	parent     Variable
	start, end value.Value
}

// NewSlice returns a view of parent[start:end].
func NewSlice(parent Variable, start, end value.Value) *Slice {
	return &Slice{parent: parent, start: start, end: end}
}

// Get implements [Variable].
func (s *Slice) Get() result.Result[value.Value] {
	return result.AndThen(s.parent.Get(), func(p value.Value) result.Result[value.Value] {
		return value.Slice(p, s.start, s.end)
	})
}

// Set implements [Variable]. The parent becomes the part before start,
// then v, then the part after end, joined with the + operator.
func (s *Slice) Set(v value.Value) result.Result[result.Unit] {
	return result.AndThen(s.parent.Get(), func(p value.Value) result.Result[result.Unit] {
		if r := value.Slice(p, s.start, s.end); !r.Ok() {
			return result.Failure[result.Unit](r.Reason())
		}

		start := int64(1)
		if i, isInt := s.start.(value.Integer); isInt {
			start = int64(i)
		}

		end := length(p)
		if i, isInt := s.end.(value.Integer); isInt {
			end = int64(i)
		}

		return splice(s.parent, p, start, end, v)
	})
}

// splice stores cur[:start-1] + piece + cur[end+1:] into parent.
func splice(parent Variable, cur value.Value, start, end int64, piece value.Value) result.Result[result.Unit] {
	left := value.Slice(cur, value.Integer(1), value.Integer(start-1))
	right := value.Slice(cur, value.Integer(end+1), nil)

	joined := result.AndThen(result.Zip(left, right),
		func(lr result.Pair[value.Value, value.Value]) result.Result[value.Value] {
			return result.AndThen(value.Add(lr.First, piece), func(v value.Value) result.Result[value.Value] {
				return value.Add(v, lr.Second)
			})
		})

	return result.AndThen(joined, parent.Set)
}

func length(v value.Value) int64 {
	switch x := v.(type) {
	case value.Text:
		return int64(x.Len())
	case value.Sequence:
		return int64(len(x))
	default:
		return 0
	}
}
