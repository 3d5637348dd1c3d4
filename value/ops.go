package value

import (
	"math"
	"strings"

	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/result"
)

// unsupported is the single fallback for operand combinations an operator
// does not define.
func unsupported(op string) result.Result[Value] {
	return result.Failuref[Value]("Illegal %s operation", op)
}

func ok(v Value) result.Result[Value] { return result.Success(v) }

// Binary applies a binary operator.
func Binary(op lang.Operator, a, b Value) result.Result[Value] {
	switch op {
	case lang.OpAdd:
		return Add(a, b)
	case lang.OpSub:
		return Sub(a, b)
	case lang.OpMul:
		return Mul(a, b)
	case lang.OpDiv:
		return Div(a, b)
	case lang.OpIntDiv:
		return IntDiv(a, b)
	case lang.OpMod:
		return Mod(a, b)
	case lang.OpPow:
		return Pow(a, b)
	case lang.OpEq:
		return ok(Logical(Equal(a, b)))
	case lang.OpNe:
		return ok(Logical(!Equal(a, b)))
	case lang.OpLt:
		return Less(a, b)
	case lang.OpGt:
		return Greater(a, b)
	case lang.OpLe:
		return LessEqual(a, b)
	case lang.OpGe:
		return GreaterEqual(a, b)
	case lang.OpAnd:
		return And(a, b)
	case lang.OpOr:
		return Or(a, b)
	default:
		return unsupported(op.Symbol())
	}
}

// Unary applies a prefix operator.
func Unary(op lang.Operator, a Value) result.Result[Value] {
	switch op {
	case lang.OpNeg:
		return Neg(a)
	case lang.OpNot:
		return Not(a)
	case lang.OpLen:
		return Length(a)
	default:
		return unsupported(op.Symbol())
	}
}

// Add returns a + b. Integers add exactly, mixed numbers add as reals, and
// texts and sequences concatenate.
func Add(a, b Value) result.Result[Value] {
	switch x := a.(type) {
	case Integer:
		switch y := b.(type) {
		case Integer:
			return ok(x + y)
		case Real:
			return ok(Real(x) + y)
		}
	case Real:
		switch y := b.(type) {
		case Integer:
			return ok(x + Real(y))
		case Real:
			return ok(x + y)
		}
	case Text:
		if y, isText := b.(Text); isText {
			return ok(x + y)
		}
	case Sequence:
		if y, isSeq := b.(Sequence); isSeq {
			out := make(Sequence, 0, len(x)+len(y))

			return ok(append(append(out, x...), y...))
		}
	}

	return unsupported("+")
}

// arith applies a numeric operator, promoting to real when either operand
// is real.
func arith(
	op string,
	a, b Value,
	ints func(x, y Integer) Value,
	reals func(x, y float64) Value,
) result.Result[Value] {
	switch x := a.(type) {
	case Integer:
		switch y := b.(type) {
		case Integer:
			return ok(ints(x, y))
		case Real:
			return ok(reals(float64(x), float64(y)))
		}
	case Real:
		switch y := b.(type) {
		case Integer:
			return ok(reals(float64(x), float64(y)))
		case Real:
			return ok(reals(float64(x), float64(y)))
		}
	}

	return unsupported(op)
}

// Sub returns a - b.
func Sub(a, b Value) result.Result[Value] {
	return arith("-", a, b,
		func(x, y Integer) Value { return x - y },
		func(x, y float64) Value { return Real(x - y) })
}

// Mul returns a * b. Multiplying a text or sequence by a non-negative
// integer repeats it.
func Mul(a, b Value) result.Result[Value] {
	switch x := a.(type) {
	case Text:
		if n, isInt := b.(Integer); isInt {
			return repeatText(x, n)
		}
	case Sequence:
		if n, isInt := b.(Integer); isInt {
			return repeatSeq(x, n)
		}
	case Integer:
		switch y := b.(type) {
		case Text:
			return repeatText(y, x)
		case Sequence:
			return repeatSeq(y, x)
		}
	}

	return arith("*", a, b,
		func(x, y Integer) Value { return x * y },
		func(x, y float64) Value { return Real(x * y) })
}

// maxRepeat bounds the length of a repeated text or sequence.
const maxRepeat = 1 << 28

func repeatText(t Text, n Integer) result.Result[Value] {
	switch {
	case n < 0:
		return result.Failuref[Value]("negative repetition count %d", n)
	case t == "" || n == 0:
		return ok(Text(""))
	case n > maxRepeat/Integer(len(t)):
		return result.Failuref[Value]("repetition count %d too large", n)
	}

	return ok(Text(strings.Repeat(string(t), int(n))))
}

func repeatSeq(s Sequence, n Integer) result.Result[Value] {
	switch {
	case n < 0:
		return result.Failuref[Value]("negative repetition count %d", n)
	case len(s) == 0 || n == 0:
		return ok(Sequence{})
	case n > maxRepeat/Integer(len(s)):
		return result.Failuref[Value]("repetition count %d too large", n)
	}

	out := make(Sequence, 0, len(s)*int(n))
	for range n {
		out = append(out, s...)
	}

	return ok(out)
}

// Div returns a / b. An integer quotient that divides exactly stays an
// integer; otherwise the result is real.
func Div(a, b Value) result.Result[Value] {
	switch y := b.(type) {
	case Integer:
		if y == 0 && IsNumeric(a) {
			return result.Failure[Value]("division by zero")
		}
	case Real:
		// -0.0 == 0 holds as well.
		if y == 0 && IsNumeric(a) {
			return result.Failure[Value]("division by zero")
		}
	}

	return arith("/", a, b,
		func(x, y Integer) Value {
			if x%y == 0 {
				return x / y
			}

			return Real(float64(x) / float64(y))
		},
		func(x, y float64) Value { return Real(x / y) })
}

// intDivision applies // or %, which need integer operands and a positive
// divisor.
func intDivision(op string, a, b Value, fn func(x, y Integer) Integer) result.Result[Value] {
	x, xi := a.(Integer)
	y, yi := b.(Integer)

	switch {
	case !xi || !yi:
		return unsupported(op)
	case y <= 0:
		return result.Failuref[Value]("divisor of %s must be positive, got %d", op, y)
	}

	return ok(fn(x, y))
}

// IntDiv returns the truncated quotient a // b of two integers.
func IntDiv(a, b Value) result.Result[Value] {
	return intDivision("//", a, b, func(x, y Integer) Integer { return x / y })
}

// Mod returns the truncated remainder a % b of two integers.
func Mod(a, b Value) result.Result[Value] {
	return intDivision("%", a, b, func(x, y Integer) Integer { return x % y })
}

// Pow returns a ** b. Two integers give an integer; otherwise the result is
// exp(ln(a) * b), so a negative real base yields NaN.
func Pow(a, b Value) result.Result[Value] {
	return arith("**", a, b,
		func(x, y Integer) Value {
			return Integer(int64(math.Pow(float64(x), float64(y))))
		},
		func(x, y float64) Value {
			return Real(math.Exp(math.Log(x) * y))
		})
}

// Neg returns -a.
func Neg(a Value) result.Result[Value] {
	switch x := a.(type) {
	case Integer:
		return ok(-x)
	case Real:
		return ok(-x)
	default:
		return unsupported("-")
	}
}

// logical unpacks a pair of logical operands.
func logical(a, b Value) (x, y, isLog bool) {
	l, lok := a.(Logical)
	r, rok := b.(Logical)

	return bool(l), bool(r), lok && rok
}

// And returns a and b. Both operands must be logical.
func And(a, b Value) result.Result[Value] {
	if x, y, isLog := logical(a, b); isLog {
		return ok(Logical(x && y))
	}

	return unsupported("and")
}

// Or returns a or b. Both operands must be logical.
func Or(a, b Value) result.Result[Value] {
	if x, y, isLog := logical(a, b); isLog {
		return ok(Logical(x || y))
	}

	return unsupported("or")
}

// Not returns not a.
func Not(a Value) result.Result[Value] {
	if l, isLog := a.(Logical); isLog {
		return ok(!l)
	}

	return unsupported("not")
}

// Compare orders two numbers, returning -1, 0 or +1. Integers compare
// exactly; a mixed pair compares as reals. NaN is unordered and fails.
func Compare(a, b Value) result.Result[int] {
	if x, isInt := a.(Integer); isInt {
		if y, isInt := b.(Integer); isInt {
			return result.Success(sign(x < y, x > y))
		}
	}

	x, xok := asFloat(a)
	y, yok := asFloat(b)

	if !xok || !yok || math.IsNaN(x) || math.IsNaN(y) {
		return result.Failure[int]("Illegal compare operation")
	}

	return result.Success(sign(x < y, x > y))
}

// asFloat promotes a number to float64.
func asFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Integer:
		return float64(x), true
	case Real:
		return float64(x), true
	}

	return 0, false
}

func sign(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	default:
		return 0
	}
}

func ordered(op string, a, b Value, test func(int) bool) result.Result[Value] {
	return result.Map(
		Compare(a, b).MapError(func(string) string { return "Illegal " + op + " operation" }),
		func(c int) Value { return Logical(test(c)) })
}

// Less returns a < b for numbers.
func Less(a, b Value) result.Result[Value] {
	return ordered("<", a, b, func(c int) bool { return c < 0 })
}

// Greater returns a > b for numbers.
func Greater(a, b Value) result.Result[Value] {
	return ordered(">", a, b, func(c int) bool { return c > 0 })
}

// LessEqual returns a <= b for numbers.
func LessEqual(a, b Value) result.Result[Value] {
	return ordered("<=", a, b, func(c int) bool { return c <= 0 })
}

// GreaterEqual returns a >= b for numbers.
func GreaterEqual(a, b Value) result.Result[Value] {
	return ordered(">=", a, b, func(c int) bool { return c >= 0 })
}

// Equal reports whether a and b are equal. Numbers compare by value across
// Integer and Real; other values compare structurally, and subroutines by
// identity. Equal never fails: values of different kinds are unequal.
func Equal(a, b Value) bool {
	if IsNumeric(a) && IsNumeric(b) {
		c, ordered := Compare(a, b).Value()

		return ordered && c == 0
	}

	switch x := a.(type) {
	case Empty:
		_, same := b.(Empty)

		return same
	case Logical:
		y, same := b.(Logical)

		return same && x == y
	case Text:
		y, same := b.(Text)

		return same && x == y
	case Sequence:
		y, same := b.(Sequence)
		if !same || len(x) != len(y) {
			return false
		}

		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}

		return true
	case *Procedure:
		y, same := b.(*Procedure)

		return same && x == y
	case *Function:
		y, same := b.(*Function)

		return same && x == y
	case *Native:
		y, same := b.(*Native)

		return same && x == y
	default:
		return false
	}
}

// Length returns #a, the number of characters of a text or elements of a
// sequence.
func Length(a Value) result.Result[Value] {
	switch x := a.(type) {
	case Text:
		return ok(Integer(x.Len()))
	case Sequence:
		return ok(Integer(len(x)))
	default:
		return unsupported("#")
	}
}

// ElementAt returns the element of a text or sequence at the 1-based index
// i.
func ElementAt(a, i Value) result.Result[Value] {
	var n int

	switch x := a.(type) {
	case Text:
		n = x.Len()
	case Sequence:
		n = len(x)
	default:
		return unsupported("index")
	}

	idx, isInt := i.(Integer)
	if !isInt {
		return result.Failuref[Value]("index must be integer, got %s", i.Kind())
	}

	if idx < 1 || int64(idx) > int64(n) {
		return result.Failuref[Value]("index %d out of range [1, %d]", idx, n)
	}

	switch x := a.(type) {
	case Text:
		return ok(Text(string([]rune(string(x))[idx-1])))
	default:
		return ok(x.(Sequence)[idx-1])
	}
}

// Slice returns the elements of a text or sequence from start to end,
// inclusive and 1-based. A nil bound defaults to the start or end of a.
// An empty range is valid when start lies in [1, len+1].
func Slice(a, start, end Value) result.Result[Value] {
	var n int64

	switch x := a.(type) {
	case Text:
		n = int64(x.Len())
	case Sequence:
		n = int64(len(x))
	default:
		return unsupported("slice")
	}

	bound := func(v Value, def int64) (int64, bool) {
		if v == nil {
			return def, true
		}

		i, isInt := v.(Integer)

		return int64(i), isInt
	}

	s, sok := bound(start, 1)
	e, eok := bound(end, n)

	if !sok || !eok {
		return result.Failure[Value]("slice bounds must be integer")
	}

	count := e - s + 1

	switch {
	case count < 0:
		return result.Failuref[Value]("invalid slice [%d:%d]", s, e)
	case count == 0:
		if s < 1 || s > n+1 {
			return result.Failuref[Value]("slice [%d:%d] out of range [1, %d]", s, e, n)
		}
	case s < 1 || e > n:
		return result.Failuref[Value]("slice [%d:%d] out of range [1, %d]", s, e, n)
	}

	switch x := a.(type) {
	case Text:
		return ok(Text(string([]rune(string(x))[s-1 : s-1+count])))
	default:
		out := make(Sequence, count)
		copy(out, x.(Sequence)[s-1:s-1+count])

		return ok(out)
	}
}
