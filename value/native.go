package value

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnsupportedType is returned by [FromNative] for Go values that have no
// Rapira counterpart.
var ErrUnsupportedType = errors.New("unsupported native type")

// ToNative converts v to a plain Go value: nil, bool, int64, float64,
// string or []any. Subroutines convert to their literal form.
func ToNative(v Value) any {
	switch x := v.(type) {
	case Empty:
		return nil
	case Logical:
		return bool(x)
	case Integer:
		return int64(x)
	case Real:
		return float64(x)
	case Text:
		return string(x)
	case Sequence:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = ToNative(e)
		}

		return out
	case nil:
		return nil
	default:
		return x.String()
	}
}

// FromNative converts a plain Go value to a [Value]. Booleans, integers,
// floats, strings and slices or arrays of those are supported; nil becomes
// Empty.
func FromNative(x any) (Value, error) {
	switch n := x.(type) {
	case nil:
		return Empty{}, nil
	case Value:
		return n, nil
	case bool:
		return Logical(n), nil
	case string:
		return Text(n), nil
	case []byte:
		return Text(n), nil
	}

	rv := reflect.ValueOf(x)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Integer(int64(rv.Uint())), nil //nolint:gosec
	case reflect.Float32, reflect.Float64:
		return Real(rv.Float()), nil
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Bool:
		return Logical(rv.Bool()), nil
	case reflect.Slice, reflect.Array:
		seq := make(Sequence, rv.Len())

		for i := range rv.Len() {
			e, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}

			seq[i] = e
		}

		return seq, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Empty{}, nil
		}

		return FromNative(rv.Elem().Interface())
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
	}
}
