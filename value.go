package rowset

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Value is a dynamically typed, NULL-aware wrapper around one cell. It trades
// compile-time type safety for a single uniform return type: the dynamic
// access path of a RecordSet boxes every supported column type into a Value.
type Value struct {
	v    any
	null bool
}

// ValueOf boxes v. A nil v yields the NULL value.
func ValueOf(v any) Value {
	if v == nil {
		return Null()
	}
	return Value{v: v}
}

// Null returns the NULL value.
func Null() Value {
	return Value{null: true}
}

func (v Value) IsNull() bool { return v.null }

// Any returns the boxed value, nil when NULL.
func (v Value) Any() any {
	if v.null {
		return nil
	}
	return v.v
}

// Bool converts the boxed value to bool.
func (v Value) Bool() (bool, error) {
	if b, ok := v.v.(bool); ok && !v.null {
		return b, nil
	}
	return false, errValueConvert(v.Any(), "bool")
}

// Int64 converts the boxed value to int64, widening smaller signed integers.
func (v Value) Int64() (int64, error) {
	if v.null {
		return 0, errValueConvert(nil, "int64")
	}
	switch n := v.v.(type) {
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	}
	return 0, errValueConvert(v.v, "int64")
}

// Float64 converts the boxed value to float64. Integers widen losslessly up
// to 53 bits; the caller accepts rounding beyond that, as with any float.
func (v Value) Float64() (float64, error) {
	if v.null {
		return 0, errValueConvert(nil, "float64")
	}
	switch n := v.v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	}
	if n, err := v.Int64(); err == nil {
		return float64(n), nil
	}
	return 0, errValueConvert(v.v, "float64")
}

// Str converts the boxed value to string.
func (v Value) Str() (string, error) {
	if s, ok := v.v.(string); ok && !v.null {
		return s, nil
	}
	return "", errValueConvert(v.Any(), "string")
}

// Bytes converts the boxed value to a byte slice.
func (v Value) Bytes() ([]byte, error) {
	if b, ok := v.v.([]byte); ok && !v.null {
		return b, nil
	}
	return nil, errValueConvert(v.Any(), "[]byte")
}

// Time converts the boxed value to time.Time.
func (v Value) Time() (time.Time, error) {
	if t, ok := v.v.(time.Time); ok && !v.null {
		return t, nil
	}
	return time.Time{}, errValueConvert(v.Any(), "time.Time")
}

// UUID converts the boxed value to uuid.UUID.
func (v Value) UUID() (uuid.UUID, error) {
	if u, ok := v.v.(uuid.UUID); ok && !v.null {
		return u, nil
	}
	return uuid.UUID{}, errValueConvert(v.Any(), "uuid.UUID")
}

// Equal reports whether two values hold the same logical content. Two NULLs
// are equal; numeric values compare across widths.
func (v Value) Equal(other Value) bool {
	if v.null || other.null {
		return v.null == other.null
	}
	if ba, err := v.Bytes(); err == nil {
		bb, err := other.Bytes()
		return err == nil && bytes.Equal(ba, bb)
	}
	if na, errA := v.Int64(); errA == nil {
		if nb, errB := other.Int64(); errB == nil {
			return na == nb
		}
		// Mixed integer and float compares as float below.
	}
	if fa, err := v.Float64(); err == nil {
		fb, err := other.Float64()
		return err == nil && fa == fb
	}
	if ta, err := v.Time(); err == nil {
		tb, err := other.Time()
		return err == nil && ta.Equal(tb)
	}
	return v.v == other.v
}

// String renders the value for display. NULL renders as "NULL".
func (v Value) String() string {
	if v.null {
		return "NULL"
	}
	switch b := v.v.(type) {
	case []byte:
		return fmt.Sprintf("%x", b)
	case time.Time:
		return b.Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", v.v)
}
