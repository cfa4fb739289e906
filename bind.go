package rowset

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// binder is an Extraction that can also absorb decoded store values. One
// binder per selected column is created at statement preparation; execution
// feeds every matching row through it.
type binder interface {
	Extraction
	bind(v any) error
	// column returns the typed column the binder fills. The statement
	// publishes this, not the binder itself, so typed downcasts against the
	// extraction set see a *Column[T].
	column() Extraction
}

type typedBinder[T any] struct {
	*Column[T]
	coerce func(any) (T, error)
}

func (b typedBinder[T]) column() Extraction { return b.Column }

func (b typedBinder[T]) bind(v any) error {
	if v == nil {
		var zero T
		b.Append(zero, true)
		return nil
	}
	cv, err := b.coerce(v)
	if err != nil {
		return err
	}
	b.Append(cv, false)
	return nil
}

// newBinder builds the typed column behind one MetaColumn. The declared
// column type picks the Go element type; the storage kind picks the shape.
func newBinder(meta *MetaColumn, kind StorageKind) (binder, error) {
	switch meta.Type() {
	case TypeBool:
		return makeBinder(meta, kind, coerceBool)
	case TypeInt8:
		return makeBinder(meta, kind, coerceSigned[int8](math.MinInt8, math.MaxInt8))
	case TypeInt16:
		return makeBinder(meta, kind, coerceSigned[int16](math.MinInt16, math.MaxInt16))
	case TypeInt32:
		return makeBinder(meta, kind, coerceSigned[int32](math.MinInt32, math.MaxInt32))
	case TypeInt64:
		return makeBinder(meta, kind, coerceSigned[int64](math.MinInt64, math.MaxInt64))
	case TypeFloat:
		return makeBinder(meta, kind, coerceFloat32)
	case TypeDouble:
		return makeBinder(meta, kind, coerceFloat64)
	case TypeString:
		return makeBinder(meta, kind, coerceString)
	case TypeBlob:
		return makeBinder(meta, kind, coerceBlob)
	case TypeTimestamp:
		return makeBinder(meta, kind, coerceTime)
	case TypeUUID:
		return makeBinder(meta, kind, coerceUUID)
	}
	// Unknown columns stay dynamically typed.
	return makeBinder(meta, kind, func(v any) (any, error) { return v, nil })
}

func makeBinder[T any](meta *MetaColumn, kind StorageKind, coerce func(any) (T, error)) (binder, error) {
	col, err := NewColumn[T](meta, kind)
	if err != nil {
		return nil, err
	}
	return typedBinder[T]{Column: col, coerce: coerce}, nil
}

// indexKeyValue normalizes a cell to the canonical ordered-encodable form
// for its column type. Inserts and lookups both go through this, so equal
// values always produce identical index keys.
func indexKeyValue(t ColumnType, v any) (any, error) {
	switch t {
	case TypeBool:
		b, err := coerceBool(v)
		if err != nil {
			return nil, err
		}
		if b {
			return int64(1), nil
		}
		return int64(0), nil
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		n, ok := asInt64(v)
		if !ok {
			return nil, errValueConvert(v, t.String())
		}
		return n, nil
	case TypeFloat, TypeDouble:
		f, ok := asFloat(v)
		if !ok {
			return nil, errValueConvert(v, t.String())
		}
		return floatKeyBits(f), nil
	case TypeString:
		return coerceString(v)
	case TypeBlob:
		b, err := coerceBlob(v)
		if err != nil {
			return nil, err
		}
		return b, nil
	case TypeTimestamp:
		ts, err := coerceTime(v)
		if err != nil {
			return nil, err
		}
		return ts.UnixNano(), nil
	case TypeUUID:
		u, err := coerceUUID(v)
		if err != nil {
			return nil, err
		}
		return u[:], nil
	}
	return nil, errValueConvert(v, t.String())
}

// floatKeyBits maps a float64 to a uint64 whose unsigned order matches the
// float order, the usual sign-flip transform.
func floatKeyBits(f float64) uint64 {
	bits := math.Float64bits(f)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | 1<<63
}

func coerceBool(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, errValueConvert(v, "bool")
}

// asInt64 widens any integral value, including float values without a
// fractional part, which is how JSON-sourced numbers arrive.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), n <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float32:
		return int64(n), float32(int64(n)) == n
	case float64:
		return int64(n), float64(int64(n)) == n
	}
	return 0, false
}

func coerceSigned[T int8 | int16 | int32 | int64](lo, hi int64) func(any) (T, error) {
	return func(v any) (T, error) {
		n, ok := asInt64(v)
		if !ok || n < lo || n > hi {
			var zero T
			return zero, errValueConvert(v, columnTypeNames[typeOfSigned[T]()])
		}
		return T(n), nil
	}
}

func typeOfSigned[T int8 | int16 | int32 | int64]() ColumnType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return TypeInt8
	case int16:
		return TypeInt16
	case int32:
		return TypeInt32
	}
	return TypeInt64
}

func coerceFloat32(v any) (float32, error) {
	if f, ok := asFloat(v); ok {
		return float32(f), nil
	}
	return 0, errValueConvert(v, "float")
}

func coerceFloat64(v any) (float64, error) {
	if f, ok := asFloat(v); ok {
		return f, nil
	}
	return 0, errValueConvert(v, "double")
}

func coerceString(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", errValueConvert(v, "string")
}

func coerceBlob(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	}
	return nil, errValueConvert(v, "blob")
}

func coerceTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, errValueConvert(v, "timestamp")
		}
		return parsed, nil
	}
	return time.Time{}, errValueConvert(v, "timestamp")
}

func coerceUUID(v any) (uuid.UUID, error) {
	switch u := v.(type) {
	case uuid.UUID:
		return u, nil
	case string:
		parsed, err := uuid.Parse(u)
		if err != nil {
			return uuid.UUID{}, errValueConvert(v, "uuid")
		}
		return parsed, nil
	case []byte:
		parsed, err := uuid.FromBytes(u)
		if err != nil {
			return uuid.UUID{}, errValueConvert(v, "uuid")
		}
		return parsed, nil
	}
	return uuid.UUID{}, errValueConvert(v, "uuid")
}
