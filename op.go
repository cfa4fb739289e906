package rowset

import (
	"bytes"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	OpEq = OpType(0b0010)
	OpNe = OpType(0b0101)
	OpGt = OpType(0b0100)
	OpLt = OpType(0b0001)
	OpGe = OpType(0b0110)
	OpLe = OpType(0b0011)
)

type OpType uint8

// Op is one comparison predicate applied to a named column during statement
// execution.
type Op struct {
	col    string
	value  any
	opType OpType
}

func Eq(col string, value any) Op {
	return Op{col: col, value: value, opType: OpEq}
}

func Ne(col string, value any) Op {
	return Op{col: col, value: value, opType: OpNe}
}

func Gt(col string, value any) Op {
	return Op{col: col, value: value, opType: OpGt}
}

func Lt(col string, value any) Op {
	return Op{col: col, value: value, opType: OpLt}
}

func Ge(col string, value any) Op {
	return Op{col: col, value: value, opType: OpGe}
}

func Le(col string, value any) Op {
	return Op{col: col, value: value, opType: OpLe}
}

func (o Op) Column() string { return o.col }

// matches evaluates the predicate against one decoded row. A NULL cell never
// matches, SQL-style.
func (o Op) matches(row map[string]any) (bool, error) {
	v, ok := row[o.col]
	if !ok || v == nil {
		return false, nil
	}
	cmp, err := compareAny(v, o.value)
	if err != nil {
		return false, err
	}
	switch o.opType {
	case OpEq:
		return cmp == 0, nil
	case OpNe:
		return cmp != 0, nil
	case OpGt:
		return cmp > 0, nil
	case OpLt:
		return cmp < 0, nil
	case OpGe:
		return cmp >= 0, nil
	case OpLe:
		return cmp <= 0, nil
	}
	return false, errUnsupportedOp(o.opType)
}

// compareAny orders two scalar values, converting across numeric widths.
func compareAny(a, b any) (int, error) {
	if fa, okA := asFloat(a); okA {
		fb, okB := asFloat(b)
		if !okB {
			return 0, errUnsupportedCompare(a, b)
		}
		switch {
		case fa < fb:
			return -1, nil
		case fa > fb:
			return 1, nil
		}
		return 0, nil
	}
	switch va := a.(type) {
	case string:
		if vb, ok := b.(string); ok {
			return strings.Compare(va, vb), nil
		}
	case bool:
		if vb, ok := b.(bool); ok {
			switch {
			case va == vb:
				return 0, nil
			case vb:
				return -1, nil
			}
			return 1, nil
		}
	case []byte:
		if vb, ok := b.([]byte); ok {
			return bytes.Compare(va, vb), nil
		}
	case time.Time:
		if vb, ok := b.(time.Time); ok {
			return va.Compare(vb), nil
		}
	case uuid.UUID:
		if vb, ok := b.(uuid.UUID); ok {
			return bytes.Compare(va[:], vb[:]), nil
		}
	}
	return 0, errUnsupportedCompare(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
