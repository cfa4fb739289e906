package rowset

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package wraps exactly one of
// these sentinels, so callers can classify with errors.Is.
var (
	// ErrRange reports a row or column index outside [0, count).
	ErrRange = errors.New("index out of range")
	// ErrNotFound reports a column name that resolves to no column.
	ErrNotFound = errors.New("column not found")
	// ErrTypeMismatch reports a typed access whose requested element type or
	// storage shape differs from what the column actually holds.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidState reports a broken internal invariant, such as an
	// unrecognized storage kind or use of a statement before execution.
	// It indicates a programming defect, not bad user input.
	ErrInvalidState = errors.New("invalid state")
)

var (
	errColumnRange = func(pos, n int) error {
		return fmt.Errorf("%w: column index %d, have %d columns", ErrRange, pos, n)
	}
	errRowRange = func(pos, n int) error {
		return fmt.Errorf("%w: row index %d, have %d rows", ErrRange, pos, n)
	}
	errUnknownColumn = func(name string) error {
		return fmt.Errorf("%w: unknown column name %q", ErrNotFound, name)
	}
	errColumnCast = func(pos int, want, got string) error {
		return fmt.Errorf("%w: column %d holds %s, requested %s", ErrTypeMismatch, pos, got, want)
	}
	errShapeCast = func(pos int, want, got StorageKind) error {
		return fmt.Errorf("%w: column %d stored as %s, requested %s", ErrTypeMismatch, pos, got, want)
	}
	errValueConvert = func(v any, want string) error {
		return fmt.Errorf("%w: cannot convert %T to %s", ErrTypeMismatch, v, want)
	}
	errStorageKind = func(kind StorageKind) error {
		return fmt.Errorf("%w: unrecognized storage kind %d", ErrInvalidState, int(kind))
	}
	errNotExecuted = func() error {
		return fmt.Errorf("%w: statement has not been executed", ErrInvalidState)
	}
	errEndDeref = func() error {
		return fmt.Errorf("%w: dereferenced past-the-end iterator", ErrRange)
	}
)

// Storage/session errors surfaced from the execution layer.
var (
	ErrTableNotFound = errors.New("table not found")
	ErrTableExists   = errors.New("table already exists")

	errMissingField = func(table, col string) error {
		return fmt.Errorf("table %s: row is missing column %s", table, col)
	}
	errNotNullable = func(table, col string) error {
		return fmt.Errorf("table %s: column %s is not nullable", table, col)
	}
	errCannotMarshal = func(v any) error {
		return fmt.Errorf("cannot marshal value '%v' of type %T", v, v)
	}
	errCannotUnmarshal = func(v any) error {
		return fmt.Errorf("cannot unmarshal into %T", v)
	}
	errMetaNotFound = func(table string) error {
		return fmt.Errorf("table %s: metadata record not found", table)
	}
	errUnsupportedOp = func(op OpType) error {
		return fmt.Errorf("unsupported operator: %d", op)
	}
	errUnsupportedCompare = func(a, b any) error {
		return fmt.Errorf("%w: cannot compare %T with %T", ErrTypeMismatch, a, b)
	}
)
