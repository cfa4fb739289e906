package rowset

import (
	"fmt"
	"iter"
)

// RecordSet provides access to the data returned by an executed statement.
// Row and column indices are zero-based. It adds cursor state, a lazy row
// cache, and typed, dynamically typed, and NULL-coalescing value access on
// top of the statement's extraction set.
//
// The usual way to obtain one:
//
//	st := rowset.NewStatement(session, "SELECT * FROM people")
//	if err := st.Execute(); err != nil { ... }
//	rs, err := rowset.NewRecordSet(st)
//
// or in one step with Query.
//
// A RecordSet and its cache are not safe for concurrent use without external
// synchronization, and Rows or RowIterators taken from it must not outlive
// it.
type RecordSet struct {
	stmt       *Statement
	currentRow int
	rowCache   map[int]*Row
	beginIt    *RowIterator
	endIt      *RowIterator
}

// NewRecordSet wraps an executed statement. Wrapping a statement that has
// not been executed is an ErrInvalidState.
func NewRecordSet(stmt *Statement) (*RecordSet, error) {
	if !stmt.Executed() {
		return nil, errNotExecuted()
	}
	return &RecordSet{
		stmt:     stmt,
		rowCache: make(map[int]*Row),
	}, nil
}

// Query executes the query against the session and wraps the result.
func Query(session *Session, query string, opts ...StatementOption) (*RecordSet, error) {
	stmt := NewStatement(session, query, opts...)
	if err := stmt.Execute(); err != nil {
		return nil, err
	}
	return NewRecordSet(stmt)
}

// Assign rebinds the RecordSet to another executed statement. The cursor
// resets to row 0 and all cached rows and sentinels are discarded; the new
// extraction set replaces the old one outright.
func (rs *RecordSet) Assign(stmt *Statement) error {
	if !stmt.Executed() {
		return errNotExecuted()
	}
	rs.stmt = stmt
	rs.currentRow = 0
	rs.rowCache = make(map[int]*Row)
	rs.beginIt = nil
	rs.endIt = nil
	return nil
}

// Statement exposes the underlying execution context.
func (rs *RecordSet) Statement() *Statement { return rs.stmt }

// RowCount returns the number of rows; every extraction of the statement
// reports this same count.
func (rs *RecordSet) RowCount() int { return rs.stmt.RowsHandled() }

// ColumnCount returns the number of columns in the extraction set.
func (rs *RecordSet) ColumnCount() int { return len(rs.stmt.Extractions()) }

// CurrentRow returns the cursor position.
func (rs *RecordSet) CurrentRow() int { return rs.currentRow }

func (rs *RecordSet) extraction(pos int) (Extraction, error) {
	exts := rs.stmt.Extractions()
	if pos < 0 || pos >= len(exts) {
		return nil, errColumnRange(pos, len(exts))
	}
	return exts[pos], nil
}

// Value returns the boxed value at (col, row).
func (rs *RecordSet) Value(col, row int) (Value, error) {
	ext, err := rs.extraction(col)
	if err != nil {
		return Value{}, err
	}
	return ext.dynValue(row)
}

// ValueNamed returns the boxed value at (name, row). Name resolution is
// case-insensitive; with duplicate names the first occurrence by ordinal
// wins.
func (rs *RecordSet) ValueNamed(name string, row int) (Value, error) {
	pos, err := rs.stmt.position(name)
	if err != nil {
		return Value{}, err
	}
	return rs.Value(pos, row)
}

// CurrentValue returns the boxed value in column col of the cursor row.
func (rs *RecordSet) CurrentValue(col int) (Value, error) {
	return rs.Value(col, rs.currentRow)
}

// CurrentValueNamed returns the boxed value in the named column of the
// cursor row.
func (rs *RecordSet) CurrentValueNamed(name string) (Value, error) {
	return rs.ValueNamed(name, rs.currentRow)
}

// Nvl returns the value in the named column of the cursor row, or deflt
// boxed when that cell is NULL. The default may be of a different type than
// the column.
func (rs *RecordSet) Nvl(name string, deflt any) (Value, error) {
	pos, err := rs.stmt.position(name)
	if err != nil {
		return Value{}, err
	}
	return rs.NvlAt(pos, deflt)
}

// NvlAt is Nvl by column position.
func (rs *RecordSet) NvlAt(pos int, deflt any) (Value, error) {
	null, err := rs.stmt.IsNull(pos, rs.currentRow)
	if err != nil {
		return Value{}, err
	}
	if null {
		return ValueOf(deflt), nil
	}
	return rs.Value(pos, rs.currentRow)
}

// MoveFirst sets the cursor to the first row and reports whether the set has
// any rows.
func (rs *RecordSet) MoveFirst() bool {
	rs.currentRow = 0
	return rs.RowCount() > 0
}

// MoveNext advances the cursor. At the last row it reports false and leaves
// the cursor unchanged.
func (rs *RecordSet) MoveNext() bool {
	if rs.currentRow+1 >= rs.RowCount() {
		return false
	}
	rs.currentRow++
	return true
}

// MovePrevious steps the cursor back. At the first row it reports false and
// leaves the cursor unchanged.
func (rs *RecordSet) MovePrevious() bool {
	if rs.currentRow == 0 {
		return false
	}
	rs.currentRow--
	return true
}

// MoveLast sets the cursor to the last row and reports whether the set has
// any rows.
func (rs *RecordSet) MoveLast() bool {
	if rs.RowCount() == 0 {
		rs.currentRow = 0
		return false
	}
	rs.currentRow = rs.RowCount() - 1
	return true
}

// Begin returns the at-first-row sentinel iterator, created on first use and
// reused afterwards. For an empty set it equals End.
func (rs *RecordSet) Begin() *RowIterator {
	if rs.beginIt == nil {
		rs.beginIt = newRowIterator(rs, false)
	}
	return rs.beginIt
}

// End returns the past-the-end sentinel iterator, created on first use and
// reused afterwards. Dereferencing it fails.
func (rs *RecordSet) End() *RowIterator {
	if rs.endIt == nil {
		rs.endIt = newRowIterator(rs, true)
	}
	return rs.endIt
}

// Row returns the cached row view at pos, creating it on first access. The
// cache is append-only for the life of the RecordSet, so returned pointers
// stay valid regardless of access order.
func (rs *RecordSet) Row(pos int) (*Row, error) {
	if pos < 0 || pos >= rs.RowCount() {
		return nil, errRowRange(pos, rs.RowCount())
	}
	if row, ok := rs.rowCache[pos]; ok {
		return row, nil
	}
	row := &Row{rs: rs, pos: pos}
	rs.rowCache[pos] = row
	return row, nil
}

// Rows yields every row in order. Rows materialize through the cache, the
// same as Row.
func (rs *RecordSet) Rows() iter.Seq[*Row] {
	return func(yield func(*Row) bool) {
		for i := 0; i < rs.RowCount(); i++ {
			// i < RowCount, so Row cannot fail with a range error.
			row, _ := rs.Row(i)
			if !yield(row) {
				return
			}
		}
	}
}

// ColumnType returns the declared type of the column at pos.
func (rs *RecordSet) ColumnType(pos int) (ColumnType, error) {
	meta, err := rs.stmt.MetaColumnAt(pos)
	if err != nil {
		return TypeUnknown, err
	}
	return meta.Type(), nil
}

// ColumnTypeNamed returns the declared type of the named column.
func (rs *RecordSet) ColumnTypeNamed(name string) (ColumnType, error) {
	meta, err := rs.stmt.MetaColumnNamed(name)
	if err != nil {
		return TypeUnknown, err
	}
	return meta.Type(), nil
}

// ColumnName returns the name of the column at pos.
func (rs *RecordSet) ColumnName(pos int) (string, error) {
	meta, err := rs.stmt.MetaColumnAt(pos)
	if err != nil {
		return "", err
	}
	return meta.Name(), nil
}

// ColumnLength returns the declared maximum length of the column at pos.
func (rs *RecordSet) ColumnLength(pos int) (int, error) {
	meta, err := rs.stmt.MetaColumnAt(pos)
	if err != nil {
		return 0, err
	}
	return meta.Length(), nil
}

// ColumnLengthNamed returns the declared maximum length of the named column.
func (rs *RecordSet) ColumnLengthNamed(name string) (int, error) {
	meta, err := rs.stmt.MetaColumnNamed(name)
	if err != nil {
		return 0, err
	}
	return meta.Length(), nil
}

// ColumnPrecision returns the decimal precision of the column at pos, zero
// for non-floating types.
func (rs *RecordSet) ColumnPrecision(pos int) (int, error) {
	meta, err := rs.stmt.MetaColumnAt(pos)
	if err != nil {
		return 0, err
	}
	return meta.Precision(), nil
}

// ColumnPrecisionNamed returns the decimal precision of the named column.
func (rs *RecordSet) ColumnPrecisionNamed(name string) (int, error) {
	meta, err := rs.stmt.MetaColumnNamed(name)
	if err != nil {
		return 0, err
	}
	return meta.Precision(), nil
}

// IsNull reports whether the named column of the cursor row is NULL. The
// name resolves through the same first-match, case-insensitive lookup as
// every other named accessor.
func (rs *RecordSet) IsNull(name string) (bool, error) {
	pos, err := rs.stmt.position(name)
	if err != nil {
		return false, err
	}
	return rs.stmt.IsNull(pos, rs.currentRow)
}

// IsNullAt reports whether column pos of the cursor row is NULL.
func (rs *RecordSet) IsNullAt(pos int) (bool, error) {
	return rs.stmt.IsNull(pos, rs.currentRow)
}

// IsNullValue reports whether the cell at (pos, row) is NULL.
func (rs *RecordSet) IsNullValue(pos, row int) (bool, error) {
	return rs.stmt.IsNull(pos, row)
}

// ColumnAt downcasts the extraction at pos to its concrete typed column.
// Requesting an element type other than what the column holds is an
// ErrTypeMismatch, distinct from ErrRange and ErrNotFound.
func ColumnAt[T any](rs *RecordSet, pos int) (*Column[T], error) {
	ext, err := rs.extraction(pos)
	if err != nil {
		return nil, err
	}
	col, ok := ext.(*Column[T])
	if !ok {
		var zero T
		return nil, errColumnCast(pos, typeName(zero), ext.elemType())
	}
	return col, nil
}

// ColumnNamed is ColumnAt with case-insensitive name resolution.
func ColumnNamed[T any](rs *RecordSet, name string) (*Column[T], error) {
	pos, err := rs.stmt.position(name)
	if err != nil {
		return nil, err
	}
	return ColumnAt[T](rs, pos)
}

// ColumnShaped additionally checks the column's storage shape; a shape other
// than the requested one is an ErrTypeMismatch as well.
func ColumnShaped[T any](rs *RecordSet, pos int, kind StorageKind) (*Column[T], error) {
	col, err := ColumnAt[T](rs, pos)
	if err != nil {
		return nil, err
	}
	if normalizeKind(col.Kind()) != normalizeKind(kind) {
		return nil, errShapeCast(pos, kind, col.Kind())
	}
	return col, nil
}

// ValueAt reads the typed value at (col, row), dispatching at run time on
// the statement's storage kind to the matching shape-checked accessor. An
// unrecognized kind is an ErrInvalidState.
func ValueAt[T any](rs *RecordSet, col, row int) (T, error) {
	var zero T
	var c *Column[T]
	var err error
	switch rs.stmt.Storage() {
	case StorageSlice, StorageUnknown:
		c, err = ColumnShaped[T](rs, col, StorageSlice)
	case StorageList:
		c, err = ColumnShaped[T](rs, col, StorageList)
	case StorageDeque:
		c, err = ColumnShaped[T](rs, col, StorageDeque)
	default:
		return zero, errStorageKind(rs.stmt.Storage())
	}
	if err != nil {
		return zero, err
	}
	return c.Value(row)
}

// ValueNamed is ValueAt with case-insensitive name resolution.
func ValueNamed[T any](rs *RecordSet, name string, row int) (T, error) {
	pos, err := rs.stmt.position(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return ValueAt[T](rs, pos, row)
}

func normalizeKind(kind StorageKind) StorageKind {
	if kind == StorageUnknown {
		return StorageSlice
	}
	return kind
}

func typeName(v any) string {
	if v == nil {
		return "any"
	}
	return fmt.Sprintf("%T", v)
}
