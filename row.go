package rowset

import (
	"fmt"
	"strings"
)

// Row is a single-row view into a RecordSet: it projects one fixed index
// across all columns. Rows do not own column data and must not outlive the
// RecordSet they came from. The RecordSet creates a Row at most once per
// index and hands out the cached pointer afterwards.
type Row struct {
	rs  *RecordSet
	pos int
}

// Index is the fixed zero-based row position inside the owning RecordSet.
func (r *Row) Index() int { return r.pos }

// Get returns the raw value in the named column, nil for NULL.
func (r *Row) Get(name string) (any, error) {
	v, err := r.Value(name)
	if err != nil {
		return nil, err
	}
	return v.Any(), nil
}

// Value returns the boxed value in the named column.
func (r *Row) Value(name string) (Value, error) {
	return r.rs.ValueNamed(name, r.pos)
}

// ValueAt returns the boxed value in the column at pos.
func (r *Row) ValueAt(pos int) (Value, error) {
	return r.rs.Value(pos, r.pos)
}

// Values returns the row's cells in column order.
func (r *Row) Values() ([]Value, error) {
	values := make([]Value, r.rs.ColumnCount())
	for i := range values {
		v, err := r.rs.Value(i, r.pos)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// ToMap returns the row keyed by column name, nil entries for NULL cells.
func (r *Row) ToMap() (map[string]any, error) {
	result := make(map[string]any, r.rs.ColumnCount())
	for i := 0; i < r.rs.ColumnCount(); i++ {
		name, err := r.rs.ColumnName(i)
		if err != nil {
			return nil, err
		}
		v, err := r.rs.Value(i, r.pos)
		if err != nil {
			return nil, err
		}
		result[name] = v.Any()
	}
	return result, nil
}

// Equal reports whether both rows view the same index of the same RecordSet.
func (r *Row) Equal(other *Row) bool {
	if other == nil {
		return false
	}
	return r.rs == other.rs && r.pos == other.pos
}

// String renders the row's cells tab-separated, NULL cells as "NULL".
func (r *Row) String() string {
	values, err := r.Values()
	if err != nil {
		return fmt.Sprintf("<row %d: %v>", r.pos, err)
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, "\t")
}
