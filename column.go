package rowset

// Extraction is the type-erased handle over one typed column. A statement
// holds columns of heterogeneous element types in one ordered collection, so
// the concrete Column[T] hides behind this interface; getting the typed
// column back is an explicit, fallible downcast (ColumnAt, ColumnNamed).
type Extraction interface {
	Meta() *MetaColumn
	Name() string
	Position() int
	// RowsHandled reports how many values the extraction holds. All
	// extractions of one statement report the same count.
	RowsHandled() int
	IsNull(row int) bool
	Kind() StorageKind

	// dynValue boxes the value at row for the dynamic access path.
	dynValue(row int) (Value, error)
	// elemType names the concrete element type for cast diagnostics.
	elemType() string
}

// Column is an ordered, typed container of values for one result column,
// backed by the statement's configured storage shape and tagged with its
// MetaColumn. NULL cells carry the element zero value in the store and are
// tracked separately.
type Column[T any] struct {
	meta  *MetaColumn
	shape StorageKind
	data  store[T]
	nulls []bool
}

// NewColumn builds an empty column with the given descriptor and shape.
func NewColumn[T any](meta *MetaColumn, kind StorageKind) (*Column[T], error) {
	data, err := newStore[T](kind)
	if err != nil {
		return nil, err
	}
	return &Column[T]{
		meta:  meta,
		shape: kind,
		data:  data,
	}, nil
}

// Append adds one cell. A null cell stores the zero value and sets the null
// flag for its row.
func (c *Column[T]) Append(v T, null bool) {
	c.data.push(v)
	c.nulls = append(c.nulls, null)
}

// Value returns the element at row.
func (c *Column[T]) Value(row int) (T, error) {
	var zero T
	if row < 0 || row >= c.data.len() {
		return zero, errRowRange(row, c.data.len())
	}
	return c.data.at(row), nil
}

func (c *Column[T]) Meta() *MetaColumn { return c.meta }
func (c *Column[T]) Name() string      { return c.meta.Name() }
func (c *Column[T]) Position() int     { return c.meta.Position() }
func (c *Column[T]) Kind() StorageKind { return c.shape }

func (c *Column[T]) RowsHandled() int { return c.data.len() }

func (c *Column[T]) IsNull(row int) bool {
	return row >= 0 && row < len(c.nulls) && c.nulls[row]
}

func (c *Column[T]) dynValue(row int) (Value, error) {
	if row < 0 || row >= c.data.len() {
		return Value{}, errRowRange(row, c.data.len())
	}
	if c.nulls[row] {
		return Null(), nil
	}
	return ValueOf(c.data.at(row)), nil
}

func (c *Column[T]) elemType() string {
	var zero T
	return typeName(zero)
}
