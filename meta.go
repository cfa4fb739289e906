package rowset

import "fmt"

// ColumnType tags the declared element type of a result column.
type ColumnType uint8

const (
	TypeUnknown ColumnType = iota
	TypeBool
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat
	TypeDouble
	TypeString
	TypeBlob
	TypeTimestamp
	TypeUUID
)

var columnTypeNames = map[ColumnType]string{
	TypeUnknown:   "unknown",
	TypeBool:      "bool",
	TypeInt8:      "int8",
	TypeInt16:     "int16",
	TypeInt32:     "int32",
	TypeInt64:     "int64",
	TypeFloat:     "float",
	TypeDouble:    "double",
	TypeString:    "string",
	TypeBlob:      "blob",
	TypeTimestamp: "timestamp",
	TypeUUID:      "uuid",
}

func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ColumnType(%d)", uint8(t))
}

// ParseColumnType maps a type name back to its tag. Unrecognized names map to
// TypeUnknown with ok == false.
func ParseColumnType(name string) (ColumnType, bool) {
	for t, n := range columnTypeNames {
		if n == name {
			return t, true
		}
	}
	return TypeUnknown, false
}

// MetaColumn is the static descriptor of one result column. It is built when
// the statement is prepared and never mutated afterwards. Name lookups against
// it are case-insensitive.
type MetaColumn struct {
	name      string
	position  int
	typ       ColumnType
	length    int
	precision int
	nullable  bool
}

func NewMetaColumn(name string, position int, typ ColumnType, length, precision int, nullable bool) *MetaColumn {
	return &MetaColumn{
		name:      name,
		position:  position,
		typ:       typ,
		length:    length,
		precision: precision,
		nullable:  nullable,
	}
}

func (m *MetaColumn) Name() string     { return m.name }
func (m *MetaColumn) Position() int    { return m.position }
func (m *MetaColumn) Type() ColumnType { return m.typ }

// Length is the declared maximum length, zero when unbounded.
func (m *MetaColumn) Length() int { return m.length }

// Precision is the declared decimal precision, meaningful for floating point
// columns only and zero for every other type.
func (m *MetaColumn) Precision() int { return m.precision }

func (m *MetaColumn) Nullable() bool { return m.nullable }

// ColumnDef declares one column of a stored table. It is the persisted,
// user-facing counterpart of MetaColumn.
type ColumnDef struct {
	Name      string
	Type      ColumnType
	Length    int
	Precision int
	Nullable  bool
	Indexed   bool
}
