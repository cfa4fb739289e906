package rowset

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openkvlab/boltdb"
	"go.uber.org/zap"
)

// Statement is the execution context behind a RecordSet: it compiles a query
// against a session, executes it, and owns the resulting extraction set. A
// RecordSet only ever reads what the statement extracted.
type Statement struct {
	session     *Session
	query       string
	storage     StorageKind
	limit       int
	extractions []Extraction
	executed    bool
	rows        int
}

type StatementOption func(*Statement)

// WithStorage selects the backing container shape for every extracted
// column. The default is the dense slice shape.
func WithStorage(kind StorageKind) StatementOption {
	return func(st *Statement) {
		st.storage = kind
	}
}

// WithLimit caps the number of extracted rows. A LIMIT clause in the query
// takes precedence.
func WithLimit(n int) StatementOption {
	return func(st *Statement) {
		st.limit = n
	}
}

func NewStatement(session *Session, query string, opts ...StatementOption) *Statement {
	st := &Statement{
		session: session,
		query:   query,
		storage: StorageSlice,
		limit:   -1,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

func (st *Statement) Query() string        { return st.query }
func (st *Statement) Storage() StorageKind { return st.storage }
func (st *Statement) Executed() bool       { return st.executed }

// Extractions returns the ordered type-erased column handles. Stable for the
// lifetime of any RecordSet wrapping this statement.
func (st *Statement) Extractions() []Extraction { return st.extractions }

// RowsHandled reports the number of rows the execution produced; every
// extraction holds exactly this many values.
func (st *Statement) RowsHandled() int { return st.rows }

// MetaColumnAt returns the descriptor of the column at pos.
func (st *Statement) MetaColumnAt(pos int) (*MetaColumn, error) {
	if pos < 0 || pos >= len(st.extractions) {
		return nil, errColumnRange(pos, len(st.extractions))
	}
	return st.extractions[pos].Meta(), nil
}

// MetaColumnNamed resolves name case-insensitively, first match by ordinal.
func (st *Statement) MetaColumnNamed(name string) (*MetaColumn, error) {
	pos, err := st.position(name)
	if err != nil {
		return nil, err
	}
	return st.extractions[pos].Meta(), nil
}

// IsNull reports whether the cell at (pos, row) is NULL.
func (st *Statement) IsNull(pos, row int) (bool, error) {
	if pos < 0 || pos >= len(st.extractions) {
		return false, errColumnRange(pos, len(st.extractions))
	}
	if row < 0 || row >= st.rows {
		return false, errRowRange(row, st.rows)
	}
	return st.extractions[pos].IsNull(row), nil
}

func (st *Statement) position(name string) (int, error) {
	for _, ext := range st.extractions {
		if strings.EqualFold(name, ext.Name()) {
			return ext.Position(), nil
		}
	}
	return 0, errUnknownColumn(name)
}

// Execute parses and runs the query, populating one typed column per
// selected output column. Calling it again re-extracts from scratch.
func (st *Statement) Execute() error {
	start := time.Now()
	stmtID := uuid.New()

	ast, err := parseSelect(st.query)
	if err != nil {
		return err
	}
	limit := st.limit
	if ast.Limit != nil {
		limit = *ast.Limit
	}

	err = st.session.view(func(tx *boltdb.Tx) error {
		table, err := loadTable(tx, ast.Table, st.session.maUn)
		if err != nil {
			return err
		}
		selected, err := resolveColumns(ast, table.defs)
		if err != nil {
			return err
		}
		binders := make([]binder, 0, len(selected))
		for pos, def := range selected {
			meta := NewMetaColumn(def.Name, pos, def.Type, def.Length, def.Precision, def.Nullable)
			b, err := newBinder(meta, st.storage)
			if err != nil {
				return err
			}
			binders = append(binders, b)
		}
		ops := make([]Op, 0, len(ast.Where))
		for _, cond := range ast.Where {
			stored := matchDef(table.defs, cond.Column)
			if stored == "" {
				return errUnknownColumn(cond.Column)
			}
			op, err := cond.op()
			if err != nil {
				return err
			}
			// Predicates key into decoded rows by the stored column name.
			op.col = stored
			ops = append(ops, op)
		}

		source, err := st.pickSource(table, ops)
		if err != nil {
			return err
		}
		rows := 0
		for row, err := range source {
			if err != nil {
				return err
			}
			match := true
			for _, op := range ops {
				ok, err := op.matches(row)
				if err != nil {
					return err
				}
				if !ok {
					match = false
					break
				}
			}
			if !match {
				continue
			}
			if limit >= 0 && rows >= limit {
				break
			}
			for i, def := range selected {
				if err := binders[i].bind(row[def.Name]); err != nil {
					return err
				}
			}
			rows++
		}

		st.extractions = make([]Extraction, len(binders))
		for i, b := range binders {
			st.extractions[i] = b.column()
		}
		st.rows = rows
		return nil
	})
	if err != nil {
		return err
	}
	st.executed = true
	st.session.log.Debug("statement executed",
		zap.String("id", stmtID.String()),
		zap.String("query", st.query),
		zap.Int("rows", st.rows),
		zap.Int("columns", len(st.extractions)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// pickSource prefers an index scan when some equality predicate hits an
// indexed column; everything else falls back to a full scan. The chosen
// predicate stays in the op list, where re-checking it is harmless.
func (st *Statement) pickSource(table *tableStore, ops []Op) (rowSeq, error) {
	for _, op := range ops {
		if op.opType != OpEq {
			continue
		}
		name := matchDef(table.defs, op.col)
		def := table.def(name)
		if def == nil || !def.Indexed {
			continue
		}
		key, err := indexKeyValue(def.Type, op.value)
		if err != nil {
			// Not coercible to the column type, so nothing can match.
			continue
		}
		return table.lookupEq(name, key)
	}
	return table.scan(), nil
}

// matchDef resolves a query identifier to the stored column name,
// case-insensitively. Returns "" when no column matches.
func matchDef(defs []ColumnDef, name string) string {
	for _, def := range defs {
		if strings.EqualFold(def.Name, name) {
			return def.Name
		}
	}
	return ""
}

func resolveColumns(ast *selectAST, defs []ColumnDef) ([]ColumnDef, error) {
	if ast.Star {
		return defs, nil
	}
	selected := make([]ColumnDef, 0, len(ast.Columns))
	for _, name := range ast.Columns {
		stored := matchDef(defs, name)
		if stored == "" {
			return nil, errUnknownColumn(name)
		}
		for _, def := range defs {
			if def.Name == stored {
				selected = append(selected, def)
				break
			}
		}
	}
	return selected, nil
}
