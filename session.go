package rowset

import (
	"os"

	"github.com/openkvlab/boltdb"
	"go.uber.org/zap"
)

// Session is a handle on one store file. Statements execute against it and
// RecordSets read what those statements extracted.
type Session struct {
	db   *boltdb.DB
	maUn MarshalUnmarshaler
	log  *zap.Logger
}

type Options = boltdb.Options

type SessionOption func(*Session)

// WithMarshaler selects the row codec, msgpack by default.
func WithMarshaler(maUn MarshalUnmarshaler) SessionOption {
	return func(s *Session) {
		s.maUn = maUn
	}
}

// WithLogger attaches a logger for statement execution tracing. Without it
// the session is silent.
func WithLogger(log *zap.Logger) SessionOption {
	return func(s *Session) {
		s.log = log
	}
}

// Open opens or creates the store file at path.
func Open(path string, mode os.FileMode, options *Options, opts ...SessionOption) (*Session, error) {
	db, err := boltdb.Open(path, mode, options)
	if err != nil {
		return nil, err
	}
	s := &Session{
		db:   db,
		maUn: MsgpackMaUn,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) Close() error {
	return s.db.Close()
}

// CreateTable creates a table with the given column definitions.
func (s *Session) CreateTable(name string, defs []ColumnDef) error {
	err := s.db.Update(func(tx *boltdb.Tx) error {
		_, err := createTable(tx, name, defs, s.maUn)
		return err
	})
	if err == nil {
		s.log.Debug("table created", zap.String("table", name), zap.Int("columns", len(defs)))
	}
	return err
}

// DropTable deletes a table and its indexes.
func (s *Session) DropTable(name string) error {
	return s.db.Update(func(tx *boltdb.Tx) error {
		return dropTable(tx, name)
	})
}

// Insert stores one row. Columns absent from the map become NULL when the
// definition allows it.
func (s *Session) Insert(table string, row map[string]any) error {
	return s.db.Update(func(tx *boltdb.Tx) error {
		t, err := loadTable(tx, table, s.maUn)
		if err != nil {
			return err
		}
		return t.insert(table, row)
	})
}

// InsertRows stores several rows in one transaction.
func (s *Session) InsertRows(table string, rows []map[string]any) error {
	return s.db.Update(func(tx *boltdb.Tx) error {
		t, err := loadTable(tx, table, s.maUn)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := t.insert(table, row); err != nil {
				return err
			}
		}
		return nil
	})
}

// Tables lists the table names in the store.
func (s *Session) Tables() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *boltdb.Tx) error {
		return tx.ForEach(func(name []byte, _ *boltdb.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// TableColumns reads the column definitions of a table.
func (s *Session) TableColumns(table string) ([]ColumnDef, error) {
	var defs []ColumnDef
	err := s.db.View(func(tx *boltdb.Tx) error {
		t, err := loadTable(tx, table, s.maUn)
		if err != nil {
			return err
		}
		defs = t.defs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

func (s *Session) view(fn func(tx *boltdb.Tx) error) error {
	return s.db.View(fn)
}
