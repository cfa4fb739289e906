package rowset

import (
	"bytes"
	"encoding/binary"
	"iter"

	"github.com/openkvlab/boltdb"
)

const (
	metaKey         = "meta"
	dataBucketName  = "data"
	indexBucketName = "index"
)

// rowSeq streams decoded rows out of a table scan or index lookup.
type rowSeq = iter.Seq2[map[string]any, error]

// tableStore is one table inside the session's bolt file: a root bucket named
// after the table, holding the serialized column definitions under "meta", a
// "data" sub-bucket of sequence-id keyed rows, and one "index" sub-bucket per
// indexed column keyed by order-preserving value encoding.
type tableStore struct {
	bucket *boltdb.Bucket
	defs   []ColumnDef
	maUn   MarshalUnmarshaler
}

func createTable(tx *boltdb.Tx, name string, defs []ColumnDef, maUn MarshalUnmarshaler) (*tableStore, error) {
	if tx.Bucket([]byte(name)) != nil {
		return nil, ErrTableExists
	}
	bucket, err := tx.CreateBucket([]byte(name))
	if err != nil {
		return nil, err
	}
	defsBytes, err := MsgpackMaUn.Marshal(defs)
	if err != nil {
		return nil, err
	}
	if err := bucket.Put([]byte(metaKey), defsBytes); err != nil {
		return nil, err
	}
	if _, err := bucket.CreateBucketIfNotExists([]byte(dataBucketName)); err != nil {
		return nil, err
	}
	idxBucket, err := bucket.CreateBucketIfNotExists([]byte(indexBucketName))
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		if !def.Indexed {
			continue
		}
		if _, err := idxBucket.CreateBucketIfNotExists([]byte(def.Name)); err != nil {
			return nil, err
		}
	}
	return &tableStore{bucket: bucket, defs: defs, maUn: maUn}, nil
}

func loadTable(tx *boltdb.Tx, name string, maUn MarshalUnmarshaler) (*tableStore, error) {
	bucket := tx.Bucket([]byte(name))
	if bucket == nil {
		return nil, ErrTableNotFound
	}
	defsBytes := bucket.Get([]byte(metaKey))
	if defsBytes == nil {
		return nil, errMetaNotFound(name)
	}
	t := &tableStore{bucket: bucket, maUn: maUn}
	if err := MsgpackMaUn.Unmarshal(defsBytes, &t.defs); err != nil {
		return nil, err
	}
	return t, nil
}

func dropTable(tx *boltdb.Tx, name string) error {
	if tx.Bucket([]byte(name)) == nil {
		return ErrTableNotFound
	}
	return tx.DeleteBucket([]byte(name))
}

func (t *tableStore) dataBucket() *boltdb.Bucket {
	return t.bucket.Bucket([]byte(dataBucketName))
}

func (t *tableStore) indexBucket(col string) *boltdb.Bucket {
	idx := t.bucket.Bucket([]byte(indexBucketName))
	if idx == nil {
		return nil
	}
	return idx.Bucket([]byte(col))
}

func (t *tableStore) def(col string) *ColumnDef {
	for i := range t.defs {
		if t.defs[i].Name == col {
			return &t.defs[i]
		}
	}
	return nil
}

// insert validates row against the column definitions and stores it. Columns
// absent from the map become NULL when nullable. Indexed non-NULL values get
// an index entry keyed by ToKey(value) + row id.
func (t *tableStore) insert(table string, row map[string]any) error {
	for _, def := range t.defs {
		v, ok := row[def.Name]
		if (!ok || v == nil) && !def.Nullable {
			if !ok {
				return errMissingField(table, def.Name)
			}
			return errNotNullable(table, def.Name)
		}
	}
	id, err := t.dataBucket().NextSequence()
	if err != nil {
		return err
	}
	var idBytes [8]byte
	binary.BigEndian.PutUint64(idBytes[:], id)
	rowBytes, err := t.maUn.Marshal(row)
	if err != nil {
		return err
	}
	if err := t.dataBucket().Put(idBytes[:], rowBytes); err != nil {
		return err
	}
	for _, def := range t.defs {
		if !def.Indexed {
			continue
		}
		v, ok := row[def.Name]
		if !ok || v == nil {
			continue
		}
		// Index keys are normalized to the declared column type so that a
		// later lookup with an equal value of a different width finds them.
		keyVal, err := indexKeyValue(def.Type, v)
		if err != nil {
			return err
		}
		vKey, err := ToKey(keyVal)
		if err != nil {
			return err
		}
		compositeKey := make([]byte, len(vKey)+8)
		copy(compositeKey, vKey)
		copy(compositeKey[len(vKey):], idBytes[:])
		if err := t.indexBucket(def.Name).Put(compositeKey, nil); err != nil {
			return err
		}
	}
	return nil
}

// scan yields every stored row in insertion order.
func (t *tableStore) scan() rowSeq {
	return func(yield func(map[string]any, error) bool) {
		c := t.dataBucket().Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var row map[string]any
			if err := t.maUn.Unmarshal(v, &row); err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// lookupEq yields the rows whose indexed column equals val, using the index
// bucket. The caller passes a value already normalized by indexKeyValue and
// is expected to have checked that the column is indexed.
func (t *tableStore) lookupEq(col string, val any) (rowSeq, error) {
	vKey, err := ToKey(val)
	if err != nil {
		return nil, err
	}
	idx := t.indexBucket(col)
	if idx == nil {
		return nil, errUnknownColumn(col)
	}
	return func(yield func(map[string]any, error) bool) {
		c := idx.Cursor()
		for k, _ := c.Seek(vKey); k != nil; k, _ = c.Next() {
			if len(k) < 8 || !bytes.Equal(k[:len(k)-8], vKey) {
				return
			}
			rowBytes := t.dataBucket().Get(k[len(k)-8:])
			if rowBytes == nil {
				continue
			}
			var row map[string]any
			if err := t.maUn.Unmarshal(rowBytes, &row); err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !yield(row, nil) {
				return
			}
		}
	}, nil
}
