package rowset

// RowIterator is a cursor over the rows of a RecordSet: a non-owning
// back-reference, a current index, and a past-the-end flag. Equality is
// defined by (RecordSet identity, index, end flag), so a cloned iterator
// walked to the end compares equal to the End sentinel.
//
// Begin and End of a RecordSet return shared sentinel iterators; call Clone
// before advancing, the sentinels themselves are fixed markers.
type RowIterator struct {
	rs  *RecordSet
	pos int
	end bool
}

func newRowIterator(rs *RecordSet, toEnd bool) *RowIterator {
	it := &RowIterator{rs: rs}
	if toEnd || rs.RowCount() == 0 {
		// An empty set begins at its end, so Begin equals End.
		it.pos = rs.RowCount()
		it.end = true
	}
	return it
}

// Clone returns an independent iterator at the same position.
func (it *RowIterator) Clone() *RowIterator {
	clone := *it
	return &clone
}

// Index returns the current row position. Meaningless when AtEnd.
func (it *RowIterator) Index() int { return it.pos }

func (it *RowIterator) AtEnd() bool { return it.end }

// Row dereferences the iterator. Dereferencing the past-the-end marker
// fails, mirroring half-open-range iteration.
func (it *RowIterator) Row() (*Row, error) {
	if it.end {
		return nil, errEndDeref()
	}
	return it.rs.Row(it.pos)
}

// Next advances by one row and reports whether the iterator still points at
// a valid row. Advancing past the last row parks it at the end marker.
func (it *RowIterator) Next() bool {
	if it.end {
		return false
	}
	if it.pos+1 < it.rs.RowCount() {
		it.pos++
		return true
	}
	it.pos = it.rs.RowCount()
	it.end = true
	return false
}

// Prev steps back by one row. Stepping back from the end marker lands on the
// last row.
func (it *RowIterator) Prev() bool {
	if it.end {
		if it.rs.RowCount() == 0 {
			return false
		}
		it.pos = it.rs.RowCount() - 1
		it.end = false
		return true
	}
	if it.pos > 0 {
		it.pos--
		return true
	}
	return false
}

// Equal reports whether both iterators mark the same position of the same
// RecordSet.
func (it *RowIterator) Equal(other *RowIterator) bool {
	if other == nil {
		return false
	}
	return it.rs == other.rs && it.pos == other.pos && it.end == other.end
}
