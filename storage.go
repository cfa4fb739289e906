package rowset

// StorageKind selects the backing sequence container shape used for every
// column of one statement. It is a per-statement configuration, chosen before
// execution and fixed afterwards.
type StorageKind uint8

const (
	StorageUnknown StorageKind = iota
	StorageSlice
	StorageList
	StorageDeque
)

func (k StorageKind) String() string {
	switch k {
	case StorageUnknown:
		return "unknown"
	case StorageSlice:
		return "slice"
	case StorageList:
		return "list"
	case StorageDeque:
		return "deque"
	}
	return "invalid"
}

// store is the shape strategy behind a Column. Shape dispatch is centralized
// here: newStore is the single place that maps a StorageKind to a concrete
// container, so accessors never repeat the switch.
type store[T any] interface {
	push(v T)
	at(i int) T
	len() int
}

// newStore builds the container for the given kind. StorageUnknown falls back
// to the dense slice shape. An unrecognized kind is an internal defect and
// reports ErrInvalidState.
func newStore[T any](kind StorageKind) (store[T], error) {
	switch kind {
	case StorageSlice, StorageUnknown:
		return &sliceStore[T]{}, nil
	case StorageList:
		return &listStore[T]{}, nil
	case StorageDeque:
		return newDequeStore[T](), nil
	}
	return nil, errStorageKind(kind)
}

type sliceStore[T any] struct {
	values []T
}

func (s *sliceStore[T]) push(v T)   { s.values = append(s.values, v) }
func (s *sliceStore[T]) at(i int) T { return s.values[i] }
func (s *sliceStore[T]) len() int   { return len(s.values) }

type listNode[T any] struct {
	value T
	prev  *listNode[T]
	next  *listNode[T]
}

// listStore is a doubly linked list. Positional reads walk from whichever end
// is closer, matching list semantics rather than hiding an index.
type listStore[T any] struct {
	head *listNode[T]
	tail *listNode[T]
	n    int
}

func (s *listStore[T]) push(v T) {
	node := &listNode[T]{value: v, prev: s.tail}
	if s.tail != nil {
		s.tail.next = node
	} else {
		s.head = node
	}
	s.tail = node
	s.n++
}

func (s *listStore[T]) at(i int) T {
	if i <= s.n/2 {
		node := s.head
		for ; i > 0; i-- {
			node = node.next
		}
		return node.value
	}
	node := s.tail
	for j := s.n - 1; j > i; j-- {
		node = node.prev
	}
	return node.value
}

func (s *listStore[T]) len() int { return s.n }

const dequeChunk = 64

// dequeStore is a chunked double-ended queue: contiguous blocks linked in a
// slice of chunk pointers, giving stable O(1) positional reads.
type dequeStore[T any] struct {
	chunks [][]T
	n      int
}

func newDequeStore[T any]() *dequeStore[T] {
	return &dequeStore[T]{}
}

func (s *dequeStore[T]) push(v T) {
	if len(s.chunks) == 0 || len(s.chunks[len(s.chunks)-1]) == dequeChunk {
		s.chunks = append(s.chunks, make([]T, 0, dequeChunk))
	}
	last := len(s.chunks) - 1
	s.chunks[last] = append(s.chunks[last], v)
	s.n++
}

func (s *dequeStore[T]) at(i int) T {
	return s.chunks[i/dequeChunk][i%dequeChunk]
}

func (s *dequeStore[T]) len() int { return s.n }
