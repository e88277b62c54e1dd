package idxtable

type Entry[T any] interface {
	ID() int64
	Data() T
}

type entry[T any] struct {
	id   int64
	data T
}

type Entries[T any] []Entry[T]

func (r entry[T]) ID() int64 { return r.id }
func (r entry[T]) Data() T   { return r.data }

func NewEntry[T any](id int64, d T) Entry[T] {
	return entry[T]{
		id:   id,
		data: d,
	}
}

// GetEntries returns the claimed entries of t in ascending id order.
func GetEntries[T any](t Table[T]) Entries[T] {
	var entries Entries[T]
	iter := t.Iterate()
	for iter.Next() {
		entries = append(entries, iter.Entry())
	}
	return entries
}
