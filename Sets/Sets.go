package Sets

// Set of E. Insert and Remove report whether the call changed the set.
type Set[E any] interface {
	Insert(E) bool
	Contains(E) bool
	Remove(E) bool
	Size() int
	Empty() bool
	Clear()
	Take() (E, bool)
	Range(func(E) bool)
}

// IndexedSet additionally exposes where an element lives in its backing storage.
// Indexes are invalidated by any mutation.
type IndexedSet[E any] interface {
	Set[E]
	IndexOf(E) int
	Capacity() int
}
