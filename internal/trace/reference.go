package trace

import (
	godsmap "github.com/emirpasic/gods/maps/hashmap"
)

// reference is the multiset a verified run mirrors every operation on: value -> stored copies.
type reference struct {
	counts *godsmap.Map
	total  int
}

func newReference() *reference {
	return &reference{counts: godsmap.New()}
}

func (r *reference) count(v int) int {
	if c, ok := r.counts.Get(v); ok {
		return c.(int)
	}
	return 0
}

func (r *reference) add(v int) {
	r.counts.Put(v, r.count(v)+1)
	r.total++
}

func (r *reference) remove(v int) bool {
	switch c := r.count(v); c {
	case 0:
		return false
	case 1:
		r.counts.Remove(v)
	default:
		r.counts.Put(v, c-1)
	}
	r.total--
	return true
}

func (r *reference) clear() {
	r.counts.Clear()
	r.total = 0
}

func (r *reference) clone() *reference {
	n := newReference()
	for _, k := range r.counts.Keys() {
		c, _ := r.counts.Get(k)
		n.counts.Put(k, c)
	}
	n.total = r.total
	return n
}
