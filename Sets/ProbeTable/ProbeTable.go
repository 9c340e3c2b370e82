/*
Package ProbeTable implements an open addressing hash table of ints with quadratic probing.

# Probing
A value v is looked up at slots (v+i*i) mod capacity for i in [0, capacity). The capacity is always prime.
Quadratic probing on a prime table visits only about half of the slots, so an operation can exhaust its probe
sequence without resolving. That is never an error: Insert stores nothing, Remove removes nothing and lookups report
not-found.

# Removal
Removed slots become tombstones rather than never-used slots, so a probe chain that passed through them before the
removal still reaches everything stored behind them. Lookups stop at the first never-used slot.

# Growth
After every successful Insert, if Size()/Capacity() exceeds the threshold the table is rebuilt with capacity
NextPrime(2*Capacity()) and every stored value is placed again. Rebuilding drops all tombstones.

Values are stored as themselves; inserting a value twice stores two copies. The table isn't safe for concurrent use.
*/
package ProbeTable

import (
	"fmt"
	"strings"
)

const (
	DefaultCapacity  = 17
	DefaultThreshold = 0.65
	NotFound         = -1 //returned by IndexOf when the value isn't stored.
)

// New ProbeTable with DefaultCapacity and DefaultThreshold.
func New() *ProbeTable {
	return NewWithCapThreshold(DefaultCapacity, DefaultThreshold)
}

// NewWithCap creates a ProbeTable with DefaultThreshold. capacity is rounded up to the nearest prime, and to 2 if it's below 2.
func NewWithCap(capacity int) *ProbeTable {
	return NewWithCapThreshold(capacity, DefaultThreshold)
}

// NewWithCapThreshold creates a ProbeTable that grows once its load factor exceeds threshold.
// capacity is rounded up to the nearest prime, and to 2 if it's below 2.
// A threshold that isn't positive (including NaN) is replaced by DefaultThreshold; one >= 1 means the table never grows.
func NewWithCapThreshold(capacity int, threshold float64) *ProbeTable {
	if !(threshold > 0) {
		threshold = DefaultThreshold
	}
	u := &ProbeTable{threshold: threshold}
	u.reset(primeAtLeast(capacity))
	return u
}

type ProbeTable struct {
	slots     []int //slots[i] is meaningful only when status.get(i)==Occupied, and 0 otherwise.
	status    statusArray
	sz        int
	threshold float64
}

// probe walks the quadratic sequence (base+i*i) mod c. i*i is kept reduced mod c so nothing overflows.
type probe struct {
	base, off, i, c int
}

func newProbe(v, c int) probe {
	base := v % c
	if base < 0 {
		base += c
	}
	return probe{base: base, c: c}
}

func (p probe) index() int {
	if i := p.base + p.off; i < p.c {
		return i
	} else {
		return i - p.c
	}
}

func (p probe) next() probe {
	p.off = (p.off + 2*p.i + 1) % p.c //(i+1)^2 = i^2 + 2i + 1
	p.i++
	return p
}

func (p probe) more() bool {
	return p.i < p.c
}

func (u *ProbeTable) reset(capacity int) {
	u.slots = make([]int, capacity)
	u.status = newStatusArray(capacity)
	u.sz = 0
}

func (u *ProbeTable) overloaded() bool {
	return float64(u.sz)/float64(len(u.slots)) > u.threshold
}

// place v in the first slot along its probe sequence that isn't occupied. It never grows the table.
func (u *ProbeTable) place(v int) bool {
	for p := newProbe(v, len(u.slots)); p.more(); p = p.next() {
		switch i := p.index(); u.status.get(i) {
		case NeverUsed, Tombstoned:
			u.slots[i] = v
			u.status.set(i, Occupied)
			u.sz++
			return true
		case Occupied:
		}
	}
	return false
}

// find the slot holding v. Stops at the first never-used slot since no insertion of v could have skipped it.
func (u *ProbeTable) find(v int) int {
	for p := newProbe(v, len(u.slots)); p.more(); p = p.next() {
		switch i := p.index(); u.status.get(i) {
		case NeverUsed:
			return NotFound
		case Occupied:
			if u.slots[i] == v {
				return i
			}
		case Tombstoned:
		}
	}
	return NotFound
}

// expand rebuilds the table at NextPrime(2*Capacity()), doubling again while the snapshot would still exceed the
// threshold. Placing the snapshot can't fail: it holds at most the old capacity of values, and every probe sequence of
// the new prime capacity visits more distinct slots than that.
func (u *ProbeTable) expand() {
	vals := make([]int, 0, u.sz)
	u.Range(func(v int) bool {
		vals = append(vals, v)
		return true
	})
	c := NextPrime(len(u.slots) * 2)
	for float64(len(vals))/float64(c) > u.threshold {
		c = NextPrime(c * 2)
	}
	u.reset(c)
	for _, v := range vals {
		u.place(v)
	}
}

// Size is the number of occupied slots.
func (u *ProbeTable) Size() int {
	return u.sz
}

// Capacity is the number of slots.
func (u *ProbeTable) Capacity() int {
	return len(u.slots)
}

func (u *ProbeTable) LoadFactorThreshold() float64 {
	return u.threshold
}

// LoadFactor is Size()/Capacity().
func (u *ProbeTable) LoadFactor() float64 {
	return float64(u.sz) / float64(len(u.slots))
}

func (u *ProbeTable) Empty() bool {
	return u.sz == 0
}

// Insert v without checking for duplicates. Returns false if the probe sequence of v is exhausted, in which case
// nothing changes. May grow the table before returning.
func (u *ProbeTable) Insert(v int) bool {
	if !u.place(v) {
		return false
	}
	if u.overloaded() {
		u.expand()
	}
	return true
}

// Remove one copy of v, leaving a tombstone in its slot. Returns true if a copy was found.
func (u *ProbeTable) Remove(v int) bool {
	i := u.find(v)
	if i == NotFound {
		return false
	}
	u.slots[i] = 0
	u.status.set(i, Tombstoned)
	u.sz--
	return true
}

// Contains reports whether some copy of v is stored.
func (u *ProbeTable) Contains(v int) bool {
	return u.find(v) != NotFound
}

// IndexOf returns the slot of the first copy of v along its probe sequence, or NotFound.
// The result is stale after any mutation.
func (u *ProbeTable) IndexOf(v int) int {
	return u.find(v)
}

// Clear all slots back to never-used, keeping the capacity and the threshold.
func (u *ProbeTable) Clear() {
	u.reset(len(u.slots))
}

// StatusAt returns the status of slot i. It panics if i isn't in [0, Capacity()).
func (u *ProbeTable) StatusAt(i int) Status {
	_ = u.slots[i]
	return u.status.get(i)
}

// Clone returns an independent deep copy with the same contents, capacity and threshold.
func (u *ProbeTable) Clone() *ProbeTable {
	return &ProbeTable{slots: append([]int(nil), u.slots...), status: u.status.clone(), sz: u.sz, threshold: u.threshold}
}

// CopyFrom replaces the contents, capacity and threshold of u with a deep copy of o's.
func (u *ProbeTable) CopyFrom(o *ProbeTable) {
	if u != o {
		*u = *o.Clone()
	}
}

// Take an arbitrary stored value. Returns false if the table is empty.
func (u *ProbeTable) Take() (int, bool) {
	if u.sz > 0 {
		for i, v := range u.slots {
			if u.status.get(i) == Occupied {
				return v, true
			}
		}
	}
	return 0, false
}

// Range calls f on every stored value in slot order, stopping when f returns false.
// The order is deterministic for a given sequence of operations but otherwise unspecified. f must not modify u.
func (u *ProbeTable) Range(f func(int) bool) {
	for i, v := range u.slots {
		if u.status.get(i) == Occupied {
			if !f(v) {
				return
			}
		}
	}
}

// String lists every slot that isn't never-used.
func (u *ProbeTable) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ProbeTable{size: %d; cap: %d; threshold: %g}[", u.sz, len(u.slots), u.threshold)
	for i, v := range u.slots {
		if s := u.status.get(i); s != NeverUsed {
			fmt.Fprintf(&sb, "{i: %d; v: %d; s: %s}", i, v, s)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
