package ProbeTable

import "math/bits"

// Status of a single slot.
type Status byte

const (
	NeverUsed  Status = iota //the slot has held nothing since the last Clear or resize.
	Tombstoned               //the slot held a value that was removed; probe chains continue through it.
	Occupied
)

func (s Status) String() string {
	switch s {
	case NeverUsed:
		return "never-used"
	case Tombstoned:
		return "tombstoned"
	case Occupied:
		return "occupied"
	}
	return "invalid"
}

const (
	statusBits   = 2
	statusMask   = 1<<statusBits - 1
	slotsPerWord = bits.UintSize / statusBits
	slotMask     = slotsPerWord - 1 //slotsPerWord is a power of 2.
)

// statusArray packs one Status per slot into 2 bits. The zero word is all NeverUsed.
type statusArray struct {
	words []uint
}

func newStatusArray(n int) statusArray {
	return statusArray{words: make([]uint, (n+slotsPerWord-1)/slotsPerWord)}
}

func (u statusArray) get(i int) Status {
	return Status(u.words[i/slotsPerWord] >> ((i & slotMask) * statusBits) & statusMask)
}

func (u statusArray) set(i int, s Status) {
	shift := (i & slotMask) * statusBits
	w := &u.words[i/slotsPerWord]
	*w = *w&^(statusMask<<shift) | uint(s)<<shift
}

func (u statusArray) clone() statusArray {
	return statusArray{words: append([]uint(nil), u.words...)}
}
