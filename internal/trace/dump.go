package trace

import (
	"fmt"
	"io"

	"github.com/g-m-twostay/probing/Sets/ProbeTable"
	"github.com/google/btree"
)

const dumpDegree = 8

type dumpEntry struct {
	v, n int
}

// sortedContents collects the stored values of t with their multiplicity, ordered by value.
func sortedContents(t *ProbeTable.ProbeTable) *btree.BTreeG[dumpEntry] {
	tr := btree.NewG[dumpEntry](dumpDegree, func(a, b dumpEntry) bool {
		return a.v < b.v
	})
	t.Range(func(v int) bool {
		e, _ := tr.Get(dumpEntry{v: v})
		e.v = v
		e.n++
		tr.ReplaceOrInsert(e)
		return true
	})
	return tr
}

// writeSorted writes one "value xcount" line per distinct stored value, ascending.
func writeSorted(w io.Writer, t *ProbeTable.ProbeTable) (err error) {
	sortedContents(t).Ascend(func(e dumpEntry) bool {
		_, err = fmt.Fprintf(w, "  %d x%d\n", e.v, e.n)
		return err == nil
	})
	return
}
