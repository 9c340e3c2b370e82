package comparisons

import (
	"testing"

	"github.com/alphadose/haxmap"
	"github.com/cornelk/hashmap"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/g-m-twostay/probing/Sets/ProbeTable"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
)

// Every container gets the same workload: insert benchmarkItemCount keys, look each one up, look up as many misses,
// then remove every other key.
const (
	benchmarkItemCount = 1 << 12
	btreeDegree        = 32
)

var sideEff bool

func keys() []int {
	ks := make([]int, benchmarkItemCount)
	for i := range ks {
		ks[i] = i * 7919 //spread keys so sequential ints don't land in sequential slots.
	}
	return ks
}

func BenchmarkProbeTable(b *testing.B) {
	ks := keys()
	b.ResetTimer()
	for iter := 0; iter < b.N; iter++ {
		M := ProbeTable.New()
		for _, k := range ks {
			M.Insert(k)
		}
		for _, k := range ks {
			if !M.Contains(k) {
				b.Error("key doesn't exist", k)
			}
			sideEff = M.Contains(-k - 1)
		}
		for i := 0; i < len(ks); i += 2 {
			M.Remove(ks[i])
		}
	}
}

func BenchmarkProbeTable_Presized(b *testing.B) {
	ks := keys()
	b.ResetTimer()
	for iter := 0; iter < b.N; iter++ {
		M := ProbeTable.NewWithCap(benchmarkItemCount * 2)
		for _, k := range ks {
			M.Insert(k)
		}
		for _, k := range ks {
			if !M.Contains(k) {
				b.Error("key doesn't exist", k)
			}
			sideEff = M.Contains(-k - 1)
		}
		for i := 0; i < len(ks); i += 2 {
			M.Remove(ks[i])
		}
	}
}

func BenchmarkNaiveMap(b *testing.B) {
	ks := keys()
	b.ResetTimer()
	for iter := 0; iter < b.N; iter++ {
		M := make(map[int]struct{})
		for _, k := range ks {
			M[k] = struct{}{}
		}
		for _, k := range ks {
			if _, ok := M[k]; !ok {
				b.Error("key doesn't exist", k)
			}
			_, sideEff = M[-k-1]
		}
		for i := 0; i < len(ks); i += 2 {
			delete(M, ks[i])
		}
	}
}

func BenchmarkHaxMap(b *testing.B) {
	ks := keys()
	b.ResetTimer()
	for iter := 0; iter < b.N; iter++ {
		M := haxmap.New[int, int]()
		for _, k := range ks {
			M.Set(k, k)
		}
		for _, k := range ks {
			if _, ok := M.Get(k); !ok {
				b.Error("key doesn't exist", k)
			}
			_, sideEff = M.Get(-k - 1)
		}
		for i := 0; i < len(ks); i += 2 {
			M.Del(ks[i])
		}
	}
}

func BenchmarkHashMap(b *testing.B) {
	ks := keys()
	b.ResetTimer()
	for iter := 0; iter < b.N; iter++ {
		M := hashmap.New[int, int]()
		for _, k := range ks {
			M.Set(k, k)
		}
		for _, k := range ks {
			if _, ok := M.Get(k); !ok {
				b.Error("key doesn't exist", k)
			}
			_, sideEff = M.Get(-k - 1)
		}
		for i := 0; i < len(ks); i += 2 {
			M.Del(ks[i])
		}
	}
}

func BenchmarkGodsHashSet(b *testing.B) {
	ks := keys()
	b.ResetTimer()
	for iter := 0; iter < b.N; iter++ {
		S := hashset.New()
		for _, k := range ks {
			S.Add(k)
		}
		for _, k := range ks {
			if !S.Contains(k) {
				b.Error("key doesn't exist", k)
			}
			sideEff = S.Contains(-k - 1)
		}
		for i := 0; i < len(ks); i += 2 {
			S.Remove(ks[i])
		}
	}
}

func BenchmarkBTree(b *testing.B) {
	ks := keys()
	b.ResetTimer()
	for iter := 0; iter < b.N; iter++ {
		T := btree.NewOrderedG[int](btreeDegree)
		for _, k := range ks {
			T.ReplaceOrInsert(k)
		}
		for _, k := range ks {
			if !T.Has(k) {
				b.Error("key doesn't exist", k)
			}
			sideEff = T.Has(-k - 1)
		}
		for i := 0; i < len(ks); i += 2 {
			T.Delete(ks[i])
		}
	}
}

func BenchmarkLLRB(b *testing.B) {
	ks := keys()
	b.ResetTimer()
	for iter := 0; iter < b.N; iter++ {
		T := llrb.New()
		for _, k := range ks {
			T.ReplaceOrInsert(llrb.Int(k))
		}
		for _, k := range ks {
			if !T.Has(llrb.Int(k)) {
				b.Error("key doesn't exist", k)
			}
			sideEff = T.Has(llrb.Int(-k - 1))
		}
		for i := 0; i < len(ks); i += 2 {
			T.Delete(llrb.Int(ks[i]))
		}
	}
}

// TestAgreement checks that ProbeTable answers membership the same way as the other containers after the same
// inserts and removals.
func TestAgreement(t *testing.T) {
	ks := keys()
	M := ProbeTable.New()
	S := hashset.New()
	T := btree.NewOrderedG[int](btreeDegree)
	L := llrb.New()
	for _, k := range ks {
		M.Insert(k)
		S.Add(k)
		T.ReplaceOrInsert(k)
		L.ReplaceOrInsert(llrb.Int(k))
	}
	for i := 0; i < len(ks); i += 3 {
		M.Remove(ks[i])
		S.Remove(ks[i])
		T.Delete(ks[i])
		L.Delete(llrb.Int(ks[i]))
	}
	if M.Size() != S.Size() || M.Size() != T.Len() || M.Size() != L.Len() {
		t.Errorf("sizes differ: probe %d, gods %d, btree %d, llrb %d", M.Size(), S.Size(), T.Len(), L.Len())
	}
	for k := -100; k < benchmarkItemCount*7919; k += 997 {
		if has := M.Contains(k); has != S.Contains(k) || has != T.Has(k) || has != L.Has(llrb.Int(k)) {
			t.Errorf("containers disagree on %d", k)
		}
	}
	T.Ascend(func(k int) bool {
		if !M.Contains(k) {
			t.Errorf("probe table lost %d", k)
		}
		return true
	})
}
