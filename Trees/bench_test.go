package Trees

import (
	"testing"
)

var (
	bAddN uint32 = 4096
	bRmvN        = bAddN / 2
	bQryN        = bAddN
)

func benchAdd(b *testing.B, tree Engine[int, uint32]) {
	b.Helper()
	for range bAddN {
		tree.Add(rg.Int())
	}
}

func BenchmarkBSTree_Add(b *testing.B) {
	for range b.N {
		benchAdd(b, NewBST[int, uint32](WithHint(bAddN)))
	}
}

func BenchmarkAVLTree_Add(b *testing.B) {
	for range b.N {
		benchAdd(b, NewAVL[int, uint32](WithHint(bAddN)))
	}
}

func benchDelQry(b *testing.B, mk func() Engine[int, uint32]) {
	b.Helper()
	all := make([]int, bAddN)
	b.ResetTimer()
	for range b.N {
		b.StopTimer()
		tree := mk()
		for i := range all {
			all[i] = rg.Int()
			tree.Add(all[i])
		}
		b.StartTimer()
		for _, v := range all[:bRmvN] {
			tree.Remove(v)
		}
		for range bQryN {
			tree.Search(all[rg.Intn(len(all))])
		}
	}
}

func BenchmarkBSTree_DelQry(b *testing.B) {
	benchDelQry(b, func() Engine[int, uint32] { return NewBST[int, uint32](WithHint(bAddN)) })
}

func BenchmarkAVLTree_DelQry(b *testing.B) {
	benchDelQry(b, func() Engine[int, uint32] { return NewAVL[int, uint32](WithHint(bAddN)) })
}

func BenchmarkAVLTree_Search(b *testing.B) {
	tree := NewAVL[int, uint32](WithHint(bAddN))
	for v := range int(bAddN) {
		tree.Add(v)
	}
	b.ResetTimer()
	for i := range b.N {
		tree.Search(i % int(bAddN))
	}
}
