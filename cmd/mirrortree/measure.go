package main

import (
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/g-m-twostay/go-trees/Trees"
)

type stats struct {
	avg, stddev float64
}

// delQry fills tree with n random values, then times removing rmv of them followed by rmv
// searches.
func delQry(tree func() Trees.Engine[int, uint32], n, rmv uint32, seed int64) func(b *testing.B) {
	return func(b *testing.B) {
		rg := newRand(seed)
		all := make([]int, n)
		b.ResetTimer()
		for range b.N {
			b.StopTimer()
			u := tree()
			for i := range all {
				all[i] = rg.Int()
				u.Add(all[i])
			}
			b.StartTimer()
			for _, v := range all[:rmv] {
				u.Remove(v)
			}
			for range rmv {
				u.Search(all[rg.Intn(len(all))])
			}
		}
	}
}

// sample runs the workload at steps growing removal counts and summarizes ms/op.
func sample(tree func() Trees.Engine[int, uint32], n, steps uint32, seed int64) stats {
	var cs []float64
	var N int
	for i := uint32(1); i <= steps; i++ {
		br := testing.Benchmark(delQry(tree, n, n/steps*i, seed))
		cs = append(cs, float64(br.T.Milliseconds()))
		N += br.N
	}
	var sum float64
	for _, v := range cs {
		sum += v
	}
	var s stats
	s.avg = sum / float64(N)
	sum = 0
	for _, v := range cs {
		a := v - s.avg
		sum += a * a
	}
	s.stddev = math.Sqrt(sum / float64(N))
	return s
}

func measure(w io.Writer, n, steps uint32, seed int64) error {
	if steps == 0 || n < steps {
		return fmt.Errorf("need 0 < steps <= n, got steps=%d n=%d", steps, n)
	}
	testing.Init()
	for _, c := range []struct {
		name string
		tree func() Trees.Engine[int, uint32]
	}{
		{"bst", func() Trees.Engine[int, uint32] { return Trees.NewBST[int, uint32](Trees.WithHint(n)) }},
		{"avl", func() Trees.Engine[int, uint32] { return Trees.NewAVL[int, uint32](Trees.WithHint(n)) }},
	} {
		s := sample(c.tree, n, steps, seed)
		fmt.Fprintf(w, "%s average: %fms/op\n", c.name, s.avg)
		fmt.Fprintf(w, "%s stddev: %fms/op\n", c.name, s.stddev)
	}
	return nil
}
