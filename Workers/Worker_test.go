package Workers

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/g-m-twostay/go-trees/Trees"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rg = rand.New(rand.NewSource(0))

func start(t *testing.T) (*Worker[int, uint16], *Trees.BSTree[int, uint16], *Trees.AVLTree[int, uint16]) {
	t.Helper()
	bst, avl := Trees.NewBST[int, uint16](), Trees.NewAVL[int, uint16]()
	w := New[int, uint16](nil, bst, avl)
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.ErrorIs(t, <-errs, context.Canceled)
	})
	return w, bst, avl
}

func TestWorker_Do(t *testing.T) {
	w, bst, avl := start(t)
	ctx := context.Background()
	for _, v := range []int{5, 4, 1, 2, 7, 8, 6, 3} {
		rs, err := w.Do(ctx, Command[int]{Insert, v})
		require.NoError(t, err)
		require.Len(t, rs, 2)
		for _, r := range rs {
			assert.True(t, r.OK)
			assert.NotZero(t, r.Node)
		}
	}
	rs, err := w.Do(ctx, Command[int]{Insert, 5})
	require.NoError(t, err)
	assert.False(t, rs[0].OK, "bst accepted a duplicate")
	assert.True(t, rs[1].OK, "avl rejected a duplicate")

	rs, err = w.Do(ctx, Command[int]{Search, 3})
	require.NoError(t, err)
	require.NoError(t, w.Read(ctx, func([]Trees.Engine[int, uint16]) {
		assert.Equal(t, 3, bst.Value(rs[0].Node))
		assert.Equal(t, 3, avl.Value(rs[1].Node))
	}))

	rs, err = w.Do(ctx, Command[int]{Delete, 7})
	require.NoError(t, err)
	for _, r := range rs {
		assert.True(t, r.OK)
		assert.NoError(t, r.Err)
	}
	rs, err = w.Do(ctx, Command[int]{Delete, 42})
	require.NoError(t, err)
	assert.False(t, rs[0].OK || rs[1].OK)

	require.NoError(t, w.Read(ctx, func(trees []Trees.Engine[int, uint16]) {
		assert.Equal(t, []int{8, 6, 3, 2, 1, 4, 5}, bst.Values(Trees.PostOrder))
		for _, tree := range trees {
			assert.NoError(t, tree.Check())
		}
	}))
}

func TestWorker_Order(t *testing.T) {
	w, bst, avl := start(t)
	vs := rg.Perm(300)
	var chs []<-chan []Reply[uint16]
	for _, v := range vs {
		ch, err := w.Submit(Command[int]{Insert, v})
		require.NoError(t, err)
		chs = append(chs, ch)
	}
	want := Trees.NewBST[int, uint16]()
	for _, v := range vs {
		want.Add(v)
	}
	require.NoError(t, w.Read(context.Background(), func([]Trees.Engine[int, uint16]) {
		assert.Equal(t, want.Values(Trees.PreOrder), bst.Values(Trees.PreOrder))
		assert.Equal(t, uint(len(vs)), avl.Size())
		assert.NoError(t, avl.Check())
	}))
	for _, ch := range chs {
		rs, ok := <-ch
		require.True(t, ok)
		assert.True(t, rs[0].OK && rs[1].OK)
	}
	assert.Zero(t, w.Pending())
}

func TestWorker_Concurrent(t *testing.T) {
	w, bst, avl := start(t)
	var wg sync.WaitGroup
	for p := range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := p; v < 600; v += 6 {
				_, err := w.Do(context.Background(), Command[int]{Insert, v})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	require.NoError(t, w.Read(context.Background(), func([]Trees.Engine[int, uint16]) {
		assert.Equal(t, uint(600), bst.Size())
		assert.NoError(t, bst.Check())
		assert.NoError(t, avl.Check())
	}))
}

func TestWorker_Stop(t *testing.T) {
	w := New[int, uint16](nil, Trees.NewBST[int, uint16]())
	ctx, cancel := context.WithCancel(context.Background())

	// nobody is running the worker yet
	short, stop := context.WithCancel(context.Background())
	stop()
	_, err := w.Do(short, Command[int]{Insert, 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint(1), w.Pending())

	cancel()
	assert.ErrorIs(t, w.Run(ctx), context.Canceled)
	assert.Zero(t, w.Pending())

	_, err = w.Do(context.Background(), Command[int]{Search, 1})
	assert.ErrorAs(t, err, &StoppedError{})
	_, err = w.Submit(Command[int]{Search, 1})
	assert.ErrorAs(t, err, &StoppedError{})
	err = w.Read(context.Background(), func([]Trees.Engine[int, uint16]) {})
	assert.ErrorAs(t, err, &StoppedError{})
}

func TestWorker_EnqueueAfterStop(t *testing.T) {
	w := New[int, uint16](nil, Trees.NewBST[int, uint16]())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, w.Run(ctx), context.Canceled)

	// a job pushed after Run drained the mailbox, with the wake slot free
	j := &job[int, uint16]{cmd: Command[int]{Insert, 1}, done: make(chan []Reply[uint16], 1)}
	w.enqueue(j)
	_, ok := <-j.done
	assert.False(t, ok, "job left in the mailbox of a stopped worker")
	assert.Zero(t, w.Pending())
}
