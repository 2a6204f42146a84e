package Workers

import (
	"context"

	Go_Trees "github.com/g-m-twostay/go-trees"
	"github.com/g-m-twostay/go-trees/Queues"
	"github.com/g-m-twostay/go-trees/Trees"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// Op of a Command.
type Op byte

const (
	Insert Op = iota
	Delete
	Search
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Search:
		return "search"
	}
	return "unknown"
}

// Command is applied to every tree of a Worker, in registration order.
type Command[T constraints.Ordered] struct {
	Op    Op
	Value T
}

// Reply of one tree to a Command. Node is the inserted or found node, 0 otherwise. OK is false
// when an insert was discarded or the value wasn't found.
type Reply[S constraints.Unsigned] struct {
	Node S
	OK   bool
	Err  error
}

// StoppedError is returned for work submitted to, or left in, a Worker that isn't running anymore.
type StoppedError struct{}

func (e StoppedError) Error() string {
	return "worker is stopped"
}

type job[T constraints.Ordered, S constraints.Unsigned] struct {
	cmd  Command[T]
	read func()
	done chan []Reply[S] // buffered, written once
}

// Worker owns a set of trees and applies every mutation and read to them from a single
// goroutine, so the trees are never touched concurrently. Submissions from any goroutine go
// through a lock-free mailbox and are applied in the order they were pushed.
type Worker[T constraints.Ordered, S constraints.Unsigned] struct {
	trees   []Trees.Engine[T, S]
	box     Queues.Queue[*job[T, S]]
	wake    chan struct{}
	stopped chan struct{}
	pending Go_Trees.AtomicUint
	log     *logrus.Entry
}

// New Worker over trees. A nil log uses Trees.Log.
func New[T constraints.Ordered, S constraints.Unsigned](log *logrus.Entry, trees ...Trees.Engine[T, S]) *Worker[T, S] {
	if log == nil {
		log = logrus.NewEntry(Trees.Log)
	}
	return &Worker[T, S]{
		trees:   trees,
		box:     Queues.MakeConcurrentLinkedQueue[*job[T, S]](),
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
		log:     log.WithField("component", "worker"),
	}
}

// Pending is the number of submitted jobs not yet taken by the worker.
func (u *Worker[T, S]) Pending() uint {
	return u.pending.Load()
}

// Run applies jobs until ctx is done, then fails whatever is left with StoppedError. Run must
// be called once.
func (u *Worker[T, S]) Run(ctx context.Context) error {
	u.log.WithField("trees", len(u.trees)).Info("started")
	defer u.log.Info("stopped")
	for {
		for j, err := u.box.Pop(); err == nil; j, err = u.box.Pop() {
			u.pending.Sub(1)
			u.apply(j)
		}
		select {
		case <-ctx.Done():
			close(u.stopped)
			u.drain()
			return ctx.Err()
		case <-u.wake:
		}
	}
}

func (u *Worker[T, S]) drain() {
	for j, err := u.box.Pop(); err == nil; j, err = u.box.Pop() {
		u.pending.Sub(1)
		close(j.done)
	}
}

func (u *Worker[T, S]) apply(j *job[T, S]) {
	if j.read != nil {
		j.read()
		j.done <- nil
		return
	}
	rs := make([]Reply[S], len(u.trees))
	for i, tree := range u.trees {
		r := &rs[i]
		switch v := j.cmd.Value; j.cmd.Op {
		case Insert:
			r.Node, r.OK = tree.Add(v)
		case Delete:
			if n := tree.Search(v); n != 0 {
				r.Err = tree.Delete(n)
				r.OK = r.Err == nil
			}
		case Search:
			r.Node = tree.Search(v)
			r.OK = r.Node != 0
		}
		entry := u.log.WithFields(logrus.Fields{"op": j.cmd.Op, "value": j.cmd.Value, "tree": i})
		if r.Err != nil {
			entry.WithError(r.Err).Warn("command failed")
		} else if entry.Logger.IsLevelEnabled(logrus.DebugLevel) {
			entry.WithFields(logrus.Fields{"node": r.Node, "ok": r.OK}).Debug("command applied")
		}
	}
	j.done <- rs
}

func (u *Worker[T, S]) submit(j *job[T, S]) error {
	select {
	case <-u.stopped:
		return StoppedError{}
	default:
	}
	u.enqueue(j)
	return nil
}

// enqueue j and wake Run. If Run has returned since, j is drained here instead.
func (u *Worker[T, S]) enqueue(j *job[T, S]) {
	u.pending.Add(1)
	u.box.Push(j)
	select {
	case <-u.stopped:
		u.drain()
		return
	default:
	}
	select {
	case u.wake <- struct{}{}:
	default:
	}
}

func (u *Worker[T, S]) wait(ctx context.Context, j *job[T, S]) ([]Reply[S], error) {
	select {
	case rs, ok := <-j.done:
		if !ok {
			return nil, StoppedError{}
		}
		return rs, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-u.stopped:
		select {
		case rs, ok := <-j.done:
			if ok {
				return rs, nil
			}
		default:
		}
		return nil, StoppedError{}
	}
}

// Submit c without waiting for it. The channel yields one Reply per tree once c is applied, and
// is closed without a value if the worker stops first.
func (u *Worker[T, S]) Submit(c Command[T]) (<-chan []Reply[S], error) {
	j := &job[T, S]{cmd: c, done: make(chan []Reply[S], 1)}
	if err := u.submit(j); err != nil {
		return nil, err
	}
	return j.done, nil
}

// Do c and wait for the replies, one per tree.
func (u *Worker[T, S]) Do(ctx context.Context, c Command[T]) ([]Reply[S], error) {
	j := &job[T, S]{cmd: c, done: make(chan []Reply[S], 1)}
	if err := u.submit(j); err != nil {
		return nil, err
	}
	return u.wait(ctx, j)
}

// Read runs f on the worker goroutine after everything submitted before it, so f sees settled
// trees. f must not mutate them.
func (u *Worker[T, S]) Read(ctx context.Context, f func(trees []Trees.Engine[T, S])) error {
	j := &job[T, S]{read: func() { f(u.trees) }, done: make(chan []Reply[S], 1)}
	if err := u.submit(j); err != nil {
		return err
	}
	_, err := u.wait(ctx, j)
	return err
}
