package Trees

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// Log is the default logger of all trees. Trees only log at debug level.
var Log = logrus.New()

type config[S constraints.Unsigned] struct {
	hint  S
	dups  Duplicates
	focus func(S)
	log   *logrus.Entry
}

// Option configures a tree at construction.
type Option[S constraints.Unsigned] func(*config[S])

// WithHint preallocates room for n nodes.
func WithHint[S constraints.Unsigned](n S) Option[S] {
	return func(c *config[S]) { c.hint = n }
}

// WithDuplicates overrides the tree's default duplicate policy.
func WithDuplicates[S constraints.Unsigned](d Duplicates) Option[S] {
	return func(c *config[S]) { c.dups = d }
}

// WithObserver registers f to be called on every node a search, insert or delete visits, in
// visiting order. f runs synchronously inside the operation and must not touch the tree.
func WithObserver[S constraints.Unsigned](f func(S)) Option[S] {
	return func(c *config[S]) { c.focus = f }
}

// WithLogger replaces Log for this tree.
func WithLogger[S constraints.Unsigned](e *logrus.Entry) Option[S] {
	return func(c *config[S]) { c.log = e }
}

func makeConfig[S constraints.Unsigned](dups Duplicates, kind string, opts []Option[S]) config[S] {
	c := config[S]{dups: dups}
	for _, o := range opts {
		o(&c)
	}
	if c.log == nil {
		c.log = logrus.NewEntry(Log)
	}
	c.log = c.log.WithField("tree", kind)
	return c
}
