package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/g-m-twostay/go-trees/Trees"
	"github.com/g-m-twostay/go-trees/Workers"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// parseCommand of the form i<v>, d<v> or s<v>.
func parseCommand(s string) (Workers.Command[int], error) {
	var c Workers.Command[int]
	if len(s) < 2 {
		return c, fmt.Errorf("bad command %q: want i<v>, d<v> or s<v>", s)
	}
	switch s[0] {
	case 'i':
		c.Op = Workers.Insert
	case 'd':
		c.Op = Workers.Delete
	case 's':
		c.Op = Workers.Search
	default:
		return c, fmt.Errorf("bad command %q: unknown op %q", s, s[0])
	}
	v, err := strconv.Atoi(s[1:])
	if err != nil {
		return c, fmt.Errorf("bad command %q: %w", s, err)
	}
	c.Value = v
	return c, nil
}

func values(u *Trees.BSTree[int, uint16], o Trees.Order) string {
	vs := u.Values(o)
	ss := make([]string, len(vs))
	for i, v := range vs {
		ss[i] = strconv.Itoa(v)
	}
	return strings.Join(ss, " ")
}

// demo walks through the reference example on a BSTree.
func demo(w io.Writer) error {
	u := Trees.NewBST[int, uint16]()
	for _, v := range []int{5, 4, 1, 2, 7, 8, 6, 3} {
		u.Add(v)
	}
	for _, o := range []Trees.Order{Trees.PreOrder, Trees.InOrder, Trees.PostOrder} {
		fmt.Fprintf(w, "%s-order: %s\n", o, values(u, o))
	}
	fmt.Fprintf(w, "successor(5): %d\n", u.Value(u.Successor(u.Search(5))))
	fmt.Fprintf(w, "predecessor(4): %d\n", u.Value(u.Predecessor(u.Search(4))))
	fmt.Fprintf(w, "leftmost: %d, rightmost: %d\n", u.Value(u.LeftmostDescendant(u.Root())), u.Value(u.RightmostDescendant(u.Root())))
	if err := u.Delete(u.Search(7)); err != nil {
		return fmt.Errorf("failed to delete 7: %w", err)
	}
	fmt.Fprintf(w, "post-order after deleting 7: %s\n", values(u, Trees.PostOrder))
	render(w, "bst", u, nil)
	return u.Check()
}

func describe(c Workers.Command[int], r Workers.Reply[uint16]) string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case c.Op == Workers.Insert && r.OK:
		return "inserted"
	case c.Op == Workers.Insert:
		return "rejected"
	case c.Op == Workers.Delete && r.OK:
		return "deleted"
	case r.OK:
		return "found"
	}
	return "absent"
}

// run seeds both trees through a worker, applies cmds to both and renders the tree selected
// by viewName.
func run(ctx context.Context, w io.Writer, cfg *Config, viewName string, cmds []string) error {
	if viewName != "bst" && viewName != "avl" {
		return fmt.Errorf("unknown view %q, want bst or avl", viewName)
	}
	parsed := make([]Workers.Command[int], len(cmds))
	for i, s := range cmds {
		c, err := parseCommand(s)
		if err != nil {
			return err
		}
		parsed[i] = c
	}
	bd, ad, err := cfg.duplicates()
	if err != nil {
		return err
	}
	log := logrus.NewEntry(Trees.Log)
	bst := Trees.NewBST[int, uint16](Trees.WithDuplicates[uint16](bd), Trees.WithLogger[uint16](log))
	avl := Trees.NewAVL[int, uint16](Trees.WithDuplicates[uint16](ad), Trees.WithLogger[uint16](log))
	worker := Workers.New[int, uint16](log, bst, avl)

	ctx, cancel := context.WithCancel(ctx)
	stopped := make(chan error, 1)
	go func() { stopped <- worker.Run(ctx) }()
	defer func() {
		cancel()
		<-stopped
	}()

	for _, v := range cfg.seeds() {
		if _, err = worker.Do(ctx, Workers.Command[int]{Op: Workers.Insert, Value: v}); err != nil {
			return fmt.Errorf("failed to seed %d: %w", v, err)
		}
	}
	for i, c := range parsed {
		rs, err := worker.Do(ctx, c)
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", cmds[i], err)
		}
		fmt.Fprintf(w, "%s: bst %s, avl %s\n", cmds[i], describe(c, rs[0]), describe(c, rs[1]))
	}
	return worker.Read(ctx, func(trees []Trees.Engine[int, uint16]) {
		if viewName == "bst" {
			render(w, "bst", bst, nil)
		} else {
			render(w, "avl", avl, avl.BalanceFactor)
		}
		for i, t := range trees {
			if err := t.Check(); err != nil {
				Trees.Log.WithField("tree", i).WithError(err).Error("invariant broken")
			}
		}
	})
}

func newRootCmd() *cobra.Command {
	var configPath string
	var cfg *Config

	var rootCmd = &cobra.Command{
		Use:           "mirrortree",
		Short:         "Mirrored binary search trees, plain and AVL balanced",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = LoadConfig(configPath); err != nil {
				return err
			}
			level, _ := cfg.level()
			Trees.Log.SetLevel(level)
			Trees.Log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HOME/.mirrortree.yaml)")

	var cmdDemo = &cobra.Command{
		Use:   "demo",
		Short: "Walk through the reference example on a plain tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return demo(cmd.OutOrStdout())
		},
	}

	var viewName string
	var cmdRun = &cobra.Command{
		Use:   "run [i<v>|d<v>|s<v>]...",
		Short: "Seed both trees, apply commands to both and print one of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cfg, viewName, args)
		},
	}
	cmdRun.Flags().StringVar(&viewName, "view", "avl", "tree to print, bst or avl")

	var steps, n uint32
	var cmdMeasure = &cobra.Command{
		Use:   "measure",
		Short: "Benchmark delete and search workloads of growing size on both trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return measure(cmd.OutOrStdout(), n, steps, cfg.Tree.Seed)
		},
	}
	cmdMeasure.Flags().Uint32Var(&steps, "steps", 10, "number of workload sizes")
	cmdMeasure.Flags().Uint32Var(&n, "n", 2000, "values added before each workload")

	rootCmd.AddCommand(cmdDemo, cmdRun, cmdMeasure)
	return rootCmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
