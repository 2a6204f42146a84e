package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	leftEdge  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	rightEdge = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	muted     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	title     = lipgloss.NewStyle().Bold(true)
)

// view is the read only part of a tree the renderer needs.
type view interface {
	Root() uint16
	Left(n uint16) uint16
	Right(n uint16) uint16
	Value(n uint16) int
	Levels() [][]uint16
	Size() uint
}

// render the tree sideways, one node per line, left relation first. Left edges lead to greater
// values, right edges to lesser ones. bf, when not nil, annotates every node with its balance
// factor.
func render(w io.Writer, name string, u view, bf func(uint16) int) {
	fmt.Fprintln(w, title.Render(fmt.Sprintf("%s (%d nodes)", name, u.Size())))
	if u.Root() == 0 {
		fmt.Fprintln(w, muted.Render("(empty)"))
		return
	}
	var walk func(n uint16, prefix, edge string, last bool)
	walk = func(n uint16, prefix, edge string, last bool) {
		label := fmt.Sprint(u.Value(n))
		if bf != nil {
			label += muted.Render(fmt.Sprintf(" bf=%d", bf(n)))
		}
		if edge == "" {
			fmt.Fprintln(w, label)
		} else {
			branch := "├─"
			if last {
				branch = "└─"
			}
			fmt.Fprintf(w, "%s%s%s %s\n", prefix, branch, edge, label)
			if last {
				prefix += "   "
			} else {
				prefix += "│  "
			}
		}
		l, r := u.Left(n), u.Right(n)
		if l != 0 {
			walk(l, prefix, leftEdge.Render("L"), r == 0)
		}
		if r != 0 {
			walk(r, prefix, rightEdge.Render("R"), true)
		}
	}
	walk(u.Root(), "", "", true)

	counts := make([]string, 0, 8)
	for d, l := range u.Levels() {
		counts = append(counts, fmt.Sprintf("%d:%d", d, len(l)))
	}
	fmt.Fprintln(w, muted.Render("nodes per depth "+strings.Join(counts, " ")))
}
