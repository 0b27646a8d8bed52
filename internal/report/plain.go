package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// PlainWriter lists every channel with content, followed by its include and
// exclude nodes.
type PlainWriter struct {
	Color bool
}

func (p *PlainWriter) Write(w io.Writer, r *Report) error {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	if p.Color {
		bold.EnableColor()
		dim.EnableColor()
	} else {
		bold.DisableColor()
		dim.DisableColor()
	}

	bw := bufio.NewWriter(w)
	for _, l := range r.Visible() {
		fmt.Fprintf(bw, "%s (%s)\n", bold.Sprint(l.Channel.Name), l.Channel.ID)
		fmt.Fprintln(bw, dim.Sprintf("%d content nodes", l.PickedCount))

		if l.IsSubset() {
			writePlainEntries(bw, "+", l.Include, bold, dim)
			writePlainEntries(bw, "-", l.Exclude, bold, dim)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func writePlainEntries(w io.Writer, prefix string, entries []Entry, bold, dim *color.Color) {
	for _, e := range entries {
		crumbs := make([]string, len(e.Breadcrumbs))
		for i, c := range e.Breadcrumbs {
			crumbs[i] = bold.Sprint(c)
		}
		fmt.Fprintf(w, "%s %s (%s) [%s]\n", prefix, e.Node.ID, strings.Join(crumbs, " / "), dim.Sprint(e.Node.Kind))
	}
}
