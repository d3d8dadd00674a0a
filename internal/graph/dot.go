package graph

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT renders the graph in Graphviz DOT format, one node per job and
// one edge per derived dependency. External inputs are omitted.
func (g *Graph) WriteDOT(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph jobs {"); err != nil {
		return err
	}
	for _, job := range g.ordered {
		style := ""
		if job.Intermediate() {
			style = " style=dashed"
		}
		if _, err := fmt.Fprintf(w, "  %q [label=%q%s];\n", job.Name(), job.Name(), style); err != nil {
			return err
		}
	}
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(w, "  %q -> %q;\n", e.From, e.To); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// DOT renders WriteDOT into a string.
func (g *Graph) DOT() string {
	var b strings.Builder
	// strings.Builder writes cannot fail.
	_ = g.WriteDOT(&b)
	return b.String()
}
