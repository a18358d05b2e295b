package dot

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/buildgraph/cmd/resolve/formatters"
	"github.com/LegacyCodeHQ/buildgraph/resolution"
)

// Formatter formats resolution reports as Graphviz DOT.
type Formatter struct{}

var nodeStyles = map[formatters.NodeKind]string{
	formatters.NodeProject:   "style=filled, fillcolor=white",
	formatters.NodeModule:    "style=filled, fillcolor=lightblue",
	formatters.NodeBuildable: "style=filled, fillcolor=lightyellow",
	formatters.NodeExcluded:  `style="filled,dashed", fillcolor=lightgray`,
}

// Format converts the report to Graphviz DOT format.
func (f *Formatter) Format(r resolution.Report, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph dependencies {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	// Add label if provided
	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	for _, n := range r.Nodes {
		label := n.Name + "\n" + n.Component
		sb.WriteString(fmt.Sprintf("  %q [label=%q, %s];\n", n.Name, label, nodeStyles[formatters.KindOf(n)]))
	}

	edges, cycle := formatters.Edges(r)
	if len(r.Nodes) > 0 && len(edges) > 0 {
		sb.WriteString("\n")
	}
	for _, e := range edges {
		if cycle[e] {
			sb.WriteString(fmt.Sprintf("  %q -> %q [color=red];\n", e.From, e.To))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %q -> %q;\n", e.From, e.To))
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}
