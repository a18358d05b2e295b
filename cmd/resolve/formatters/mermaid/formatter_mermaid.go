package mermaid

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/buildgraph/cmd/resolve/formatters"
	"github.com/LegacyCodeHQ/buildgraph/resolution"
)

// Formatter formats resolution reports as Mermaid.js flowcharts.
type Formatter struct{}

var nodeStyles = map[formatters.NodeKind]string{
	formatters.NodeModule:    "fill:lightblue",
	formatters.NodeBuildable: "fill:lightyellow",
	formatters.NodeExcluded:  "fill:lightgray,stroke-dasharray: 5 5",
}

// Format converts the report to Mermaid.js flowchart format.
func (f *Formatter) Format(r resolution.Report, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder

	// Add title if label provided
	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	for i, c := range r.Cycles {
		sb.WriteString(fmt.Sprintf("%%%% C%d: %s -> %s\n", i+1, c.From, c.To))
	}

	// Mermaid node IDs can't have dots or special characters.
	nodeIDs := make(map[string]string, len(r.Nodes))
	for i, n := range r.Nodes {
		id := fmt.Sprintf("n%d", i)
		nodeIDs[n.Name] = id
		sb.WriteString(fmt.Sprintf("    %s[\"%s<br/>%s\"]\n", id, escapeLabel(n.Name), escapeLabel(n.Component)))
	}

	edges, cycle := formatters.Edges(r)
	for _, e := range edges {
		from, to := nodeIDs[e.From], nodeIDs[e.To]
		if from == "" || to == "" {
			continue
		}
		if cycle[e] {
			sb.WriteString(fmt.Sprintf("    %s -.->|cycle| %s\n", from, to))
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
	}

	for _, n := range r.Nodes {
		if style, ok := nodeStyles[formatters.KindOf(n)]; ok {
			sb.WriteString(fmt.Sprintf("    style %s %s\n", nodeIDs[n.Name], style))
		}
	}

	return sb.String(), nil
}

func escapeLabel(label string) string {
	return strings.ReplaceAll(label, `"`, "#quot;")
}
