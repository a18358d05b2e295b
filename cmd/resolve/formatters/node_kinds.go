package formatters

import "github.com/LegacyCodeHQ/buildgraph/resolution"

// NodeKind decides how a node is highlighted in graph output.
type NodeKind int

const (
	NodeProject NodeKind = iota
	NodeModule
	// NodeBuildable is a node whose selected artifacts need build work.
	NodeBuildable
	// NodeExcluded is a node whose component was filtered out.
	NodeExcluded
)

// KindOf classifies a node. Exclusion wins over build work, build work over the
// component kind.
func KindOf(n resolution.NodeReport) NodeKind {
	switch {
	case !n.Included:
		return NodeExcluded
	case len(n.Tasks) > 0:
		return NodeBuildable
	case !n.Project:
		return NodeModule
	default:
		return NodeProject
	}
}

// Edge is a dependency between two named nodes.
type Edge struct {
	From string
	To   string
}

// Edges returns every dependency of the report in node order. Cycle reports whether
// an edge was skipped during traversal because it closed a cycle.
func Edges(r resolution.Report) (edges []Edge, cycle map[Edge]bool) {
	cycle = make(map[Edge]bool, len(r.Cycles))
	for _, c := range r.Cycles {
		cycle[Edge{From: c.From, To: c.To}] = true
	}
	for _, n := range r.Nodes {
		for _, dep := range n.Dependencies {
			edges = append(edges, Edge{From: n.Name, To: dep})
		}
	}
	return edges, cycle
}
