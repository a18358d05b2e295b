package artifacts

import "github.com/LegacyCodeHQ/buildgraph/depgraph"

// ArtifactsLookup returns the artifact set attached to one target of an edge, or nil if
// the target contributes no artifacts through that edge.
type ArtifactsLookup func(edge *depgraph.Edge, to *depgraph.Node) ArtifactSet

// Walk drives visitors over the graph reachable from root. Nodes are expanded once, in
// breadth-first order; edges and their targets are visited in declared order.
func Walk(root *depgraph.Node, lookup ArtifactsLookup, visitors ...DependencyArtifactsVisitor) {
	if root == nil {
		return
	}

	for _, v := range visitors {
		v.StartArtifacts(root)
	}

	for _, node := range depgraph.Reachable(root) {
		for _, edge := range node.Outgoing {
			for _, target := range edge.Targets {
				if target == nil {
					continue
				}
				set := lookup(edge, target)
				if set == nil {
					continue
				}
				for _, v := range visitors {
					v.VisitArtifacts(node, target, set)
				}
			}
		}
	}

	for _, v := range visitors {
		v.FinishArtifacts()
	}
}
