package depgraph

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	graphlib "github.com/dominikbraun/graph"
)

func nodeHash(n *Node) int64 {
	return n.ID
}

// toGraph copies the part of the graph reachable from root into a graphlib graph keyed by node id.
func toGraph(root *Node) (graphlib.Graph[int64, *Node], error) {
	g := graphlib.New(nodeHash, graphlib.Directed())
	nodes := Reachable(root)
	for _, n := range nodes {
		if err := g.AddVertex(n); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add node %d: %w", n.ID, err)
		}
	}
	for _, n := range nodes {
		for _, edge := range n.Outgoing {
			for _, target := range edge.Targets {
				if target == nil {
					continue
				}
				if err := g.AddEdge(n.ID, target.ID); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
					return nil, fmt.Errorf("failed to add edge %d -> %d: %w", n.ID, target.ID, err)
				}
			}
		}
	}
	return g, nil
}

// Cycles returns the strongly connected components of the graph reachable from root that
// contain a cycle, each sorted by node id. Components are ordered by their smallest id.
func Cycles(root *Node) ([][]int64, error) {
	if root == nil {
		return nil, nil
	}
	g, err := toGraph(root)
	if err != nil {
		return nil, err
	}

	components, err := graphlib.StronglyConnectedComponents(g)
	if err != nil {
		return nil, fmt.Errorf("failed to compute strongly connected components: %w", err)
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	var cycles [][]int64
	for _, c := range components {
		if len(c) == 1 {
			if _, selfLoop := adjacency[c[0]][c[0]]; !selfLoop {
				continue
			}
		}
		cycle := slices.Clone(c)
		slices.Sort(cycle)
		cycles = append(cycles, cycle)
	}
	slices.SortFunc(cycles, func(a, b []int64) int {
		return cmp.Compare(a[0], b[0])
	})
	return cycles, nil
}
