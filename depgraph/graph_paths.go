package depgraph

import (
	"fmt"
	"slices"

	graphlib "github.com/dominikbraun/graph"
)

// PathNodes returns all nodes on any directed path from root to the target node, in
// visiting order. A node X is included if X is reachable from root and target is
// reachable from X. If target is not reachable, the result is empty.
func PathNodes(root *Node, target int64) []int64 {
	if root == nil {
		return nil
	}

	forward, reverse := buildAdjacencyLists(root)
	if _, ok := forward[target]; !ok {
		return nil
	}

	reachableFromRoot := bfsReachable(forward, root.ID)
	canReachTarget := bfsReachable(reverse, target)

	var result []int64
	for _, id := range Sort(root).NodeIDs {
		if reachableFromRoot[id] && canReachTarget[id] {
			result = append(result, id)
		}
	}
	return result
}

// AllPaths returns every simple path from root to target, each starting with root's id.
// Paths are sorted lexicographically by node id for stable output.
func AllPaths(root *Node, target int64) ([][]int64, error) {
	if root == nil {
		return nil, nil
	}
	g, err := toGraph(root)
	if err != nil {
		return nil, err
	}
	if _, err := g.Vertex(target); err != nil {
		return nil, fmt.Errorf("node %d is not reachable from root: %w", target, err)
	}
	if root.ID == target {
		return [][]int64{{root.ID}}, nil
	}

	paths, err := graphlib.AllPathsBetween(g, root.ID, target)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate paths to node %d: %w", target, err)
	}
	slices.SortFunc(paths, slices.Compare[[]int64])
	return paths, nil
}

// buildAdjacencyLists creates forward and reverse adjacency lists for the graph reachable from root.
// Forward: A→B means forward[A] contains B
// Reverse: A→B means reverse[B] contains A
func buildAdjacencyLists(root *Node) (forward, reverse map[int64][]int64) {
	forward = make(map[int64][]int64)
	reverse = make(map[int64][]int64)

	nodes := Reachable(root)
	for _, n := range nodes {
		forward[n.ID] = []int64{}
		reverse[n.ID] = []int64{}
	}

	for _, n := range nodes {
		for _, edge := range n.Outgoing {
			for _, target := range edge.Targets {
				if target == nil {
					continue
				}
				forward[n.ID] = append(forward[n.ID], target.ID)
				reverse[target.ID] = append(reverse[target.ID], n.ID)
			}
		}
	}

	return forward, reverse
}

// bfsReachable returns all nodes reachable from source.
func bfsReachable(adjacency map[int64][]int64, source int64) map[int64]bool {
	reachable := make(map[int64]bool)
	reachable[source] = true

	queue := []int64{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range adjacency[current] {
			if !reachable[neighbor] {
				reachable[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return reachable
}
