package depgraph

import "github.com/LegacyCodeHQ/buildgraph/component"

// Configuration describes the resolved configuration a node stands for.
type Configuration struct {
	Name string
	// Local is true for configurations of components built by this resolution's builds.
	Local bool
}

// Node is one resolved configuration of one component in the dependency graph.
// Nodes are created during graph construction and never mutated afterwards.
type Node struct {
	ID            int64
	Component     component.Identifier
	Configuration Configuration
	Outgoing      []*Edge
}

// Edge is a dependency from one node to one or more target nodes.
type Edge struct {
	From    *Node
	Targets []*Node
}

// NewNode creates a node without outgoing edges.
func NewNode(id int64, owner component.Identifier, configuration Configuration) *Node {
	return &Node{
		ID:            id,
		Component:     owner,
		Configuration: configuration,
	}
}

// DependsOn appends an outgoing edge from n to targets and returns it.
func (n *Node) DependsOn(targets ...*Node) *Edge {
	edge := &Edge{From: n, Targets: targets}
	n.Outgoing = append(n.Outgoing, edge)
	return edge
}

func (n *Node) String() string {
	if n.Component == nil {
		return n.Configuration.Name
	}
	if n.Configuration.Name == "" {
		return n.Component.DisplayName()
	}
	return n.Component.DisplayName() + " (" + n.Configuration.Name + ")"
}

// Reachable returns every node reachable from root, root first, in breadth-first
// order following edges and targets in declared order.
func Reachable(root *Node) []*Node {
	if root == nil {
		return nil
	}
	seen := map[int64]bool{root.ID: true}
	queue := []*Node{root}
	for i := 0; i < len(queue); i++ {
		for _, edge := range queue[i].Outgoing {
			for _, target := range edge.Targets {
				if target == nil || seen[target.ID] {
					continue
				}
				seen[target.ID] = true
				queue = append(queue, target)
			}
		}
	}
	return queue
}
