package depgraph

// visitState is the depth-first colour of a node.
type visitState int

const (
	unvisited visitState = iota
	inProgress
	done
)

// CycleEdge is an edge whose target was still being visited when the edge was followed.
type CycleEdge struct {
	From int64
	To   int64
}

// Order is the deterministic visiting order of a graph.
type Order struct {
	// NodeIDs starts with the root; dependencies appear after their consumers.
	NodeIDs []int64
	// Cycles lists every edge that led back into a node still on the stack. Such edges
	// are skipped, so the order stays finite and each node appears once.
	Cycles []CycleEdge
}

// Sort computes the visiting order of every node reachable from root.
//
// It is a depth-first post-order walk, reversed at the end so the root comes first. Edges
// are walked in reverse declared order so that, after the final reversal, siblings keep
// their declared left-to-right order.
func Sort(root *Node) Order {
	if root == nil {
		return Order{}
	}

	s := &sorter{state: make(map[int64]visitState)}
	s.visit(nil, root)

	ids := make([]int64, len(s.finished))
	for i, id := range s.finished {
		ids[len(s.finished)-1-i] = id
	}
	return Order{NodeIDs: ids, Cycles: s.cycles}
}

type sorter struct {
	state    map[int64]visitState
	finished []int64
	cycles   []CycleEdge
}

func (s *sorter) visit(from, node *Node) {
	switch s.state[node.ID] {
	case inProgress:
		s.cycles = append(s.cycles, CycleEdge{From: from.ID, To: node.ID})
		return
	case done:
		return
	}

	s.state[node.ID] = inProgress
	for i := len(node.Outgoing) - 1; i >= 0; i-- {
		for _, target := range node.Outgoing[i].Targets {
			if target != nil {
				s.visit(node, target)
			}
		}
	}
	s.state[node.ID] = done
	s.finished = append(s.finished, node.ID)
}
