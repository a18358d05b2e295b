// Package schedule orders the build work that selected artifacts require.
package schedule

import (
	"errors"
	"fmt"

	graphlib "github.com/dominikbraun/graph"

	"github.com/LegacyCodeHQ/buildgraph/artifacts"
)

// ErrTaskCycle is returned when declared task dependencies form a cycle.
var ErrTaskCycle = errors.New("task dependencies form a cycle")

// Plan returns every task needed to produce selected, dependencies before dependents.
//
// The tasks requested by selected are expanded with their declared dependencies. Tasks
// that do not depend on each other keep the order in which they were first requested.
func Plan(selected artifacts.ResolvedArtifactSet, declared map[string][]string) ([]string, error) {
	if selected == nil {
		return nil, nil
	}

	requested := artifacts.BuildTasks(selected)
	if len(requested) == 0 {
		return nil, nil
	}

	tasks := graphlib.New(graphlib.StringHash, graphlib.Directed(), graphlib.PreventCycles())
	rank := make(map[string]int)
	add := func(task string) (bool, error) {
		if _, ok := rank[task]; ok {
			return false, nil
		}
		if err := tasks.AddVertex(task); err != nil {
			if errors.Is(err, graphlib.ErrVertexAlreadyExists) {
				return false, nil
			}
			return false, fmt.Errorf("failed to add task %s: %w", task, err)
		}
		rank[task] = len(rank)
		return true, nil
	}

	queue := make([]string, 0, len(requested))
	for _, task := range requested {
		added, err := add(task)
		if err != nil {
			return nil, err
		}
		if added {
			queue = append(queue, task)
		}
	}
	for i := 0; i < len(queue); i++ {
		task := queue[i]
		for _, dep := range declared[task] {
			added, err := add(dep)
			if err != nil {
				return nil, err
			}
			if added {
				queue = append(queue, dep)
			}
			err = tasks.AddEdge(dep, task)
			if errors.Is(err, graphlib.ErrEdgeCreatesCycle) {
				return nil, fmt.Errorf("%w: %s depends on %s", ErrTaskCycle, task, dep)
			}
			if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("failed to add task dependency %s -> %s: %w", task, dep, err)
			}
		}
	}

	order, err := graphlib.StableTopologicalSort(tasks, func(a, b string) bool {
		return rank[a] < rank[b]
	})
	if err != nil {
		return nil, fmt.Errorf("failed to order tasks: %w", err)
	}
	return order, nil
}
