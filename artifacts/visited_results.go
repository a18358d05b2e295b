package artifacts

import (
	"reflect"
	"slices"

	"github.com/LegacyCodeHQ/buildgraph/component"
	"github.com/LegacyCodeHQ/buildgraph/depgraph"
)

// IterationOrder controls the order in which Select considers artifact sets.
type IterationOrder int

const (
	// ConsumerFirst considers the artifact sets of dependencies before those of the
	// nodes that depend on them.
	ConsumerFirst IterationOrder = iota
	// CollectionOrder considers artifact sets in the order they were visited.
	CollectionOrder
)

// VisitedArtifactsResults is the immutable product of one artifact collection pass.
// It is safe for concurrent use by multiple Select calls.
type VisitedArtifactsResults struct {
	artifactSets []ArtifactSet
	setsByID     map[int64]ArtifactSet
	buildable    map[int64]bool
	nodeIDs      []int64
	setsByNode   map[int64][]int64
	cycles       []depgraph.CycleEdge
}

func newVisitedArtifactsResults(
	artifactSets []ArtifactSet,
	buildable map[int64]bool,
	nodeIDs []int64,
	setsByNode map[int64][]int64,
	cycles []depgraph.CycleEdge,
) *VisitedArtifactsResults {
	setsByID := make(map[int64]ArtifactSet, len(artifactSets))
	for _, set := range artifactSets {
		if _, ok := setsByID[set.ID()]; !ok {
			setsByID[set.ID()] = set
		}
	}
	return &VisitedArtifactsResults{
		artifactSets: artifactSets,
		setsByID:     setsByID,
		buildable:    buildable,
		nodeIDs:      nodeIDs,
		setsByNode:   setsByNode,
		cycles:       cycles,
	}
}

// ArtifactSets returns every visited artifact set, including repeats through other edges.
func (r *VisitedArtifactsResults) ArtifactSets() []ArtifactSet {
	return slices.Clone(r.artifactSets)
}

// NodeIDs returns the node visiting order, root first.
func (r *VisitedArtifactsResults) NodeIDs() []int64 {
	return slices.Clone(r.nodeIDs)
}

// NodeArtifactSetIDs returns the ids of the artifact sets attached to a node.
func (r *VisitedArtifactsResults) NodeArtifactSetIDs(nodeID int64) ([]int64, bool) {
	ids, ok := r.setsByNode[nodeID]
	return slices.Clone(ids), ok
}

// ArtifactSet returns the artifact set with the given id.
func (r *VisitedArtifactsResults) ArtifactSet(id int64) (ArtifactSet, bool) {
	set, ok := r.setsByID[id]
	return set, ok
}

// IsBuildable reports whether the artifact set must be built before use.
func (r *VisitedArtifactsResults) IsBuildable(id int64) bool {
	return r.buildable[id]
}

// Cycles returns the edges that were skipped because they closed a cycle.
func (r *VisitedArtifactsResults) Cycles() []depgraph.CycleEdge {
	return slices.Clone(r.cycles)
}

// Select picks one variant of every artifact set whose component passes filter, using
// the consumer-first order. A nil filter accepts every component; a nil selector picks
// the first variant. Errors from selector are returned unchanged.
func (r *VisitedArtifactsResults) Select(filter component.Filter, selector VariantSelector) (*SelectedArtifactResults, error) {
	return r.SelectInOrder(ConsumerFirst, filter, selector)
}

// SelectInOrder is Select with an explicit iteration order.
func (r *VisitedArtifactsResults) SelectInOrder(order IterationOrder, filter component.Filter, selector VariantSelector) (*SelectedArtifactResults, error) {
	if filter == nil {
		filter = component.All
	}
	if selector == nil {
		selector = FirstVariant
	}

	var all []ResolvedArtifactSet
	seen := make(map[ResolvedArtifactSet]bool)
	resolvedByID := make(map[int64]ResolvedArtifactSet)

	for _, set := range r.inOrder(order) {
		if _, done := resolvedByID[set.ID()]; done {
			continue
		}

		if !filter(set.ComponentID()) {
			resolvedByID[set.ID()] = nil
			continue
		}

		selected, err := selector(set.Variants())
		if err != nil {
			return nil, err
		}

		resolved := Empty
		if selected != nil {
			resolved = selected.Artifacts()
			if resolved == nil {
				resolved = Empty
			}
			if !r.buildable[set.ID()] {
				resolved = NoBuildDependencies(resolved)
			}
			if resolved != Empty && !seen[resolved] {
				seen[resolved] = true
				all = append(all, resolved)
			}
		}
		resolvedByID[set.ID()] = resolved
	}

	return &SelectedArtifactResults{
		all:          Composite(all...),
		resolvedByID: resolvedByID,
		setsByNode:   r.setsByNode,
	}, nil
}

// isSeen records set in seen and reports whether it was already there. Sets whose
// dynamic type cannot be a map key are never deduplicated.
func isSeen(seen map[ResolvedArtifactSet]bool, set ResolvedArtifactSet) bool {
	if !reflect.TypeOf(set).Comparable() {
		return false
	}
	if seen[set] {
		return true
	}
	seen[set] = true
	return false
}

func (r *VisitedArtifactsResults) inOrder(order IterationOrder) []ArtifactSet {
	if order == CollectionOrder {
		return r.artifactSets
	}

	// A dependency's artifacts must be selected before those of its consumers. The
	// node order puts consumers first, so walk it backwards.
	sorted := make([]ArtifactSet, 0, len(r.setsByID))
	for i := len(r.nodeIDs) - 1; i >= 0; i-- {
		for _, id := range r.setsByNode[r.nodeIDs[i]] {
			sorted = append(sorted, r.setsByID[id])
		}
	}
	return sorted
}

// SelectedArtifactResults is the immutable outcome of one Select call.
type SelectedArtifactResults struct {
	all          ResolvedArtifactSet
	resolvedByID map[int64]ResolvedArtifactSet
	setsByNode   map[int64][]int64
}

// Artifacts returns the union of every selected artifact set.
func (r *SelectedArtifactResults) Artifacts() ResolvedArtifactSet {
	return r.all
}

// ArtifactsFor returns the selection for one artifact set. The boolean is false when the
// set was never visited. A nil set with true means the component was filtered out.
func (r *SelectedArtifactResults) ArtifactsFor(artifactSetID int64) (ResolvedArtifactSet, bool) {
	set, ok := r.resolvedByID[artifactSetID]
	return set, ok
}

// NodeArtifacts returns the union of the selections of a node's artifact sets. A node
// without artifact sets yields Empty. The boolean is false for unknown nodes and for
// nodes whose component was filtered out.
func (r *SelectedArtifactResults) NodeArtifacts(nodeID int64) (ResolvedArtifactSet, bool) {
	ids, ok := r.setsByNode[nodeID]
	if !ok {
		return nil, false
	}
	if len(ids) == 0 {
		return Empty, true
	}

	var parts []ResolvedArtifactSet
	included := false
	for _, id := range ids {
		set := r.resolvedByID[id]
		if set == nil {
			continue
		}
		included = true
		parts = append(parts, set)
	}
	if !included {
		return nil, false
	}
	return Composite(parts...), true
}
