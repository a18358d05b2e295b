package artifacts

import (
	"github.com/LegacyCodeHQ/buildgraph/component"
	"github.com/LegacyCodeHQ/buildgraph/depgraph"
)

// DependencyArtifactsVisitor receives the artifacts of a graph traversal: StartArtifacts
// once, VisitArtifacts for every (edge source, edge target, artifact set), then
// FinishArtifacts once.
type DependencyArtifactsVisitor interface {
	StartArtifacts(root *depgraph.Node)
	VisitArtifacts(from, to *depgraph.Node, artifacts ArtifactSet)
	FinishArtifacts()
}

// Builder collects all artifact sets of one resolution and decides which of them carry
// build dependencies.
//
// A Builder belongs to a single traversal and is not safe for concurrent use. Complete
// hands the collected state over to the returned results and resets the builder.
type Builder struct {
	buildProjectDependencies bool

	nodeIDs      []int64
	setsByNode   map[int64][]int64
	nodeHasSet   map[int64]map[int64]bool
	artifactSets []ArtifactSet
	buildable    map[int64]bool
	cycles       []depgraph.CycleEdge
}

// NewBuilder creates a Builder. When buildProjectDependencies is false no artifact set
// is ever marked as needing a build.
func NewBuilder(buildProjectDependencies bool) *Builder {
	b := &Builder{buildProjectDependencies: buildProjectDependencies}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.nodeIDs = nil
	b.setsByNode = make(map[int64][]int64)
	b.nodeHasSet = make(map[int64]map[int64]bool)
	b.artifactSets = nil
	b.buildable = make(map[int64]bool)
	b.cycles = nil
}

func (b *Builder) StartArtifacts(root *depgraph.Node) {
	order := depgraph.Sort(root)
	b.cycles = order.Cycles
	for _, id := range order.NodeIDs {
		b.registerNode(id)
	}
}

func (b *Builder) registerNode(id int64) {
	if _, ok := b.setsByNode[id]; ok {
		return
	}
	b.nodeIDs = append(b.nodeIDs, id)
	b.setsByNode[id] = []int64{}
	b.nodeHasSet[id] = make(map[int64]bool)
}

func (b *Builder) VisitArtifacts(from, to *depgraph.Node, artifacts ArtifactSet) {
	b.artifactSets = append(b.artifactSets, artifacts)

	// Nodes outside the root's reachable graph are registered last.
	b.registerNode(to.ID)
	if !b.nodeHasSet[to.ID][artifacts.ID()] {
		b.nodeHasSet[to.ID][artifacts.ID()] = true
		b.setsByNode[to.ID] = append(b.setsByNode[to.ID], artifacts.ID())
	}

	if !b.buildProjectDependencies || b.buildable[artifacts.ID()] {
		return
	}

	// Only artifacts of locally built configurations need a build.
	if !to.Configuration.Local {
		return
	}

	// Leave out build dependencies requested by projects of other builds. Adding them
	// would create a cycle in this build's task graph and hide the cross-build cycle
	// that the including build reports. This is an approximation.
	if from != nil && component.IsForeignProject(from.Component) {
		return
	}

	b.buildable[artifacts.ID()] = true
}

func (b *Builder) FinishArtifacts() {}

// Complete snapshots every collected artifact set and returns the visited results.
func (b *Builder) Complete() *VisitedArtifactsResults {
	snapshots := make([]ArtifactSet, 0, len(b.artifactSets))
	for _, set := range b.artifactSets {
		snapshots = append(snapshots, set.Snapshot())
	}

	results := newVisitedArtifactsResults(snapshots, b.buildable, b.nodeIDs, b.setsByNode, b.cycles)
	b.reset()
	return results
}
