package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/buildgraph/component"
	"github.com/LegacyCodeHQ/buildgraph/depgraph"
)

func TestBuilder_DiamondKeepsRepeatedVisits(t *testing.T) {
	root, sets := projectDiamond()

	results := collect(root, true, sets)

	var ids []int64
	for _, set := range results.ArtifactSets() {
		ids = append(ids, set.ID())
	}
	assert.Equal(t, []int64{10, 20, 30, 30}, ids)
	assert.Equal(t, []int64{1, 2, 3, 4}, results.NodeIDs())

	c, ok := results.NodeArtifactSetIDs(4)
	require.True(t, ok)
	assert.Equal(t, []int64{30}, c)

	rootSets, ok := results.NodeArtifactSetIDs(1)
	require.True(t, ok)
	assert.Empty(t, rootSets)
}

func TestBuilder_LocalProjectArtifactsAreBuildable(t *testing.T) {
	root, sets := projectDiamond()

	results := collect(root, true, sets)

	assert.True(t, results.IsBuildable(10))
	assert.True(t, results.IsBuildable(20))
	assert.True(t, results.IsBuildable(30))
}

func TestBuilder_TrackingDisabledMarksNothingBuildable(t *testing.T) {
	root, sets := projectDiamond()

	results := collect(root, false, sets)

	assert.False(t, results.IsBuildable(10))
	assert.False(t, results.IsBuildable(20))
	assert.False(t, results.IsBuildable(30))
}

func TestBuilder_ExternalModulesAreNotBuildable(t *testing.T) {
	root := projectNode(1, "app")
	guava := moduleNode(2, "com.google.guava", "guava", "33.0.0")
	root.DependsOn(guava)

	results := collect(root, true, map[int64]ArtifactSet{
		guava.ID: setFor(10, guava, Of(Artifact{Name: "guava-33.0.0.jar", Type: "jar"})),
	})

	assert.False(t, results.IsBuildable(10))
}

func TestBuilder_ForeignBuildRequestsAreNotBuildable(t *testing.T) {
	root := projectNode(1, "app")
	plugin := foreignProjectNode(2, "plugins", "lint")
	shared := projectNode(3, "shared")
	root.DependsOn(plugin)
	plugin.DependsOn(shared)

	results := collect(root, true, map[int64]ArtifactSet{
		plugin.ID: setFor(10, plugin, jar("lint")),
		shared.ID: setFor(20, shared, jar("shared")),
	})

	assert.True(t, results.IsBuildable(10), "requested by the current build")
	assert.False(t, results.IsBuildable(20), "requested only by a project of another build")
}

func TestBuilder_BuildableIsStickyAcrossEdges(t *testing.T) {
	root := projectNode(1, "app")
	plugin := foreignProjectNode(2, "plugins", "lint")
	shared := projectNode(3, "shared")
	root.DependsOn(plugin)
	root.DependsOn(shared)
	plugin.DependsOn(shared)

	results := collect(root, true, map[int64]ArtifactSet{
		plugin.ID: setFor(10, plugin, jar("lint")),
		shared.ID: setFor(20, shared, jar("shared")),
	})

	assert.True(t, results.IsBuildable(20))
}

func TestBuilder_CycleIsTolerated(t *testing.T) {
	root, a, b := projectNode(1, "r"), projectNode(2, "a"), projectNode(3, "b")
	root.DependsOn(a)
	a.DependsOn(b)
	b.DependsOn(a)

	results := collect(root, true, map[int64]ArtifactSet{
		a.ID: setFor(10, a, jar("a")),
		b.ID: setFor(20, b, jar("b")),
	})

	assert.Equal(t, []int64{1, 2, 3}, results.NodeIDs())
	assert.Equal(t, []depgraph.CycleEdge{{From: 3, To: 2}}, results.Cycles())

	selected, err := results.Select(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jar", "a.jar"}, artifactNames(selected.Artifacts()))
}

func TestBuilder_UnknownTargetIsRegisteredLast(t *testing.T) {
	root, a := projectNode(1, "r"), projectNode(2, "a")
	root.DependsOn(a)
	detached := projectNode(9, "detached")

	builder := NewBuilder(true)
	builder.StartArtifacts(root)
	builder.VisitArtifacts(root, a, setFor(10, a, jar("a")))
	builder.VisitArtifacts(a, detached, setFor(90, detached, jar("detached")))
	builder.FinishArtifacts()
	results := builder.Complete()

	assert.Equal(t, []int64{1, 2, 9}, results.NodeIDs())
	ids, ok := results.NodeArtifactSetIDs(9)
	require.True(t, ok)
	assert.Equal(t, []int64{90}, ids)
}

func TestBuilder_CompleteSnapshotsLazySets(t *testing.T) {
	root, a := projectNode(1, "r"), projectNode(2, "a")
	root.DependsOn(a)

	calls := 0
	lazy := NewArtifactSet(10, a.ID, a.Component, func() []ResolvedVariant {
		calls++
		return []ResolvedVariant{NewVariant("runtime", nil, jar("a"))}
	})

	results := collect(root, true, map[int64]ArtifactSet{a.ID: lazy})
	require.Equal(t, 1, calls)

	for i := 0; i < 3; i++ {
		selected, err := results.Select(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.jar"}, artifactNames(selected.Artifacts()))
	}
	assert.Equal(t, 1, calls)
}

func TestBuilder_CompleteResetsBuilder(t *testing.T) {
	root, sets := projectDiamond()

	builder := NewBuilder(true)
	Walk(root, lookupByNode(sets), builder)
	first := builder.Complete()
	second := builder.Complete()

	assert.Len(t, first.ArtifactSets(), 4)
	assert.Empty(t, second.ArtifactSets())
	assert.Empty(t, second.NodeIDs())
}

func TestBuilder_EmptyGraph(t *testing.T) {
	root := projectNode(1, "r")

	results := collect(root, true, nil)

	assert.Equal(t, []int64{1}, results.NodeIDs())
	assert.Empty(t, results.ArtifactSets())

	selected, err := results.Select(component.All, FirstVariant)
	require.NoError(t, err)
	assert.Equal(t, Empty, selected.Artifacts())

	node, ok := selected.NodeArtifacts(1)
	require.True(t, ok)
	assert.Equal(t, Empty, node)
}
