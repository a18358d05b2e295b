package artifacts

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/buildgraph/component"
)

func TestSelect_DiamondConsumerFirst(t *testing.T) {
	root, sets := projectDiamond()
	results := collect(root, true, sets)

	selected, err := results.Select(nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"c.jar", "b.jar", "a.jar"}, artifactNames(selected.Artifacts()))
	assert.Equal(t, []string{":c:jar", ":b:jar", ":a:jar"}, BuildTasks(selected.Artifacts()))
}

func TestSelect_CollectionOrder(t *testing.T) {
	root, sets := projectDiamond()
	results := collect(root, true, sets)

	selected, err := results.SelectInOrder(CollectionOrder, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"a.jar", "b.jar", "c.jar"}, artifactNames(selected.Artifacts()))
}

func TestSelect_CallsSelectorOncePerArtifactSet(t *testing.T) {
	root, sets := projectDiamond()
	results := collect(root, true, sets)

	calls := 0
	counting := func(variants []ResolvedVariant) (ResolvedVariant, error) {
		calls++
		return FirstVariant(variants)
	}

	_, err := results.Select(nil, counting)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestSelect_DeduplicatesSharedCollections(t *testing.T) {
	root, a, b := projectNode(1, "r"), projectNode(2, "a"), projectNode(3, "b")
	root.DependsOn(a)
	root.DependsOn(b)
	shared := jar("shared")

	results := collect(root, true, map[int64]ArtifactSet{
		a.ID: setFor(10, a, shared),
		b.ID: setFor(20, b, shared),
	})

	selected, err := results.Select(nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"shared.jar"}, artifactNames(selected.Artifacts()))
	fromA, _ := selected.ArtifactsFor(10)
	fromB, _ := selected.ArtifactsFor(20)
	assert.Same(t, fromA, fromB)
}

func TestSelect_FilteredComponentsAreSkipped(t *testing.T) {
	root := projectNode(1, "app")
	lib := projectNode(2, "lib")
	guava := moduleNode(3, "com.google.guava", "guava", "33.0.0")
	root.DependsOn(lib)
	root.DependsOn(guava)

	results := collect(root, true, map[int64]ArtifactSet{
		lib.ID:   setFor(10, lib, jar("lib")),
		guava.ID: setFor(20, guava, Of(Artifact{Name: "guava-33.0.0.jar", Type: "jar"})),
	})

	calls := 0
	counting := func(variants []ResolvedVariant) (ResolvedVariant, error) {
		calls++
		return FirstVariant(variants)
	}
	selected, err := results.Select(component.Projects, counting)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"lib.jar"}, artifactNames(selected.Artifacts()))

	filtered, ok := selected.ArtifactsFor(20)
	assert.True(t, ok)
	assert.Nil(t, filtered)

	_, ok = selected.NodeArtifacts(guava.ID)
	assert.False(t, ok)
}

func TestSelect_NothingChosenYieldsEmpty(t *testing.T) {
	root, sets := projectDiamond()
	results := collect(root, true, sets)

	selected, err := results.Select(nil, NoVariant)

	require.NoError(t, err)
	assert.Equal(t, Empty, selected.Artifacts())
	set, ok := selected.ArtifactsFor(30)
	assert.True(t, ok)
	assert.Equal(t, Empty, set)
}

func TestSelect_NonBuildableSetsReportNoBuildWork(t *testing.T) {
	root, sets := projectDiamond()
	results := collect(root, false, sets)

	selected, err := results.Select(nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"c.jar", "b.jar", "a.jar"}, artifactNames(selected.Artifacts()))
	assert.Empty(t, BuildTasks(selected.Artifacts()))

	a, ok := selected.ArtifactsFor(10)
	require.True(t, ok)
	assert.False(t, HasBuildDependencies(a))
}

func TestSelect_ForeignBuildRequestKeepsArtifactsWithoutBuildWork(t *testing.T) {
	root := projectNode(1, "app")
	plugin := foreignProjectNode(2, "plugins", "lint")
	shared := projectNode(3, "shared")
	root.DependsOn(plugin)
	plugin.DependsOn(shared)

	results := collect(root, true, map[int64]ArtifactSet{
		plugin.ID: setFor(10, plugin, jar("lint")),
		shared.ID: setFor(20, shared, jar("shared")),
	})

	selected, err := results.Select(nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"shared.jar", "lint.jar"}, artifactNames(selected.Artifacts()))
	assert.Equal(t, []string{":lint:jar"}, BuildTasks(selected.Artifacts()))
}

func TestSelect_ReturnsSelectorErrorUnchanged(t *testing.T) {
	root, sets := projectDiamond()
	results := collect(root, true, sets)
	boom := errors.New("boom")

	selected, err := results.Select(nil, func([]ResolvedVariant) (ResolvedVariant, error) {
		return nil, boom
	})

	assert.Nil(t, selected)
	assert.Same(t, boom, err)
}

func TestSelect_AmbiguousVariantsFail(t *testing.T) {
	root, a := projectNode(1, "r"), projectNode(2, "a")
	root.DependsOn(a)
	set := FixedArtifactSet(10, a.ID, a.Component,
		NewVariant("apiElements", map[string]string{"usage": "java-api"}, jar("a")),
		NewVariant("runtimeElements", map[string]string{"usage": "java-runtime"}, jar("a")),
	)
	results := collect(root, true, map[int64]ArtifactSet{a.ID: set})

	_, err := results.Select(nil, MatchAttributes(map[string]string{"category": "library"}))

	var ambiguous *AmbiguousVariantError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"apiElements", "runtimeElements"}, ambiguous.Candidates)
}

func TestSelect_IsRepeatable(t *testing.T) {
	root, sets := projectDiamond()
	results := collect(root, true, sets)

	first, err := results.Select(component.Projects, FirstVariant)
	require.NoError(t, err)
	second, err := results.Select(component.Projects, FirstVariant)
	require.NoError(t, err)

	assert.Equal(t, artifactNames(first.Artifacts()), artifactNames(second.Artifacts()))
	assert.Equal(t, BuildTasks(first.Artifacts()), BuildTasks(second.Artifacts()))
}

func TestSelect_NodeArtifacts(t *testing.T) {
	root, sets := projectDiamond()
	results := collect(root, true, sets)

	selected, err := results.Select(nil, nil)
	require.NoError(t, err)

	c, ok := selected.NodeArtifacts(4)
	require.True(t, ok)
	assert.Equal(t, []string{"c.jar"}, artifactNames(c))

	r, ok := selected.NodeArtifacts(1)
	require.True(t, ok)
	assert.Equal(t, Empty, r)

	_, ok = selected.NodeArtifacts(99)
	assert.False(t, ok)
}

func TestVisitedArtifactsResults_ArtifactSetLookup(t *testing.T) {
	root, sets := projectDiamond()
	results := collect(root, true, sets)

	set, ok := results.ArtifactSet(30)
	require.True(t, ok)
	assert.Equal(t, int64(4), set.NodeID())

	_, ok = results.ArtifactSet(99)
	assert.False(t, ok)
}

func TestSelect_ConcurrentCallsAgree(t *testing.T) {
	root, sets := projectDiamond()
	results := collect(root, true, sets)

	const callers = 16
	var wg sync.WaitGroup
	names := make([][]string, callers)
	tasks := make([][]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			selected, err := results.Select(nil, nil)
			errs[i] = err
			if err != nil {
				return
			}
			names[i] = artifactNames(selected.Artifacts())
			tasks[i] = BuildTasks(selected.Artifacts())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, []string{"c.jar", "b.jar", "a.jar"}, names[i])
		assert.Equal(t, []string{":c:jar", ":b:jar", ":a:jar"}, tasks[i])
	}
}

func TestSelect_SameArtifactSetOnSeveralEdges(t *testing.T) {
	root, a, b := projectNode(1, "r"), projectNode(2, "a"), projectNode(3, "b")
	root.DependsOn(a)
	root.DependsOn(b)
	grouping := setFor(10, a, jar("g"))

	results := collect(root, true, map[int64]ArtifactSet{
		a.ID: grouping,
		b.ID: grouping,
	})

	calls := 0
	counting := func(variants []ResolvedVariant) (ResolvedVariant, error) {
		calls++
		return FirstVariant(variants)
	}

	selected, err := results.Select(nil, counting)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []int64{1, 2, 3}, results.NodeIDs())
	assert.Equal(t, []string{"g.jar"}, artifactNames(selected.Artifacts()))
	assert.Equal(t, []string{":g:jar"}, BuildTasks(selected.Artifacts()))

	fromA, ok := selected.NodeArtifacts(a.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"g.jar"}, artifactNames(fromA))

	fromB, ok := selected.NodeArtifacts(b.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"g.jar"}, artifactNames(fromB))
}

// artifactList is a ResolvedArtifactSet whose dynamic type cannot be a map key.
type artifactList []Artifact

func (l artifactList) Artifacts() []Artifact {
	return append([]Artifact(nil), l...)
}

func (l artifactList) VisitBuildDependencies(tasks TaskCollector) {
	for _, a := range l {
		if a.Task != "" {
			tasks.AddTask(a.Task)
		}
	}
}

func TestSelect_NonComparableArtifactSets(t *testing.T) {
	root, a, b := projectNode(1, "r"), projectNode(2, "a"), projectNode(3, "b")
	root.DependsOn(a)
	root.DependsOn(b)

	results := collect(root, true, map[int64]ArtifactSet{
		a.ID: setFor(10, a, artifactList{{Name: "a.jar", Task: ":a:jar"}}),
		b.ID: setFor(20, b, artifactList{{Name: "b.jar", Task: ":b:jar"}}),
	})

	var selected *SelectedArtifactResults
	var err error
	require.NotPanics(t, func() {
		selected, err = results.Select(nil, nil)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"b.jar", "a.jar"}, artifactNames(selected.Artifacts()))
	assert.Equal(t, []string{":b:jar", ":a:jar"}, BuildTasks(selected.Artifacts()))
}

func TestSelect_SelectorCannotAlterSnapshot(t *testing.T) {
	root, lib := projectNode(1, "app"), projectNode(2, "lib")
	root.DependsOn(lib)

	results := collect(root, true, map[int64]ArtifactSet{
		lib.ID: FixedArtifactSet(10, lib.ID, lib.Component,
			NewVariant("runtime", nil, jar("lib")),
			NewVariant("fixtures", nil, jar("lib-fixtures"))),
	})

	reversing := func(variants []ResolvedVariant) (ResolvedVariant, error) {
		slices.Reverse(variants)
		return variants[0], nil
	}
	first, err := results.Select(nil, reversing)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib-fixtures.jar"}, artifactNames(first.Artifacts()))

	second, err := results.Select(nil, FirstVariant)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib.jar"}, artifactNames(second.Artifacts()))
}
