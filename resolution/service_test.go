package resolution

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/buildgraph/artifacts"
	"github.com/LegacyCodeHQ/buildgraph/internal/config"
	"github.com/LegacyCodeHQ/buildgraph/internal/logging"
	"github.com/LegacyCodeHQ/buildgraph/internal/metrics"
)

func openSession(t *testing.T, path string, cfg *config.Config) *Session {
	t.Helper()
	session, err := NewService(cfg, metrics.New()).OpenFile(context.Background(), path)
	require.NoError(t, err)
	return session
}

func artifactNames(set artifacts.ResolvedArtifactSet) []string {
	var names []string
	for _, a := range set.Artifacts() {
		names = append(names, a.Name)
	}
	return names
}

func TestSession_DefaultSelection(t *testing.T) {
	session := openSession(t, "testdata/multi_project.yaml", nil)

	selection, err := session.Select(context.Background(), Request{})

	require.NoError(t, err)
	assert.Equal(t,
		[]string{"guava-32.1.3-jre.jar", "utils.jar", "core.jar", "core-test-fixtures.jar"},
		artifactNames(selection.Results.Artifacts()))
	assert.Equal(t,
		[]string{":utils:compileJava", ":utils:jar", ":core:compileJava", ":core:jar", ":core:testFixturesJar"},
		selection.Plan)
	assert.False(t, selection.Cached)
}

func TestSession_SelectionIsCached(t *testing.T) {
	session := openSession(t, "testdata/multi_project.yaml", nil)
	req := Request{Attributes: map[string]string{"usage": "java-runtime"}}

	first, err := session.Select(context.Background(), req)
	require.NoError(t, err)
	second, err := session.Select(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Same(t, first.Results, second.Results)
}

func TestSession_ProjectsOnly(t *testing.T) {
	session := openSession(t, "testdata/multi_project.yaml", nil)

	selection, err := session.Select(context.Background(), Request{ProjectsOnly: true})

	require.NoError(t, err)
	assert.Equal(t,
		[]string{"utils.jar", "core.jar", "core-test-fixtures.jar"},
		artifactNames(selection.Results.Artifacts()))
}

func TestSession_VersionRequirement(t *testing.T) {
	session := openSession(t, "testdata/multi_project.yaml", nil)

	selection, err := session.Select(context.Background(), Request{Requires: []string{"com.google.guava:guava@>=33"}})

	require.NoError(t, err)
	assert.NotContains(t, artifactNames(selection.Results.Artifacts()), "guava-32.1.3-jre.jar")
}

func TestSession_InvalidRequirement(t *testing.T) {
	session := openSession(t, "testdata/multi_project.yaml", nil)

	_, err := session.Select(context.Background(), Request{Requires: []string{"guava"}})

	assert.Error(t, err)
}

func TestSession_BuildTrackingDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.BuildProjectDependencies = false
	session := openSession(t, "testdata/multi_project.yaml", cfg)

	selection, err := session.Select(context.Background(), Request{})

	require.NoError(t, err)
	assert.Len(t, selection.Results.Artifacts().Artifacts(), 4)
	assert.Empty(t, selection.Plan)
}

func TestSession_AmbiguousVariant(t *testing.T) {
	session := openSession(t, "testdata/multi_project.yaml", nil)

	_, err := session.Select(context.Background(), Request{Attributes: map[string]string{"category": "library"}})

	var ambiguous *artifacts.AmbiguousVariantError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"apiElements", "runtimeElements"}, ambiguous.Candidates)
}

func TestService_LogsToleratedCycles(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "debug", "text")
	require.NoError(t, err)
	ctx := logging.WithLogger(context.Background(), logger)

	session, err := NewService(nil, nil).OpenFile(ctx, "testdata/cyclic.yaml")
	require.NoError(t, err)

	assert.Equal(t, [][]int64{{2, 3}}, session.Cycles)
	assert.Contains(t, buf.String(), `msg="Dependency cycle tolerated" from=b to=a`)

	selection, err := session.Select(ctx, Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jar", "a.jar"}, artifactNames(selection.Results.Artifacts()))
}

func TestService_MissingFile(t *testing.T) {
	_, err := NewService(nil, nil).OpenFile(context.Background(), "testdata/missing.yaml")
	assert.Error(t, err)
}

func TestSession_Report(t *testing.T) {
	session := openSession(t, "testdata/multi_project.yaml", nil)
	selection, err := session.Select(context.Background(), Request{ProjectsOnly: true})
	require.NoError(t, err)

	report := session.Report(selection)

	assert.Equal(t, "app", report.Root)
	assert.Equal(t, "projects", report.View)
	require.Len(t, report.Nodes, 4)

	app := report.Nodes[0]
	assert.Equal(t, "app", app.Name)
	assert.Equal(t, []string{"core", "utils", "guava"}, app.Dependencies)
	assert.True(t, app.Included)
	assert.Empty(t, app.Artifacts)

	core := report.Nodes[1]
	assert.Equal(t, "project :core", core.Component)
	assert.True(t, core.Project)
	assert.Equal(t, []string{":core:jar", ":core:testFixturesJar"}, core.Tasks)
	require.Len(t, core.Artifacts, 2)
	assert.Equal(t, "core-test-fixtures.jar", core.Artifacts[1].Name)

	guava := report.Nodes[3]
	assert.Equal(t, "guava", guava.Name)
	assert.False(t, guava.Included)
	assert.False(t, guava.Project)
}

func TestRequest_Key(t *testing.T) {
	assert.Equal(t, "default", Request{}.Key())
	assert.Equal(t,
		"attr.category=library;attr.usage=java-api;projects",
		Request{Attributes: map[string]string{"usage": "java-api", "category": "library"}, ProjectsOnly: true}.Key())
	assert.Equal(t, "variant=runtime;order=collection",
		Request{Variant: "runtime", Order: artifacts.CollectionOrder}.Key())
}

func TestParseAttributes(t *testing.T) {
	attributes, err := ParseAttributes([]string{"usage=java-api", " category = library "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"usage": "java-api", "category": "library"}, attributes)

	_, err = ParseAttributes([]string{"usage"})
	assert.Error(t, err)

	attributes, err = ParseAttributes(nil)
	require.NoError(t, err)
	assert.Nil(t, attributes)
}
