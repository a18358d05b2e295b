package artifacts

import (
	"github.com/LegacyCodeHQ/buildgraph/component"
	"github.com/LegacyCodeHQ/buildgraph/depgraph"
)

var currentBuild = component.BuildIdentifier{Name: ":", Current: true}

func projectNode(id int64, path string) *depgraph.Node {
	owner := component.ProjectComponentIdentifier{Build: currentBuild, ProjectPath: ":" + path}
	return depgraph.NewNode(id, owner, depgraph.Configuration{Name: "runtimeElements", Local: true})
}

func foreignProjectNode(id int64, build, path string) *depgraph.Node {
	owner := component.ProjectComponentIdentifier{
		Build:       component.BuildIdentifier{Name: build},
		ProjectPath: ":" + path,
	}
	return depgraph.NewNode(id, owner, depgraph.Configuration{Name: "runtimeElements", Local: true})
}

func moduleNode(id int64, group, module, version string) *depgraph.Node {
	owner := component.ModuleComponentIdentifier{Group: group, Module: module, Version: version}
	return depgraph.NewNode(id, owner, depgraph.Configuration{Name: "runtime"})
}

func jar(name string) ResolvedArtifactSet {
	return Of(Artifact{
		Name: name + ".jar",
		Type: "jar",
		Path: name + "/build/libs/" + name + ".jar",
		Task: ":" + name + ":jar",
	})
}

// setFor creates a frozen artifact set owned by node with a single "runtime" variant.
func setFor(id int64, node *depgraph.Node, artifacts ResolvedArtifactSet) *DefaultArtifactSet {
	return FixedArtifactSet(id, node.ID, node.Component,
		NewVariant("runtime", map[string]string{"usage": "java-runtime"}, artifacts))
}

// lookupByNode attaches the artifact set registered for a target node to every edge
// that reaches it.
func lookupByNode(sets map[int64]ArtifactSet) ArtifactsLookup {
	return func(_ *depgraph.Edge, to *depgraph.Node) ArtifactSet {
		set, ok := sets[to.ID]
		if !ok {
			return nil
		}
		return set
	}
}

func collect(root *depgraph.Node, buildProjectDependencies bool, sets map[int64]ArtifactSet) *VisitedArtifactsResults {
	builder := NewBuilder(buildProjectDependencies)
	Walk(root, lookupByNode(sets), builder)
	return builder.Complete()
}

func artifactNames(set ResolvedArtifactSet) []string {
	var names []string
	for _, a := range set.Artifacts() {
		names = append(names, a.Name)
	}
	return names
}

// projectDiamond builds R → A, R → B, A → C, B → C where A, B and C each carry one
// artifact set.
func projectDiamond() (*depgraph.Node, map[int64]ArtifactSet) {
	r, a, b, c := projectNode(1, "r"), projectNode(2, "a"), projectNode(3, "b"), projectNode(4, "c")
	r.DependsOn(a)
	r.DependsOn(b)
	a.DependsOn(c)
	b.DependsOn(c)

	return r, map[int64]ArtifactSet{
		a.ID: setFor(10, a, jar("a")),
		b.ID: setFor(20, b, jar("b")),
		c.ID: setFor(30, c, jar("c")),
	}
}
