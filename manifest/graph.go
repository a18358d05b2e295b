package manifest

import (
	"errors"
	"fmt"
	"strings"

	graphlib "github.com/dominikbraun/graph"

	"github.com/LegacyCodeHQ/buildgraph/artifacts"
	"github.com/LegacyCodeHQ/buildgraph/component"
	"github.com/LegacyCodeHQ/buildgraph/depgraph"
)

const defaultConfiguration = "default"

// Graph is a built graph description: the node graph ready for traversal together with
// the artifact sets reachable through its edges.
type Graph struct {
	Root  *depgraph.Node
	Nodes []*depgraph.Node
	Tasks []TaskSpec
	// Unreachable lists the declared nodes the root does not depend on, in declaration
	// order. They take no part in resolution.
	Unreachable []string

	byName      map[string]*depgraph.Node
	names       map[int64]string
	defaultSets map[int64]artifacts.ArtifactSet
	edgeSets    map[*depgraph.Edge]artifacts.ArtifactSet
	setNames    map[int64]string
}

// Build turns doc into a graph. Node ids and artifact set ids are assigned in
// declaration order, starting at 1; default artifact sets are numbered before the
// explicitly declared ones.
func Build(doc *Document) (*Graph, error) {
	if doc == nil || doc.Root == "" {
		return nil, ErrNoRoot
	}

	g := &Graph{
		Tasks:       doc.Tasks,
		byName:      make(map[string]*depgraph.Node, len(doc.Nodes)),
		names:       make(map[int64]string, len(doc.Nodes)),
		defaultSets: make(map[int64]artifacts.ArtifactSet),
		edgeSets:    make(map[*depgraph.Edge]artifacts.ArtifactSet),
		setNames:    make(map[int64]string),
	}
	declared := graphlib.New(graphlib.StringHash, graphlib.Directed())

	for i, spec := range doc.Nodes {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: node %d has no name", ErrInvalidNode, i+1)
		}
		owner, local, err := componentOf(spec)
		if err != nil {
			return nil, err
		}
		if err := declared.AddVertex(spec.Name); err != nil {
			if errors.Is(err, graphlib.ErrVertexAlreadyExists) {
				return nil, fmt.Errorf("%w: node %q", ErrDuplicateName, spec.Name)
			}
			return nil, fmt.Errorf("failed to add node %q: %w", spec.Name, err)
		}

		configuration := spec.Configuration
		if configuration == "" {
			configuration = defaultConfiguration
		}
		node := depgraph.NewNode(int64(i+1), owner, depgraph.Configuration{Name: configuration, Local: local})
		g.Nodes = append(g.Nodes, node)
		g.byName[spec.Name] = node
		g.names[node.ID] = spec.Name
	}

	root, ok := g.byName[doc.Root]
	if !ok {
		return nil, fmt.Errorf("%w: root %q", ErrUnknownNode, doc.Root)
	}
	g.Root = root

	var nextSetID int64
	for i, spec := range doc.Nodes {
		if len(spec.Variants) == 0 {
			continue
		}
		nextSetID++
		node := g.Nodes[i]
		g.defaultSets[node.ID] = artifacts.FixedArtifactSet(nextSetID, node.ID, node.Component, variantsOf(spec.Variants)...)
		g.setNames[nextSetID] = spec.Name
	}

	named := make(map[string]artifacts.ArtifactSet, len(doc.ArtifactSets))
	for _, spec := range doc.ArtifactSets {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: artifact set owned by %q has no name", ErrInvalidArtifactSet, spec.Node)
		}
		if _, ok := named[spec.Name]; ok {
			return nil, fmt.Errorf("%w: artifact set %q", ErrDuplicateName, spec.Name)
		}
		owner, ok := g.byName[spec.Node]
		if !ok {
			return nil, fmt.Errorf("%w: artifact set %q is owned by %q", ErrUnknownNode, spec.Name, spec.Node)
		}
		nextSetID++
		named[spec.Name] = artifacts.FixedArtifactSet(nextSetID, owner.ID, owner.Component, variantsOf(spec.Variants)...)
		g.setNames[nextSetID] = spec.Name
	}

	for i, spec := range doc.Nodes {
		from := g.Nodes[i]
		for _, dep := range spec.Dependencies {
			targets := make([]*depgraph.Node, 0, len(dep.Targets))
			for _, name := range dep.Targets {
				err := declared.AddEdge(spec.Name, name)
				if errors.Is(err, graphlib.ErrVertexNotFound) {
					return nil, fmt.Errorf("%w: %q depends on %q", ErrUnknownNode, spec.Name, name)
				}
				if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
					return nil, fmt.Errorf("failed to add dependency %q -> %q: %w", spec.Name, name, err)
				}
				targets = append(targets, g.byName[name])
			}

			edge := from.DependsOn(targets...)
			if dep.ArtifactSet == "" {
				continue
			}
			set, ok := named[dep.ArtifactSet]
			if !ok {
				return nil, fmt.Errorf("%w: %q requested by %q", ErrUnknownArtifactSet, dep.ArtifactSet, spec.Name)
			}
			if !containsNode(targets, set.NodeID()) {
				return nil, fmt.Errorf("%w: %q belongs to %q, which is not a target of this dependency of %q",
					ErrUnknownArtifactSet, dep.ArtifactSet, g.names[set.NodeID()], spec.Name)
			}
			g.edgeSets[edge] = set
		}
	}

	reached := make(map[string]bool)
	err := graphlib.BFS(declared, doc.Root, func(name string) bool {
		reached[name] = true
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk graph from %q: %w", doc.Root, err)
	}
	for _, spec := range doc.Nodes {
		if !reached[spec.Name] {
			g.Unreachable = append(g.Unreachable, spec.Name)
		}
	}

	return g, nil
}

// Lookup returns the artifacts lookup of this graph: an edge that names an artifact set
// uses it for the owning target; every other target contributes its default set.
func (g *Graph) Lookup() artifacts.ArtifactsLookup {
	return func(edge *depgraph.Edge, to *depgraph.Node) artifacts.ArtifactSet {
		if set, ok := g.edgeSets[edge]; ok && set.NodeID() == to.ID {
			return set
		}
		if set, ok := g.defaultSets[to.ID]; ok {
			return set
		}
		return nil
	}
}

// Node returns the node declared under name.
func (g *Graph) Node(name string) (*depgraph.Node, bool) {
	node, ok := g.byName[name]
	return node, ok
}

// Name returns the declared name of a node.
func (g *Graph) Name(nodeID int64) string {
	return g.names[nodeID]
}

// ArtifactSetName returns the declared name of an artifact set. Default sets are named
// after their node.
func (g *Graph) ArtifactSetName(setID int64) string {
	return g.setNames[setID]
}

// TaskDependencies returns the declared dependencies of every task.
func (g *Graph) TaskDependencies() map[string][]string {
	deps := make(map[string][]string, len(g.Tasks))
	for _, t := range g.Tasks {
		deps[t.Name] = append(deps[t.Name], t.DependsOn...)
	}
	return deps
}

func componentOf(spec NodeSpec) (component.Identifier, bool, error) {
	switch {
	case spec.Project != "" && spec.Module != "":
		return nil, false, fmt.Errorf("%w: %q declares both a project and a module", ErrInvalidNode, spec.Name)

	case spec.Project != "":
		build := component.BuildIdentifier{Name: spec.Build}
		if spec.Build == "" {
			build = component.BuildIdentifier{Name: ":", Current: true}
		}
		local := true
		if spec.Local != nil {
			local = *spec.Local
		}
		return component.ProjectComponentIdentifier{Build: build, ProjectPath: spec.Project}, local, nil

	case spec.Module != "":
		parts := strings.Split(spec.Module, ":")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
			return nil, false, fmt.Errorf("%w: %q has module %q, want group:module[:version]",
				ErrInvalidNode, spec.Name, spec.Module)
		}
		id := component.ModuleComponentIdentifier{Group: parts[0], Module: parts[1]}
		if len(parts) == 3 {
			id.Version = parts[2]
		}
		local := false
		if spec.Local != nil {
			local = *spec.Local
		}
		return id, local, nil
	}

	return nil, false, fmt.Errorf("%w: %q declares neither a project nor a module", ErrInvalidNode, spec.Name)
}

func variantsOf(specs []VariantSpec) []artifacts.ResolvedVariant {
	variants := make([]artifacts.ResolvedVariant, 0, len(specs))
	for _, v := range specs {
		files := make([]artifacts.Artifact, 0, len(v.Artifacts))
		for _, a := range v.Artifacts {
			files = append(files, artifacts.Artifact{Name: a.Name, Type: a.Type, Path: a.Path, Task: a.Task})
		}
		variants = append(variants, artifacts.NewVariant(v.Name, v.Attributes, artifacts.Of(files...)))
	}
	return variants
}

func containsNode(nodes []*depgraph.Node, id int64) bool {
	for _, n := range nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
