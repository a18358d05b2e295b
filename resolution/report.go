package resolution

import (
	"github.com/LegacyCodeHQ/buildgraph/artifacts"
	"github.com/LegacyCodeHQ/buildgraph/component"
	"github.com/LegacyCodeHQ/buildgraph/depgraph"
)

// Report is the printable outcome of a selection.
type Report struct {
	Root      string           `json:"root"`
	View      string           `json:"view"`
	Nodes     []NodeReport     `json:"nodes"`
	Artifacts []ArtifactReport `json:"artifacts"`
	Plan      []string         `json:"plan"`
	Cycles    []CycleReport    `json:"cycles,omitempty"`
}

// NodeReport describes one node. Nodes appear in visiting order, root first.
type NodeReport struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Component     string   `json:"component"`
	Configuration string   `json:"configuration"`
	Project       bool     `json:"project"`
	Dependencies  []string `json:"dependencies,omitempty"`
	// Included is false when the node's component was filtered out.
	Included  bool             `json:"included"`
	Artifacts []ArtifactReport `json:"artifacts,omitempty"`
	Tasks     []string         `json:"tasks,omitempty"`
}

type ArtifactReport struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Path string `json:"path,omitempty"`
	Task string `json:"task,omitempty"`
}

// CycleReport is an edge that was skipped because it closed a cycle.
type CycleReport struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Report describes sel in terms of the session's graph.
func (s *Session) Report(sel *Selection) Report {
	g := s.Graph
	nodes := make(map[int64]*depgraph.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = n
	}

	report := Report{
		Root:      g.Name(g.Root.ID),
		View:      sel.Request.Key(),
		Artifacts: artifactReports(sel.Results.Artifacts()),
		Plan:      sel.Plan,
	}

	for _, id := range s.Order.NodeIDs {
		node := nodes[id]
		nr := NodeReport{
			ID:            id,
			Name:          g.Name(id),
			Configuration: node.Configuration.Name,
			Dependencies:  dependencyNames(g.Name, node),
		}
		if node.Component != nil {
			nr.Component = node.Component.DisplayName()
			nr.Project = component.Projects(node.Component)
		}
		if set, ok := sel.Results.NodeArtifacts(id); ok {
			nr.Included = true
			nr.Artifacts = artifactReports(set)
			nr.Tasks = artifacts.BuildTasks(set)
		}
		report.Nodes = append(report.Nodes, nr)
	}

	for _, edge := range s.Visited.Cycles() {
		report.Cycles = append(report.Cycles, CycleReport{From: g.Name(edge.From), To: g.Name(edge.To)})
	}
	return report
}

func artifactReports(set artifacts.ResolvedArtifactSet) []ArtifactReport {
	var reports []ArtifactReport
	for _, a := range set.Artifacts() {
		reports = append(reports, ArtifactReport{Name: a.Name, Type: a.Type, Path: a.Path, Task: a.Task})
	}
	return reports
}

func dependencyNames(name func(int64) string, node *depgraph.Node) []string {
	var names []string
	seen := make(map[int64]bool)
	for _, edge := range node.Outgoing {
		for _, target := range edge.Targets {
			if target == nil || seen[target.ID] {
				continue
			}
			seen[target.ID] = true
			names = append(names, name(target.ID))
		}
	}
	return names
}
