// Package manifest reads graph descriptions: the resolved nodes of a build, the edges
// between them, the artifacts every node offers and the tasks that produce them.
package manifest

// Document is the format-independent content of a graph description file.
type Document struct {
	Root         string            `yaml:"root"`
	Nodes        []NodeSpec        `yaml:"nodes"`
	ArtifactSets []ArtifactSetSpec `yaml:"artifactSets,omitempty"`
	Tasks        []TaskSpec        `yaml:"tasks,omitempty"`
}

// NodeSpec declares one node. Exactly one of Project and Module must be set.
type NodeSpec struct {
	Name string `yaml:"name"`

	// Project is a project path such as ":app". Build names the build the project
	// belongs to; it is empty for the current build.
	Project string `yaml:"project,omitempty"`
	Build   string `yaml:"build,omitempty"`

	// Module is the group:module[:version] of an external component.
	Module string `yaml:"module,omitempty"`

	Configuration string `yaml:"configuration,omitempty"`
	// Local defaults to true for projects and false for modules.
	Local *bool `yaml:"local,omitempty"`

	// Variants make up the node's default artifact set, used by dependencies that do
	// not name an artifact set.
	Variants     []VariantSpec    `yaml:"variants,omitempty"`
	Dependencies []DependencySpec `yaml:"dependencies,omitempty"`
}

// VariantSpec declares one variant of an artifact set.
type VariantSpec struct {
	Name       string            `yaml:"name"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Artifacts  []ArtifactSpec    `yaml:"artifacts,omitempty"`
}

type ArtifactSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
	Path string `yaml:"path,omitempty"`
	Task string `yaml:"task,omitempty"`
}

// DependencySpec declares one outgoing edge. ArtifactSet, when set, replaces the default
// artifact set of the target node it belongs to.
type DependencySpec struct {
	Targets     []string `yaml:"targets"`
	ArtifactSet string   `yaml:"artifactSet,omitempty"`
}

// ArtifactSetSpec declares an artifact set owned by Node, for dependencies that select
// artifacts other than the node's defaults.
type ArtifactSetSpec struct {
	Name     string        `yaml:"name"`
	Node     string        `yaml:"node"`
	Variants []VariantSpec `yaml:"variants,omitempty"`
}

// TaskSpec declares a build task and the tasks that must run before it.
type TaskSpec struct {
	Name      string   `yaml:"name"`
	DependsOn []string `yaml:"dependsOn,omitempty"`
}
