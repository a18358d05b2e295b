package component

import "fmt"

// Identifier identifies the component that owns a node in the dependency graph.
type Identifier interface {
	DisplayName() string
}

// BuildIdentifier names one build taking part in a resolution.
type BuildIdentifier struct {
	Name    string
	Current bool
}

// IsCurrentBuild reports whether this build is the one currently resolving.
func (b BuildIdentifier) IsCurrentBuild() bool {
	return b.Current
}

// ProjectComponentIdentifier identifies a component produced by a project of some build.
// Project components carry build obligations when their configurations are local.
type ProjectComponentIdentifier struct {
	Build       BuildIdentifier
	ProjectPath string
}

func (p ProjectComponentIdentifier) DisplayName() string {
	if p.Build.Current || p.Build.Name == "" {
		return fmt.Sprintf("project %s", p.ProjectPath)
	}
	return fmt.Sprintf("project %s%s", p.Build.Name, p.ProjectPath)
}

// ModuleComponentIdentifier identifies an external, already published component.
type ModuleComponentIdentifier struct {
	Group   string
	Module  string
	Version string
}

func (m ModuleComponentIdentifier) DisplayName() string {
	if m.Version == "" {
		return fmt.Sprintf("%s:%s", m.Group, m.Module)
	}
	return fmt.Sprintf("%s:%s:%s", m.Group, m.Module, m.Version)
}

// Coordinates returns group:module without the version.
func (m ModuleComponentIdentifier) Coordinates() string {
	return fmt.Sprintf("%s:%s", m.Group, m.Module)
}

// IsForeignProject reports whether id is a project component that belongs to a build
// other than the one currently resolving.
func IsForeignProject(id Identifier) bool {
	p, ok := id.(ProjectComponentIdentifier)
	if !ok {
		return false
	}
	return !p.Build.IsCurrentBuild()
}
